package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crypto-market-pipeline/internal/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// echoCount 控制回显到日志的成功消息条数
const echoCount = 3

// KafkaConfig 定义 Kafka 生产者所需的全部配置
type KafkaConfig struct {
	Brokers     []string
	Topic       string
	AckTimeout  time.Duration // 单条消息等待确认的上限
	MaxAttempts int           // 客户端内部的发送尝试次数
}

// KafkaProducer 把清洗后的记录逐条发布到固定 topic，
// 每条消息同步等待 broker 的全副本确认后才发送下一条。
type KafkaProducer struct {
	cfg    *KafkaConfig
	logger *zap.Logger
}

// NewKafkaProducer 初始化 Kafka 生产者
func NewKafkaProducer(cfg *KafkaConfig, logger *zap.Logger) *KafkaProducer {
	return &KafkaProducer{
		cfg:    cfg,
		logger: logger.With(zap.String("producer", "Kafka")),
	}
}

// Publish 逐条发送全表记录并统计成功数。
// 建连失败或任何一次发送/收尾操作失败都只记日志并返回 false，
// 不中断进程；成功与否不区分部分失败。
func (p *KafkaProducer) Publish(ctx context.Context, table model.Table) bool {
	if len(table) == 0 {
		p.logger.Info("No records to publish, skipping Kafka stage")
		return true
	}

	p.logger.Info("Connecting to Kafka...", zap.Strings("Brokers", p.cfg.Brokers))

	// 先拨通第一个 bootstrap 地址，没有 broker 时快速失败
	dialCtx, cancel := context.WithTimeout(ctx, p.cfg.AckTimeout)
	conn, err := kafka.DialContext(dialCtx, "tcp", p.cfg.Brokers[0])
	cancel()
	if err != nil {
		p.reportError(fmt.Errorf("connect to Kafka: %w", err))
		return false
	}
	conn.Close()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(p.cfg.Brokers...),
		Topic:                  p.cfg.Topic,
		MaxAttempts:            p.cfg.MaxAttempts,
		RequiredAcks:           kafka.RequireAll,
		BatchSize:              1, // 每条消息单独成批，保持逐条同步确认的语义
		AllowAutoTopicCreation: true,
	}

	p.logger.Info("Producing messages...",
		zap.String("Topic", p.cfg.Topic), zap.Int("Records", len(table)))

	sent, sendErr := p.sendAll(ctx, writer, table)

	// Close 会冲刷缓冲中的消息，关闭失败与发送错误合并上报
	if err := multierr.Append(sendErr, writer.Close()); err != nil {
		p.reportError(err)
		return false
	}

	p.logger.Info("Successfully sent all messages",
		zap.Int("Count", sent), zap.String("Topic", p.cfg.Topic))
	return true
}

// sendAll 逐条序列化并发送，返回成功条数和第一个失败
func (p *KafkaProducer) sendAll(ctx context.Context, writer *kafka.Writer, table model.Table) (int, error) {
	sent := 0
	for _, record := range table {
		payload, err := json.Marshal(record)
		if err != nil {
			return sent, fmt.Errorf("encode record %s: %w", record.Symbol, err)
		}

		msgCtx, cancel := context.WithTimeout(ctx, p.cfg.AckTimeout)
		err = writer.WriteMessages(msgCtx, kafka.Message{Value: payload})
		cancel()
		if err != nil {
			return sent, fmt.Errorf("send record %s: %w", record.Symbol, err)
		}

		sent++
		if sent <= echoCount {
			p.logger.Info("Sent message",
				zap.Int("N", sent),
				zap.String("Symbol", record.Symbol),
				zap.Float64("PriceUSD", record.PriceUSD))
		}
	}
	return sent, nil
}

// reportError 记录失败原因并附带本地运维提示
func (p *KafkaProducer) reportError(err error) {
	p.logger.Error("Error producing to Kafka", zap.Error(err))
	p.logger.Info("Note: make sure Kafka is running", zap.Strings("Brokers", p.cfg.Brokers))
	p.logger.Info("Start Kafka with: bin/kafka-server-start.sh config/server.properties")
}
