package main

import (
	"context"
	"crypto-market-pipeline/internal/api"
	"crypto-market-pipeline/internal/cleaner"
	"crypto-market-pipeline/internal/producer"
	"crypto-market-pipeline/internal/service"
	"crypto-market-pipeline/internal/storage"

	"go.uber.org/zap"
)

func main() {
	service.InitLogger()
	defer service.Logger.Sync()

	cfg := service.LoadConfig("config")

	service.Logger.Info("Web Scraping -> Kafka Mini-Pipeline")

	// 1. 抓取行情快照
	fetcher := api.NewFetcher(&cfg.API)
	table, err := fetcher.Fetch(context.Background())
	if err != nil {
		service.Logger.Error("Failed to scrape data. Exiting.", zap.Error(err))
		return
	}
	if len(table) == 0 {
		service.Logger.Error("Failed to scrape data. Exiting.", zap.Int("Rows", 0))
		return
	}

	// 2. 清洗数据 (固定顺序的 8 个步骤)
	pipeline := cleaner.NewCleaner()
	table = pipeline.Clean(table)

	// 3. 逐条发送到 Kafka
	// 构造 Kafka Producer 所需的配置 (使用 producer.KafkaConfig 结构)
	kafkaConfig := &producer.KafkaConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Kafka.Topic(),
		AckTimeout:  cfg.Kafka.AckTimeout,
		MaxAttempts: cfg.Kafka.MaxAttempts,
	}
	kafkaProducer := producer.NewKafkaProducer(kafkaConfig, service.Logger)
	kafkaSuccess := kafkaProducer.Publish(context.Background(), table)

	// 4. 持久化 CSV 和 JSON (Kafka 失败也照常落盘)
	writers := []storage.Writer{
		storage.NewCSVWriter(cfg.Output.CSVFile),
		storage.NewJSONWriter(cfg.Output.JSONFile),
	}
	for _, w := range writers {
		if err := w.Save(table); err != nil {
			service.Logger.Fatal("Failed to save cleaned dataset", zap.String("File", w.Filename()), zap.Error(err))
		}
	}

	// 5. 汇总本次运行结果
	summary := []zap.Field{
		zap.Int("Records", len(table)),
		zap.String("Topic", cfg.Kafka.Topic()),
		zap.Strings("Files", []string{cfg.Output.CSVFile, cfg.Output.JSONFile}),
	}
	if kafkaSuccess {
		service.Logger.Info("Pipeline completed successfully", summary...)
	} else {
		service.Logger.Warn("Pipeline completed with warnings", summary...)
	}
}
