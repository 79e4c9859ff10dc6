// internal/service/config.go
package service

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API    APIConfig    `mapstructure:"API"`
	Kafka  KafkaConfig  `mapstructure:"Kafka"`
	Output OutputConfig `mapstructure:"Output"`
}

// APIConfig 定义了行情快照接口的请求参数
type APIConfig struct {
	URL        string
	Currency   string // vs_currency 查询参数
	Order      string // 排序方式，默认按市值降序
	PerPage    int
	Page       int
	Sparkline  bool
	UserAgent  string // 伪装的浏览器 UA
	Timeout    time.Duration
	MaxRecords int // 截取的最大记录数
}

// KafkaConfig 定义了消息流写入端的连接信息
type KafkaConfig struct {
	Brokers     []string
	PipelineID  string // 固定运行标识，决定 topic 名称
	TopicPrefix string
	AckTimeout  time.Duration // 单条消息等待确认的上限
	MaxAttempts int           // 每条消息的最大发送尝试次数
}

// Topic 返回由固定标识派生的 topic 名称
func (k KafkaConfig) Topic() string {
	return k.TopicPrefix + k.PipelineID
}

// OutputConfig 定义了清洗结果的落盘文件名
type OutputConfig struct {
	CSVFile  string
	JSONFile string
}

// GlobalConfig 存储加载后的全局配置
var GlobalConfig Config

// LoadConfig 读取并解析配置文件。
// 所有键都带有与内置常量一致的默认值，文件缺失时直接以默认值运行。
func LoadConfig(configPath string) *Config {
	// 设置配置文件的名称、类型和路径
	viper.SetConfigName("config") // 文件名是 config
	viper.SetConfigType("yaml")   // 文件类型是 yaml
	viper.AddConfigPath(configPath)

	setDefaults()

	// 查找并读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	// 将配置绑定到结构体
	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode config into struct: %s", err)
	}

	return &GlobalConfig
}

func setDefaults() {
	viper.SetDefault("api.url", "https://api.coingecko.com/api/v3/coins/markets")
	viper.SetDefault("api.currency", "usd")
	viper.SetDefault("api.order", "market_cap_desc")
	viper.SetDefault("api.perpage", 50)
	viper.SetDefault("api.page", 1)
	viper.SetDefault("api.sparkline", false)
	viper.SetDefault("api.useragent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("api.timeout", 10*time.Second)
	viper.SetDefault("api.maxrecords", 30)

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.pipelineid", "22B030453")
	viper.SetDefault("kafka.topicprefix", "bonus_")
	viper.SetDefault("kafka.acktimeout", 10*time.Second)
	viper.SetDefault("kafka.maxattempts", 3)

	viper.SetDefault("output.csvfile", "cleaned_data.csv")
	viper.SetDefault("output.jsonfile", "cleaned_data.json")
}
