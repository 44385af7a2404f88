package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig cấu hình HTTP server
type ServerConfig struct {
	Port string
	Env  string
}

// RedisConfig cấu hình tầng cache Redis (L1)
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// MongoConfig cấu hình tầng cache MongoDB (L2)
type MongoConfig struct {
	URL      string
	Database string
	L1Size   int // kích thước LRU in-memory trong Mongo cache service
	TTL      time.Duration
}

// MeiliConfig cấu hình Meilisearch cho gazetteer tỉnh/thành.
// Host rỗng nghĩa là chỉ dùng gazetteer tĩnh nhúng sẵn.
type MeiliConfig struct {
	Host      string
	MasterKey string
	IndexName string
	Timeout   time.Duration
}

// OpenAIConfig cấu hình dịch vụ chat-completion.
// BaseURL hoặc APIKey rỗng nghĩa là tắt bước hòa giải bằng mô hình.
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	MaxTokens   int
}

// Config cấu hình đầy đủ của service, load một lần lúc khởi động
type Config struct {
	Server         ServerConfig
	Redis          RedisConfig
	Mongo          MongoConfig
	Meili          MeiliConfig
	OpenAI         OpenAIConfig
	AdminToken     string
	RulesetVersion string
}

// Load đọc config/app.yaml với env override (SERVER_PORT, OPENAI_API_KEY, ...)
func Load() *Config {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("redis.url", "redis://localhost:6379")
	viper.SetDefault("redis.ttl_hours", 24)
	viper.SetDefault("mongo.url", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "intent_parser")
	viper.SetDefault("mongo.ttl_days", 7)
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("meilisearch.host", "")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("meilisearch.index_name", "provinces")
	viper.SetDefault("meilisearch.timeout_seconds", 30)
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.temperature", 0.0)
	viper.SetDefault("openai.timeout_seconds", 20)
	viper.SetDefault("openai.max_tokens", 512)
	viper.SetDefault("admin.token", "")
	viper.SetDefault("ruleset.version", "1.0.0")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: không đọc được file config: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
			Env:  viper.GetString("server.env"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("redis.url"),
			TTL: time.Duration(viper.GetInt("redis.ttl_hours")) * time.Hour,
		},
		Mongo: MongoConfig{
			URL:      viper.GetString("mongo.url"),
			Database: viper.GetString("mongo.database"),
			L1Size:   viper.GetInt("cache.l1_size"),
			TTL:      time.Duration(viper.GetInt("mongo.ttl_days")) * 24 * time.Hour,
		},
		Meili: MeiliConfig{
			Host:      viper.GetString("meilisearch.host"),
			MasterKey: viper.GetString("meilisearch.master_key"),
			IndexName: viper.GetString("meilisearch.index_name"),
			Timeout:   time.Duration(viper.GetInt("meilisearch.timeout_seconds")) * time.Second,
		},
		OpenAI: OpenAIConfig{
			BaseURL:     viper.GetString("openai.base_url"),
			APIKey:      viper.GetString("openai.api_key"),
			Model:       viper.GetString("openai.model"),
			Temperature: viper.GetFloat64("openai.temperature"),
			Timeout:     time.Duration(viper.GetInt("openai.timeout_seconds")) * time.Second,
			MaxTokens:   viper.GetInt("openai.max_tokens"),
		},
		AdminToken:     viper.GetString("admin.token"),
		RulesetVersion: viper.GetString("ruleset.version"),
	}
}

// ModelEnabled trả về true nếu đủ cấu hình để gọi dịch vụ chat-completion
func (c *Config) ModelEnabled() bool {
	return c.OpenAI.BaseURL != "" && c.OpenAI.APIKey != ""
}
