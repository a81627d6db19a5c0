package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Observ      ObservabilityConfig
	Pricing     PricingConfig
	Recommender RecommenderConfig
	Cart        CartConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig is optional: an empty URL means the catalog is served from
// the built-in seed instead of Postgres.
type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicCart     string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	PrometheusPort string
}

type PricingConfig struct {
	FreeShippingThreshold float64
	FlatShippingFee       float64
	TaxRate               float64
}

type RecommenderConfig struct {
	Endpoint string
	Timeout  time.Duration
}

type CartConfig struct {
	StorageKey string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	recTimeout, _ := strconv.Atoi(getEnv("RECOMMENDER_TIMEOUT_SECONDS", "5"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicCart:     getEnv("KAFKA_TOPIC_CART_EVENTS", "cart-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "cart-analytics-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			PrometheusPort: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Pricing: PricingConfig{
			FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 50.00),
			FlatShippingFee:       getEnvFloat("FLAT_SHIPPING_FEE", 5.00),
			TaxRate:               getEnvFloat("TAX_RATE", 0.07),
		},
		Recommender: RecommenderConfig{
			Endpoint: getEnv("RECOMMENDER_ENDPOINT", ""),
			Timeout:  time.Duration(recTimeout) * time.Second,
		},
		Cart: CartConfig{
			StorageKey: getEnv("CART_STORAGE_KEY", "cart:boutique"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
