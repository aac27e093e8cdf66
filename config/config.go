package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Auth     AuthConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	UploadDir string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicOrder    string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

type BusinessConfig struct {
	TaxRate           float64
	FlatShippingFee   float64
	FreeShippingAbove float64
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenTTL, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "72"))
	taxRate, _ := strconv.ParseFloat(getEnv("TAX_RATE", "0.08"), 64)
	flatShipping, _ := strconv.ParseFloat(getEnv("FLAT_SHIPPING_FEE", "10"), 64)
	freeShipping, _ := strconv.ParseFloat(getEnv("FREE_SHIPPING_ABOVE", "100"), 64)

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			Env:       getEnv("ENV", "development"),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "marketplace"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicOrder:    getEnv("KAFKA_TOPIC_ORDER_EVENTS", "marketplace.order-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "marketplace-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTLHours: tokenTTL,
		},
		Business: BusinessConfig{
			TaxRate:           taxRate,
			FlatShippingFee:   flatShipping,
			FreeShippingAbove: freeShipping,
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
