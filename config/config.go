package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingJWTSecret  = errors.New("JWT_SECRET is not set")
	ErrMissingMongoDBURI = errors.New("MONGODB_URI is not set")
)

type Config struct {
	ServicePort   string
	MetricsPort   string
	Environment   string
	JWTSecret     string
	MaxPageLimit  int
	CORSOrigins   []string
	LoginRate     int
	MongoDBConfig MongoDBConfig
	UploadConfig  UploadConfig
	RedisConfig   RedisConfig
	KafkaConfig   KafkaConfig
	TracingConfig TracingConfig
	SMTPConfig    SMTPConfig
	SeedConfig    SeedConfig
	SweepInterval time.Duration
}

type MongoDBConfig struct {
	URI          string
	Database     string
	Transactions bool
}

type UploadConfig struct {
	Dir          string
	URLPrefix    string
	MaxFileBytes int64
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3PublicURL  string
	S3AccessKey  string
	S3SecretKey  string
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type SeedConfig struct {
	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
	SampleProducts bool
}

// CreateNewConfig reads the environment (and .env when present). Secrets and
// the store connection string have no fallbacks.
func CreateNewConfig() (*Config, error) {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:  getEnv("SERVICE_PORT", "5000"),
		MetricsPort:  os.Getenv("METRICS_PORT"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		MaxPageLimit: getEnvInt("MAX_PAGE_LIMIT", 100),
		CORSOrigins:  splitList(os.Getenv("CORS_ORIGINS")),
		LoginRate:    getEnvInt("LOGIN_RATE_PER_MINUTE", 20),
		MongoDBConfig: MongoDBConfig{
			URI:          os.Getenv("MONGODB_URI"),
			Database:     getEnv("MONGODB_DATABASE", "vineweb"),
			Transactions: os.Getenv("MONGODB_TRANSACTIONS") == "true",
		},
		UploadConfig: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix:    getEnv("UPLOAD_URL_PREFIX", "/uploads"),
			MaxFileBytes: int64(getEnvInt("UPLOAD_MAX_FILE_BYTES", 5*1024*1024)),
			S3Bucket:     os.Getenv("S3_BUCKET"),
			S3Region:     getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:   os.Getenv("S3_ENDPOINT"),
			S3PublicURL:  os.Getenv("S3_PUBLIC_URL"),
			S3AccessKey:  os.Getenv("S3_ACCESS_KEY_ID"),
			S3SecretKey:  os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		RedisConfig: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
			TTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "storefront-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		SeedConfig: SeedConfig{
			AdminUsername:  os.Getenv("ADMIN_USERNAME"),
			AdminEmail:     os.Getenv("ADMIN_EMAIL"),
			AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
			SampleProducts: os.Getenv("SEED_SAMPLE_PRODUCTS") == "true",
		},
		SweepInterval: getEnvDuration("IMAGE_SWEEP_INTERVAL", time.Hour),
	}

	if conf.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	if conf.MongoDBConfig.URI == "" {
		return nil, ErrMissingMongoDBURI
	}

	return &conf, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
