package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	MongoURI string
	MongoDB  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	MinioEndpoint  string
	MinioPublicURL string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	AudioBucket    string
	ImageBucket    string

	KafkaBrokers string
	KafkaTopic   string

	JWTSecret     string
	TokenTTL      time.Duration
	MaxUploadSize int64 // Maximum file upload size in bytes
}

// LoadConfig reads configuration from the environment (plus an optional .env
// file) once at startup. The resulting struct is passed by reference to every
// component that needs it; no component reads process state directly.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env file: %v", err)
	}

	return &Config{
		// Server settings
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		// MongoDB settings
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "musicflow"),

		// Redis settings
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL", 300)) * time.Second,

		// MinIO settings
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		AudioBucket:    getEnv("MINIO_AUDIO_BUCKET", "musicflow-audio"),
		ImageBucket:    getEnv("MINIO_IMAGE_BUCKET", "musicflow-images"),

		// Kafka settings
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "catalog.events"),

		// Application settings
		JWTSecret:     getEnv("JWT_SECRET", "musicflow_secret_key_2024"),
		TokenTTL:      time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
