package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort      string
	Environment     string
	DataFile        string // Путь к JSON документу с данными
	UploadsDir      string // Каталог для загруженных файлов
	PublicBaseURL   string
	MaxUploadBytes  int64
	CacheTTL        time.Duration
	StorageBackend  string // "local" или "minio"
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIOUseSSL     bool
	PresignedURLTTL time.Duration
}

func Load() *Config {
	maxUploadMB, _ := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "10"))
	cacheMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "10"))
	presignedMinutes, _ := strconv.Atoi(getEnv("PRESIGNED_URL_TTL_MINUTES", "15"))
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "3000"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DataFile:        getEnv("DATA_FILE", "data.json"),
		UploadsDir:      getEnv("UPLOADS_DIR", "uploads"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		MaxUploadBytes:  int64(maxUploadMB) * 1024 * 1024,
		CacheTTL:        time.Duration(cacheMinutes) * time.Minute,
		StorageBackend:  getEnv("STORAGE_BACKEND", "local"),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "minio:9000"),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:     getEnv("MINIO_BUCKET", "college-files"),
		MinIOUseSSL:     useSSL,
		PresignedURLTTL: time.Duration(presignedMinutes) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
