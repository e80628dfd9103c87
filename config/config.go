package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DBPath         string
	AuthMode       string // dev|header
	LogLevel       string
	LogDev         bool
	ImageMaxSide   int
	DecodeTimeout  time.Duration
	UploadMaxBytes int64
	BlobDir        string
	Minio          MinioConfig
}

// MinioConfig is optional; an empty Endpoint stores blobs below BlobDir.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// Load reads .env when present, then the environment. The returned warning
// is non-nil only when a .env file exists but cannot be parsed.
func Load() (AppConfig, error) {
	var warn error
	if _, err := os.Stat(".env"); err == nil {
		warn = godotenv.Load()
	}

	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "fieldwatch.db"),
		AuthMode:       get("AUTH_MODE", "dev"),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogDev:         getBool("LOG_DEV", false),
		ImageMaxSide:   getInt("IMAGE_MAX_SIDE", 512),
		DecodeTimeout:  getDuration("DECODE_TIMEOUT", 10*time.Second),
		UploadMaxBytes: int64(getInt("UPLOAD_MAX_BYTES", 10<<20)),
		BlobDir:        get("BLOB_DIR", "blobs"),
		Minio: MinioConfig{
			Endpoint:  get("MINIO_ENDPOINT", ""),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			Bucket:    get("MINIO_BUCKET", "fieldwatch"),
			Secure:    getBool("MINIO_SECURE", false),
		},
	}
	return cfg, warn
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
