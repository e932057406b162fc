package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; missing files are fine,
// production deployments rely on real environment variables.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("AUTH_BASE_URL"); ok {
		cfg.AuthBaseURL = v
	}
	if v, ok := os.LookupEnv("CACHE_DB_PATH"); ok {
		cfg.CacheDBPath = v
	}
	if v, ok := os.LookupEnv("S3_ACCESS_KEY"); ok {
		cfg.S3AccessKey = v
	}
	if v, ok := os.LookupEnv("S3_SECRET_KEY"); ok {
		cfg.S3SecretKey = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		cfg.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		cfg.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		cfg.S3BaseEndpoint = v
	}
}
