package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/meslee/moneyledger/internal/flagx"
	"github.com/meslee/moneyledger/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the jitter bounds either
// as strings like "300ms" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	AuthBaseURL    string         `json:"auth_base_url"`
	CacheDBPath    string         `json:"cache_db_path"`
	SeedJitterMin  timex.Duration `json:"seed_jitter_min"`
	SeedJitterMax  timex.Duration `json:"seed_jitter_max"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag via
// flagx.JsonConfigFlags(); when neither is given, no JSON is loaded.
// Panics on read or unmarshal errors (caller should recover if desired).
// Zero-valued JSON fields leave the current Config value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AuthBaseURL != "" {
		cfg.AuthBaseURL = jc.AuthBaseURL
	}
	if jc.CacheDBPath != "" {
		cfg.CacheDBPath = jc.CacheDBPath
	}
	if jc.SeedJitterMin.Duration != 0 {
		cfg.SeedJitterMin = time.Duration(jc.SeedJitterMin.Duration)
	}
	if jc.SeedJitterMax.Duration != 0 {
		cfg.SeedJitterMax = time.Duration(jc.SeedJitterMax.Duration)
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
