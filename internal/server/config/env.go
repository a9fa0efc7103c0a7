package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/evote/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays EVOTE_* environment variables. When -env names a dotenv
// file, it is loaded first; variables already set in the process
// environment win over the file.
func parseEnv(config *Config) {
	if envFile := flagx.EnvFileFlag(os.Args[1:]); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	}

	lookup(&config.EndpointAddrGRPC, "EVOTE_GRPC_ADDR")
	lookup(&config.EndpointAddrHTTP, "EVOTE_HTTP_ADDR")
	lookup(&config.DatabaseDSN, "EVOTE_DATABASE_DSN")
	lookup(&config.SecretKey, "EVOTE_SECRET_KEY")
	lookup(&config.KeySealSecret, "EVOTE_KEY_SEAL_SECRET")
	lookup(&config.S3RootUser, "EVOTE_S3_ROOT_USER")
	lookup(&config.S3RootPassword, "EVOTE_S3_ROOT_PASSWORD")
	lookup(&config.S3Bucket, "EVOTE_S3_BUCKET")
	lookup(&config.S3Region, "EVOTE_S3_REGION")
	lookup(&config.S3BaseEndpoint, "EVOTE_S3_BASE_ENDPOINT")
	lookup(&config.LogLevel, "EVOTE_LOG_LEVEL")

	if v, ok := os.LookupEnv("EVOTE_RESULTS_URL_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.ResultsURLTTL = d
	}
}

func lookup(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
