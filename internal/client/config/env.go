package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/evote/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays EVOTE_* variables, loading the -env dotenv file first
// when one is given.
func parseEnv(cfg *Config) {
	if envFile := flagx.EnvFileFlag(os.Args[1:]); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("EVOTE_SERVER_ADDR"); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv("EVOTE_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv("EVOTE_TOKEN"); ok {
		cfg.AccessToken = v
	}
	if v, ok := os.LookupEnv("EVOTE_ONLINE_CHECK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
}
