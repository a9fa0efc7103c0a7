package config

import "time"

type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	// DataDir holds the receipts database and downloaded results. Relative
	// paths are resolved against the working directory.
	DataDir string
	// AccessToken, when set, replaces the token saved in the local database.
	// It is read from the environment only.
	AccessToken string
}

const (
	defaultServerAddr    = "127.0.0.1:50051"
	defaultCheckInterval = 3 * time.Second
	defaultDataDir       = "evote-data"
)

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = defaultServerAddr
	c.OnlineCheckInterval = defaultCheckInterval
	c.DataDir = defaultDataDir
}

// LoadConfig applies defaults, then the JSON file, the environment and the
// command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
