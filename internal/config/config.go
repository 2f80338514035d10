package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Sources  SourcesConfig  `yaml:"sources"`
	Bitcoin  NodeConfig     `yaml:"bitcoin"`
	Litecoin NodeConfig     `yaml:"litecoin"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig represents the logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// UpstreamConfig controls outbound calls to public APIs
type UpstreamConfig struct {
	Timeout     time.Duration `yaml:"timeout"`      // per call
	MaxParallel int           `yaml:"max_parallel"` // concurrent sub-requests per batch
	UserAgent   string        `yaml:"user_agent"`
}

// SourcesConfig holds the base URL of every upstream API
type SourcesConfig struct {
	Coinlore        string `yaml:"coinlore"`
	BlockchainInfo  string `yaml:"blockchain_info"`
	Blockcypher     string `yaml:"blockcypher"`
	Mempool         string `yaml:"mempool"`
	Blockchair      string `yaml:"blockchair"`
	EthereumRPC     string `yaml:"ethereum_rpc"`
	BSCRPC          string `yaml:"bsc_rpc"`
	LitecoinSpace   string `yaml:"litecoin_space"`
	Tronscan        string `yaml:"tronscan"`
	Toncenter       string `yaml:"toncenter"`
	ToncenterAPIKey string `yaml:"toncenter_api_key"`
}

// NodeConfig represents the connection to a self-hosted bitcoind or
// litecoind used as the last fallback
type NodeConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Host       string `yaml:"host"`
	User       string `yaml:"user"`
	Pass       string `yaml:"pass"`
	Cert       string `yaml:"cert"`
	DisableTLS bool   `yaml:"disable_tls"`
	MinVersion string `yaml:"min_version"` // lowest accepted node release, e.g. "0.21.0"
}

// Default returns the configuration used when no file or environment
// override is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Upstream: UpstreamConfig{
			Timeout:     8 * time.Second,
			MaxParallel: 10,
			UserAgent:   "chain-explorer/1.0",
		},
		Sources: SourcesConfig{
			Coinlore:       "https://api.coinlore.net/api",
			BlockchainInfo: "https://blockchain.info",
			Blockcypher:    "https://api.blockcypher.com/v1",
			Mempool:        "https://mempool.space/api",
			Blockchair:     "https://api.blockchair.com",
			EthereumRPC:    "https://ethereum-rpc.publicnode.com",
			BSCRPC:         "https://bsc-rpc.publicnode.com",
			LitecoinSpace:  "https://litecoinspace.org/api",
			Tronscan:       "https://apilist.tronscanapi.com/api",
			Toncenter:      "https://toncenter.com/api/v2",
		},
		Bitcoin: NodeConfig{
			DisableTLS: true,
			MinVersion: "0.21.0",
		},
		Litecoin: NodeConfig{
			DisableTLS: true,
			MinVersion: "0.21.0",
		},
	}
}

// Load loads configuration from a YAML file and environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if it exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.Upstream.Timeout)
	}
	if c.Upstream.MaxParallel <= 0 {
		return fmt.Errorf("upstream max_parallel must be positive, got %d", c.Upstream.MaxParallel)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	for name, node := range map[string]NodeConfig{"bitcoin": c.Bitcoin, "litecoin": c.Litecoin} {
		if node.Enabled && node.Host == "" {
			return fmt.Errorf("%s node enabled without host", name)
		}
	}
	return nil
}

func (c *Config) loadEnv() error {
	// Server config
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}

	// Logging
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}

	if enabled := os.Getenv("METRICS_ENABLED"); enabled != "" {
		c.Metrics.Enabled = parseBool(enabled)
	}

	// Upstream
	if timeout := os.Getenv("UPSTREAM_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
		}
		c.Upstream.Timeout = d
	}
	if parallel := os.Getenv("UPSTREAM_MAX_PARALLEL"); parallel != "" {
		n, err := strconv.Atoi(parallel)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_MAX_PARALLEL: %w", err)
		}
		c.Upstream.MaxParallel = n
	}

	// Source URLs
	for env, field := range map[string]*string{
		"COINLORE_URL":        &c.Sources.Coinlore,
		"BLOCKCHAIN_INFO_URL": &c.Sources.BlockchainInfo,
		"BLOCKCYPHER_URL":     &c.Sources.Blockcypher,
		"MEMPOOL_URL":         &c.Sources.Mempool,
		"BLOCKCHAIR_URL":      &c.Sources.Blockchair,
		"ETH_RPC_URL":         &c.Sources.EthereumRPC,
		"BSC_RPC_URL":         &c.Sources.BSCRPC,
		"LITECOIN_SPACE_URL":  &c.Sources.LitecoinSpace,
		"TRONSCAN_URL":        &c.Sources.Tronscan,
		"TONCENTER_URL":       &c.Sources.Toncenter,
		"TONCENTER_API_KEY":   &c.Sources.ToncenterAPIKey,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	// Bitcoin node
	c.loadNodeEnv(&c.Bitcoin, "BTC_NODE")

	// Litecoin node
	c.loadNodeEnv(&c.Litecoin, "LTC_NODE")

	return nil
}

func (c *Config) loadNodeEnv(node *NodeConfig, prefix string) {
	if enabled := os.Getenv(prefix + "_ENABLED"); enabled != "" {
		node.Enabled = parseBool(enabled)
	}
	if host := os.Getenv(prefix + "_HOST"); host != "" {
		node.Host = host
	}
	if user := os.Getenv(prefix + "_USER"); user != "" {
		node.User = user
	}
	if pass := os.Getenv(prefix + "_PASS"); pass != "" {
		node.Pass = pass
	}
	if cert := os.Getenv(prefix + "_CERT"); cert != "" {
		node.Cert = cert
	}
	if disableTLS := os.Getenv(prefix + "_DISABLE_TLS"); disableTLS != "" {
		node.DisableTLS = parseBool(disableTLS)
	}
	if minVersion := os.Getenv(prefix + "_MIN_VERSION"); minVersion != "" {
		node.MinVersion = minVersion
	}
}

func parseBool(s string) bool {
	return s == "true" || s == "1"
}
