package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// AppConfig ties together every runtime setting of the call widget.
type AppConfig struct {
	Env string `mapstructure:"CRYPTOCALL_ENV"`

	Service ServiceConfig `mapstructure:",squash"`
	Call    CallConfig    `mapstructure:",squash"`
	Chain   ChainConfig   `mapstructure:",squash"`
	Wallet  WalletConfig  `mapstructure:",squash"`
	Catalog CatalogConfig `mapstructure:",squash"`
	Phone   PhoneConfig   `mapstructure:",squash"`
}

type ServiceConfig struct {
	HTTPAddr           string        `mapstructure:"CRYPTOCALL_HTTP_ADDR"`
	APISecret          string        `mapstructure:"CRYPTOCALL_API_SECRET"`
	HMACClockSkew      time.Duration `mapstructure:"CRYPTOCALL_HMAC_CLOCK_SKEW"`
	CORSAllowedOrigins []string      `mapstructure:"CRYPTOCALL_CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `mapstructure:"CRYPTOCALL_SHUTDOWN_TIMEOUT"`
}

// CallConfig points at the backend that places the phone calls.
type CallConfig struct {
	Endpoint string `mapstructure:"CRYPTOCALL_API_ENDPOINT"`
	// Zero means no client-side timeout.
	Timeout time.Duration `mapstructure:"CRYPTOCALL_API_TIMEOUT"`
}

type ChainConfig struct {
	RPCURL   string `mapstructure:"CRYPTOCALL_CHAIN_RPC_URL"`
	Symbol   string `mapstructure:"CRYPTOCALL_CHAIN_SYMBOL"`
	Decimals int32  `mapstructure:"CRYPTOCALL_CHAIN_DECIMALS"`
}

// WalletConfig describes the connectors offered to the user. The static
// connector is registered when addresses are set; the RPC connector when a
// wallet RPC URL is set.
type WalletConfig struct {
	ConnectorName   string   `mapstructure:"CRYPTOCALL_CONNECTOR_NAME"`
	StaticAddresses []string `mapstructure:"CRYPTOCALL_WALLET_ADDRESSES"`
	RPCConnectorURL string   `mapstructure:"CRYPTOCALL_WALLET_RPC_URL"`
	RPCConnectorTag string   `mapstructure:"CRYPTOCALL_WALLET_RPC_NAME"`
}

// CatalogConfig selects the topic source: Postgres when DSN is set, a file
// when Path is set, the embedded list otherwise.
type CatalogConfig struct {
	Path string `mapstructure:"CRYPTOCALL_TOPICS_PATH"`
	DSN  string `mapstructure:"CRYPTOCALL_TOPICS_DSN"`
}

type PhoneConfig struct {
	DefaultRegion string `mapstructure:"CRYPTOCALL_PHONE_REGION"`
}

var listKeys = []string{
	"CRYPTOCALL_CORS_ALLOWED_ORIGINS",
	"CRYPTOCALL_WALLET_ADDRESSES",
}

func loadDotEnvFiles() {
	for _, path := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(path); err == nil {
			_ = gotenv.Load(path) // variables already set take precedence
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CRYPTOCALL_ENV", "dev")
	v.SetDefault("CRYPTOCALL_HTTP_ADDR", ":8080")
	v.SetDefault("CRYPTOCALL_API_SECRET", "")
	v.SetDefault("CRYPTOCALL_HMAC_CLOCK_SKEW", "60s")
	v.SetDefault("CRYPTOCALL_CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("CRYPTOCALL_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CRYPTOCALL_API_ENDPOINT", "")
	v.SetDefault("CRYPTOCALL_API_TIMEOUT", "0s")
	v.SetDefault("CRYPTOCALL_CHAIN_RPC_URL", "https://mainnet.base.org")
	v.SetDefault("CRYPTOCALL_CHAIN_SYMBOL", "ETH")
	v.SetDefault("CRYPTOCALL_CHAIN_DECIMALS", 18)
	v.SetDefault("CRYPTOCALL_CONNECTOR_NAME", "Coinbase Wallet")
	v.SetDefault("CRYPTOCALL_WALLET_ADDRESSES", "")
	v.SetDefault("CRYPTOCALL_WALLET_RPC_URL", "")
	v.SetDefault("CRYPTOCALL_WALLET_RPC_NAME", "Injected")
	v.SetDefault("CRYPTOCALL_TOPICS_PATH", "")
	v.SetDefault("CRYPTOCALL_TOPICS_DSN", "")
	v.SetDefault("CRYPTOCALL_PHONE_REGION", "US")
}

// Load reads defaults, an optional config file (any format viper knows, keys
// as in the environment) and CRYPTOCALL_* environment variables, in rising
// order of precedence.
func Load(configFile string) (*AppConfig, error) {
	loadDotEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	for _, key := range listKeys {
		if raw, ok := v.Get(key).(string); ok {
			v.Set(key, splitList(raw))
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *AppConfig) validate() error {
	if c.Call.Endpoint != "" {
		u, err := url.Parse(c.Call.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CRYPTOCALL_API_ENDPOINT must be an absolute URL, got %q", c.Call.Endpoint)
		}
	}
	if c.Call.Timeout < 0 {
		return fmt.Errorf("CRYPTOCALL_API_TIMEOUT must not be negative")
	}
	if c.Chain.Decimals < 0 {
		return fmt.Errorf("CRYPTOCALL_CHAIN_DECIMALS must not be negative")
	}
	if c.Service.HMACClockSkew <= 0 {
		return fmt.Errorf("CRYPTOCALL_HMAC_CLOCK_SKEW must be positive")
	}
	return nil
}

// RequireEndpoint fails when no call endpoint is configured. Only commands
// that submit call requests need one.
func (c *AppConfig) RequireEndpoint() error {
	if c.Call.Endpoint == "" {
		return fmt.Errorf("CRYPTOCALL_API_ENDPOINT is required")
	}
	return nil
}
