package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/nativeswap/nativeswap/api"
	"github.com/nativeswap/nativeswap/app"
	"github.com/nativeswap/nativeswap/app/telemetry"
)

const (
	envPrefix      = "NSWAP"
	configFileName = "nswapd"
	genesisFile    = "genesis.json"

	defaultMetricsPort = 36660
)

// NodeConfig is the daemon configuration read from
// $HOME/config/nswapd.toml, overridable by NSWAP_* environment variables
// and flags.
type NodeConfig struct {
	ChainID        string `mapstructure:"chain-id"`
	NativeDenom    string `mapstructure:"native-denom"`
	LogLevel       string `mapstructure:"log-level"`
	LogJSON        bool   `mapstructure:"log-json"`
	DBBackend      string `mapstructure:"db-backend"`
	InvariantCheck bool   `mapstructure:"invariant-check"`

	Roles struct {
		Admins       []string `mapstructure:"admins"`
		FeeOperators []string `mapstructure:"fee-operators"`
		Signers      []string `mapstructure:"signers"`
	} `mapstructure:"roles"`

	API struct {
		Address         string        `mapstructure:"address"`
		JWTSecret       string        `mapstructure:"jwt-secret"`
		TokenTTL        time.Duration `mapstructure:"token-ttl"`
		CORSOrigins     []string      `mapstructure:"cors-origins"`
		RateLimitRPS    int           `mapstructure:"rate-limit-rps"`
		RequestTimeout  time.Duration `mapstructure:"request-timeout"`
		DefaultDeadline time.Duration `mapstructure:"default-deadline"`
	} `mapstructure:"api"`

	Telemetry struct {
		telemetry.Config `mapstructure:",squash"`
		MetricsPort      int `mapstructure:"metrics-port"`
	} `mapstructure:"telemetry"`
}

// setDefaults registers every key so environment overrides apply to keys
// absent from the file.
func setDefaults(v *viper.Viper) {
	apiDefaults := api.DefaultConfig()

	v.SetDefault("chain-id", "nativeswap-1")
	v.SetDefault("native-denom", app.DefaultNativeDenom)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-json", false)
	v.SetDefault("db-backend", "goleveldb")
	v.SetDefault("invariant-check", true)
	v.SetDefault("roles.admins", []string{})
	v.SetDefault("roles.fee-operators", []string{})
	v.SetDefault("roles.signers", []string{})
	v.SetDefault("api.address", apiDefaults.Host+":"+apiDefaults.Port)
	v.SetDefault("api.jwt-secret", "")
	v.SetDefault("api.token-ttl", apiDefaults.TokenTTL)
	v.SetDefault("api.cors-origins", apiDefaults.CORSOrigins)
	v.SetDefault("api.rate-limit-rps", apiDefaults.RateLimitRPS)
	v.SetDefault("api.request-timeout", apiDefaults.RequestTimeout)
	v.SetDefault("api.default-deadline", apiDefaults.DefaultDeadline)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp-endpoint", "")
	v.SetDefault("telemetry.sample-rate", 1.0)
	v.SetDefault("telemetry.environment", "development")
	v.SetDefault("telemetry.prometheus-enabled", true)
	v.SetDefault("telemetry.metrics-port", defaultMetricsPort)
}

// newViper builds the layered configuration for home.
func newViper(home string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(home, "config"))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file if present and decodes it.
func loadConfig(v *viper.Viper) (NodeConfig, error) {
	var cfg NodeConfig
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	// Environment overrides arrive as comma separated strings.
	cfg.Roles.Admins = splitList(v.Get("roles.admins"))
	cfg.Roles.FeeOperators = splitList(v.Get("roles.fee-operators"))
	cfg.Roles.Signers = splitList(v.Get("roles.signers"))
	cfg.API.CORSOrigins = splitList(v.Get("api.cors-origins"))
	return cfg, nil
}

func splitList(raw any) []string {
	if s, ok := raw.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		raw = strings.Split(s, ",")
	}
	var out []string
	for _, item := range cast.ToStringSlice(raw) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseAddresses(role string, raw []string) ([]sdk.AccAddress, error) {
	addrs := make([]sdk.AccAddress, 0, len(raw))
	for _, s := range raw {
		addr, err := sdk.AccAddressFromBech32(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s address %q: %w", role, s, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// AppConfig converts the node config into the engine config.
func (c NodeConfig) AppConfig() (app.Config, error) {
	admins, err := parseAddresses("admin", c.Roles.Admins)
	if err != nil {
		return app.Config{}, err
	}
	feeOps, err := parseAddresses("fee operator", c.Roles.FeeOperators)
	if err != nil {
		return app.Config{}, err
	}
	signers, err := parseAddresses("signer", c.Roles.Signers)
	if err != nil {
		return app.Config{}, err
	}
	return app.Config{
		ChainID:     c.ChainID,
		NativeDenom: c.NativeDenom,
		Roles: app.Roles{
			Admins:       admins,
			FeeOperators: feeOps,
			Signers:      signers,
		},
		InvariantCheck: c.InvariantCheck,
	}, nil
}

// APIConfig converts the node config into the gateway config.
func (c NodeConfig) APIConfig() (*api.Config, error) {
	cfg := api.DefaultConfig()
	host, port, err := splitHostPort(c.API.Address)
	if err != nil {
		return nil, err
	}
	cfg.Host, cfg.Port = host, port
	cfg.JWTSecret = []byte(c.API.JWTSecret)
	cfg.TokenTTL = c.API.TokenTTL
	cfg.CORSOrigins = c.API.CORSOrigins
	cfg.RateLimitRPS = c.API.RateLimitRPS
	cfg.RequestTimeout = c.API.RequestTimeout
	cfg.DefaultDeadline = c.API.DefaultDeadline
	return cfg, nil
}

// TelemetryConfig returns the tracing and metrics config.
func (c NodeConfig) TelemetryConfig() telemetry.Config {
	cfg := c.Telemetry.Config
	cfg.ChainID = c.ChainID
	return cfg
}

func splitHostPort(addr string) (string, string, error) {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return "", "", fmt.Errorf("invalid api address %q: missing port", addr)
	}
	port := addr[i+1:]
	if p := cast.ToInt(port); p <= 0 || p > 65535 {
		return "", "", fmt.Errorf("invalid api address %q: bad port", addr)
	}
	return addr[:i], port, nil
}

// defaultConfigTOML is written by init.
const defaultConfigTOML = `# nswapd configuration

chain-id = "%s"
native-denom = "%s"
log-level = "info"
log-json = false
db-backend = "goleveldb"
invariant-check = true

[roles]
admins = [%s]
fee-operators = [%s]
signers = [%s]

[api]
address = "0.0.0.0:5000"
jwt-secret = "%s"
token-ttl = "24h"
cors-origins = ["http://localhost:3000"]
rate-limit-rps = 100
request-timeout = "30s"
default-deadline = "20m"

[telemetry]
enabled = false
# full URL of the OTLP/HTTP collector, e.g. "http://localhost:4318"
otlp-endpoint = ""
sample-rate = 1.0
environment = "development"
prometheus-enabled = true
metrics-port = %d
`

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

func writeDefaultConfig(path, chainID, denom, secret string, admins, feeOps, signers []string) error {
	body := fmt.Sprintf(defaultConfigTOML, chainID, denom,
		quoteList(admins), quoteList(feeOps), quoteList(signers), secret, defaultMetricsPort)
	return os.WriteFile(path, []byte(body), 0o600)
}
