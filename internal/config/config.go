// Package config provides YAML configuration loading and validation.
// It handles environment variable expansion, default values, and the
// flag/environment overrides applied on top of the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultConfigFile = "config/esplora.yaml"
	DefaultNetwork    = "https://blockstream.info/api"
	DefaultChain      = "mainnet"
	DefaultTimeout    = 10 * time.Second
	DefaultBackoff    = 250 * time.Millisecond
	DefaultBackoffMax = 2 * time.Second
)

// LogLevel is a logger severity name.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Network   string     `yaml:"network"`   // Esplora base URL used when no provider is selected
	Chain     string     `yaml:"chain"`     // mainnet, testnet, signet or regtest (address decoding)
	Providers []Provider `yaml:"providers"` // Named endpoints for --provider and the status command
	Defaults  Defaults   `yaml:"defaults"`
	Log       LogConfig  `yaml:"log"`
}

// Provider is a named Esplora endpoint.
type Provider struct {
	Name    string        `yaml:"name"`
	URL     string        `yaml:"url"`               // supports ${VAR} env expansion
	Timeout time.Duration `yaml:"timeout,omitempty"` // falls back to Defaults.Timeout
}

// Defaults apply to every request unless a provider overrides them.
type Defaults struct {
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"` // read retries; broadcast is never retried
	BackoffInitial time.Duration `yaml:"backoff_initial"`
	BackoffMax     time.Duration `yaml:"backoff_max"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Overrides are values taken from flags or ESPLORA_* environment variables.
// Zero values leave the file setting in place.
type Overrides struct {
	Network    string
	Chain      string
	Timeout    time.Duration
	MaxRetries *int
	LogLevel   string
	LogFormat  string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Network: DefaultNetwork,
		Chain:   DefaultChain,
		Defaults: Defaults{
			Timeout:        DefaultTimeout,
			BackoffInitial: DefaultBackoff,
			BackoffMax:     DefaultBackoffMax,
		},
		Log: LogConfig{Level: LogLevelWarn, Format: LogFormatText},
	}
}

// Load reads a YAML configuration file on top of Default. A missing file is
// only an error when the caller asked for a specific path.
//
// URLs can use ${VAR} syntax, expanded with os.ExpandEnv before parsing.
func Load(path string) (*Config, error) {
	cfg := Default()

	loadPath := path
	if loadPath == "" {
		loadPath = DefaultConfigFile
	}

	data, err := os.ReadFile(loadPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && (path == "" || path == DefaultConfigFile) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", loadPath, err)
	}

	return cfg, nil
}

// Apply copies non-zero overrides into the configuration.
func (c *Config) Apply(o Overrides) {
	if o.Network != "" {
		c.Network = o.Network
	}
	if o.Chain != "" {
		c.Chain = o.Chain
	}
	if o.Timeout > 0 {
		c.Defaults.Timeout = o.Timeout
	}
	if o.MaxRetries != nil {
		c.Defaults.MaxRetries = *o.MaxRetries
	}
	if o.LogLevel != "" {
		c.Log.Level = LogLevel(strings.ToLower(o.LogLevel))
	}
	if o.LogFormat != "" {
		c.Log.Format = LogFormat(strings.ToLower(o.LogFormat))
	}
}

// Validate checks the configuration and fills provider timeouts from Defaults.
func (c *Config) Validate() error {
	if c.Defaults.Timeout <= 0 {
		return fmt.Errorf("defaults.timeout must be > 0")
	}
	if c.Defaults.MaxRetries < 0 {
		return fmt.Errorf("defaults.max_retries must be >= 0")
	}
	if err := validateURL("network", c.Network); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Providers))
	for i := range c.Providers {
		p := &c.Providers[i]
		if p.Name == "" {
			return fmt.Errorf("providers[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("provider %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if p.Timeout == 0 {
			p.Timeout = c.Defaults.Timeout
		}
		if err := validateURL("provider "+p.Name, p.URL); err != nil {
			return err
		}
	}
	return nil
}

// Warnings reports suspicious but accepted values.
func (c *Config) Warnings() []string {
	const low = 500 * time.Millisecond
	const high = 2 * time.Minute

	var out []string
	check := func(scope string, d time.Duration) {
		if d > 0 && d < low {
			out = append(out, fmt.Sprintf("%s timeout is very low (%s); requests may fail under normal network jitter", scope, d))
		}
		if d > high {
			out = append(out, fmt.Sprintf("%s timeout is very high (%s); failures may take a long time to surface", scope, d))
		}
	}
	check("defaults", c.Defaults.Timeout)
	for _, p := range c.Providers {
		check("provider "+p.Name, p.Timeout)
	}
	return out
}

// Endpoint resolves the endpoint for this invocation: the named provider if
// one is given, otherwise the network URL.
func (c *Config) Endpoint(providerName string) (Provider, error) {
	if providerName == "" {
		return Provider{Name: hostOf(c.Network), URL: c.Network, Timeout: c.Defaults.Timeout}, nil
	}
	for _, p := range c.Providers {
		if p.Name == providerName {
			if p.Timeout == 0 {
				p.Timeout = c.Defaults.Timeout
			}
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("provider '%s' not found in config", providerName)
}

// AllEndpoints returns every configured provider, or the network URL alone
// when no providers are configured.
func (c *Config) AllEndpoints() []Provider {
	if len(c.Providers) == 0 {
		p, _ := c.Endpoint("")
		return []Provider{p}
	}
	return c.Providers
}

func validateURL(scope, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s: url is required", scope)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", scope, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: invalid url (missing scheme or host)", scope)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: invalid url scheme %q (expected http or https)", scope, u.Scheme)
	}
	return nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
