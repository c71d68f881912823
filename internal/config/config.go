// Package config loads and stores matrixctl settings.
//
// The default file is config.json in the XDG config dir. Files given
// explicitly may be JSON, YAML or TOML, chosen by extension. Secrets are not
// kept here; the bearer token lives in the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"sportsmatrix/cli/internal/xdg"
)

// Environment overrides, applied after the file is read.
const (
	EnvURL      = "MATRIXCTL_URL"
	EnvEncoding = "MATRIXCTL_ENCODING"
	EnvLogLevel = "MATRIXCTL_LOG_LEVEL"
)

// Defaults used when neither the file nor the environment set a value.
const (
	DefaultBaseURL    = "http://localhost:8080"
	DefaultPathPrefix = "/api"
	DefaultEncoding   = "json"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "info"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL    string                 `json:"base_url" yaml:"base_url" toml:"base_url"`
	PathPrefix string                 `json:"path_prefix" yaml:"path_prefix" toml:"path_prefix"`
	Encoding   string                 `json:"encoding" yaml:"encoding" toml:"encoding"`
	Timeout    Duration               `json:"timeout" yaml:"timeout" toml:"timeout"`
	LogLevel   string                 `json:"log_level" yaml:"log_level" toml:"log_level"`
	Boards     map[string]BoardConfig `json:"boards,omitempty" yaml:"boards,omitempty" toml:"boards,omitempty"`
}

// BoardConfig overrides or adds a board. Empty fields keep the built-in value.
type BoardConfig struct {
	Path  string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Asset string `json:"asset,omitempty" yaml:"asset,omitempty" toml:"asset,omitempty"`
}

// Duration is a time.Duration written as a string such as "10s" in every format.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		PathPrefix: DefaultPathPrefix,
		Encoding:   DefaultEncoding,
		Timeout:    Duration(DefaultTimeout),
		LogLevel:   DefaultLogLevel,
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from path, or from the default file when path is
// empty. A missing default file yields defaults; a missing explicit file is
// an error. Environment overrides are applied and the result is validated.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	c := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &c); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, err
	}

	c.applyEnv()
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func decode(path string, data []byte, c *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.UnmarshalStrict(data, c)
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	case ".json", "":
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// fillDefaults restores values a file set to empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Encoding == "" {
		c.Encoding = d.Encoding
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	c.Encoding = strings.ToLower(c.Encoding)
}

// Validate rejects unusable settings.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url %q: missing host", c.BaseURL)
	}
	switch c.Encoding {
	case "json", "protobuf":
	default:
		return fmt.Errorf("encoding %q: want json or protobuf", c.Encoding)
	}
	for name, b := range c.Boards {
		if strings.TrimSpace(name) == "" {
			return errors.New("boards: empty board name")
		}
		if strings.ContainsAny(b.Path, " ?#") {
			return fmt.Errorf("boards.%s.path %q: invalid characters", name, b.Path)
		}
	}
	return nil
}

// Host returns the host[:port] of BaseURL, used to key stored tokens.
func (c Config) Host() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return c.BaseURL
	}
	return u.Host
}

// SaveBaseURL records baseURL in the default config file. Other settings
// already in the file are kept; environment overrides are not written.
func SaveBaseURL(baseURL string) error {
	p, err := Path()
	if err != nil {
		return err
	}
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := decode(p, data, &c); err != nil {
			return fmt.Errorf("config %s: %w", p, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	c.BaseURL = baseURL
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return err
	}
	return Save(c)
}

// Save writes c as JSON to the default path with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
