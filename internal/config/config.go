package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Tiliavir/healthsync/internal/credentials"
)

// Config is the root configuration for healthsync. Values come from the
// environment, then ~/.healthsync/config.yaml, then built-in defaults.
type Config struct {
	API  APIConfig  `yaml:"api"`
	Auth AuthConfig `yaml:"auth"`
	Log  LogConfig  `yaml:"log"`
}

// APIConfig holds the remote API settings.
type APIConfig struct {
	// URL is the API root; every collection path is appended to it.
	URL string `yaml:"url" env:"HEALTHSYNC_API_URL" env-default:"http://localhost:5000/api"`
}

// AuthConfig tells the credential lookup where tokens live.
type AuthConfig struct {
	// TokenEnv names the environment variable holding a session token.
	TokenEnv string `yaml:"token_env" env:"HEALTHSYNC_TOKEN_ENV" env-default:"HEALTHSYNC_TOKEN"`
	// TokenFile is the persistent token file. Empty = ~/.healthsync/auth/token.json.
	TokenFile string `yaml:"token_file" env:"HEALTHSYNC_TOKEN_FILE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"HEALTHSYNC_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"HEALTHSYNC_LOG_FORMAT" env-default:"text"`
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# healthsync configuration – ~/.healthsync/config.yaml
#
# Every setting can be overridden by the environment variable named next to it.

api:
  # Root URL of the health records API (HEALTHSYNC_API_URL).
  url: "http://localhost:5000/api"

auth:
  # Environment variable checked for a session token (HEALTHSYNC_TOKEN_ENV).
  token_env: "HEALTHSYNC_TOKEN"
  # Persistent token file; empty means ~/.healthsync/auth/token.json (HEALTHSYNC_TOKEN_FILE).
  token_file: ""

log:
  # debug, info, warn or error (HEALTHSYNC_LOG_LEVEL).
  level: "warn"
  # text or json (HEALTHSYNC_LOG_FORMAT).
  format: "text"
`

// DefaultPath returns ~/.healthsync/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".healthsync", "config.yaml"), nil
}

// Load reads the configuration. The file is HEALTHSYNC_CONFIG if set,
// otherwise ~/.healthsync/config.yaml. When the default file is missing it is
// created from an annotated template and the environment plus defaults are
// used. An explicitly named file must exist.
func Load() (*Config, error) {
	path := os.Getenv("HEALTHSYNC_CONFIG")
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return LoadFile(path, explicit)
}

// LoadFile reads configuration from path. If the file does not exist and
// required is false, the template is written there (best-effort) and only
// the environment and defaults apply.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, os.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := writeDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// finish validates cfg and fills values that depend on the environment.
func (c *Config) finish() error {
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url %q must be an absolute http(s) URL", c.API.URL)
	}
	if c.Auth.TokenEnv == "" {
		return errors.New("auth.token_env must not be empty")
	}
	if c.Auth.TokenFile == "" {
		path, err := credentials.DefaultTokenFile()
		if err != nil {
			return err
		}
		c.Auth.TokenFile = path
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
