package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultPath = "./config/config.yaml"

type HTTP struct {
	Addr           string        `yaml:"addr"`           // ":8080"
	ReadTimeout    time.Duration `yaml:"readTimeout"`    // "15s"
	WriteTimeout   time.Duration `yaml:"writeTimeout"`   // "30s"
	IdleTimeout    time.Duration `yaml:"idleTimeout"`    // "60s"
	RequestTimeout time.Duration `yaml:"requestTimeout"` // "30s"
	StaticDir      string        `yaml:"staticDir"`      // "./static"
	AllowedOrigins []string      `yaml:"allowedOrigins"` // ["*"]
	WSPingInterval time.Duration `yaml:"wsPingInterval"` // "15s"
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // activity-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Registry struct {
	SeedPath        string `yaml:"seedPath"` // empty: embedded catalog
	EnforceCapacity *bool  `yaml:"enforceCapacity"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Registry Registry `yaml:"registry"`
}

// CapacityEnforced reports whether joins past max_participants are rejected.
func (r Registry) CapacityEnforced() bool {
	return r.EnforceCapacity == nil || *r.EnforceCapacity
}

// LoadConfig reads .env (if any), then the YAML file at CONFIG_PATH.
// A missing file at the default path yields the defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("SEED_PATH"); v != "" {
		c.Registry.SeedPath = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Logging.Env = v
	}
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = 30 * time.Second
	}
	if c.HTTP.WSPingInterval == 0 {
		c.HTTP.WSPingInterval = 15 * time.Second
	}
	if c.HTTP.StaticDir == "" {
		c.HTTP.StaticDir = "./static"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 || c.HTTP.IdleTimeout < 0 || c.HTTP.RequestTimeout < 0 || c.HTTP.WSPingInterval < 0 {
		return errors.New("http timeouts must not be negative")
	}

	if c.Logging.Service == "" {
		c.Logging.Service = "activity-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	switch strings.ToLower(c.Logging.Backend) {
	case "":
	case "std", "zap":
		c.Logging.Backend = strings.ToLower(c.Logging.Backend)
	default:
		return fmt.Errorf("logging.backend %q: want std or zap", c.Logging.Backend)
	}
	return nil
}
