package enroll

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/bhabibullo/Education-Bot/core/config"
	coredatabase "github.com/bhabibullo/Education-Bot/core/database"
)

// SenderConfig tunes the outbound send dispatcher.
type SenderConfig struct {
	QueueSize int `yaml:"queue_size" envconfig:"SENDER_QUEUE_SIZE"`
	Workers   int `yaml:"workers" envconfig:"SENDER_WORKERS"`
}

// Config is the full application configuration: the shared core settings
// inline at the top level, plus the enrollment-specific sections.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Sender   SenderConfig        `yaml:"sender"`
	Catalog  Catalog             `yaml:"catalog"`
	About    AboutInfo           `yaml:"about"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads the YAML config, applies environment overrides, fills in
// catalog defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	applyDefaults(&cfg)

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultCatalog()
	if len(cfg.Catalog.Courses) == 0 {
		cfg.Catalog.Courses = def.Courses
	}
	if len(cfg.Catalog.Days) == 0 {
		cfg.Catalog.Days = def.Days
	}
	if len(cfg.Catalog.Times) == 0 {
		cfg.Catalog.Times = def.Times
	}

	about := DefaultAboutInfo()
	if cfg.About.Branches == "" {
		cfg.About.Branches = about.Branches
	}
	if cfg.About.Teachers == "" {
		cfg.About.Teachers = about.Teachers
	}
}
