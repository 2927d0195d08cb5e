package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration lets YAML values like "10s" or "1m" decode into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type AppCfg struct {
	Env          string   `yaml:"env"`
	Port         int      `yaml:"port"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
	JWT          struct {
		Secret  string `yaml:"secret"`
		TTLDays int    `yaml:"ttlDays"`
	} `yaml:"jwt"`
}

type MongoCfg struct {
	URI            string   `yaml:"uri"`
	Database       string   `yaml:"database"`
	ConnectTimeout Duration `yaml:"connect_timeout"`
}

type RedisCfg struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CollectionsCfg struct {
	Users   string `yaml:"users"`
	Doctors string `yaml:"doctors"`
}

type SecurityCfg struct {
	AuthRateLimitPerMinute int `yaml:"authRateLimitPerMinute"`
}

type Config struct {
	App         AppCfg         `yaml:"app"`
	Mongo       MongoCfg       `yaml:"mongo"`
	Redis       RedisCfg       `yaml:"redis"`
	Collections CollectionsCfg `yaml:"collections"`
	Security    SecurityCfg    `yaml:"security"`
}

// Load reads the YAML config file and applies environment overrides on top.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	override("APP_PORT", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	})
	override("JWT_SECRET", func(v string) { cfg.App.JWT.Secret = v })
	override("JWT_TTL_DAYS", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.JWT.TTLDays = n
		}
	})
	override("MONGO_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	override("AUTH_RATE_LIMIT_PER_MINUTE", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.AuthRateLimitPerMinute = n
		}
	})

	if cfg.App.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required (set in .env or config.yaml)")
	}
	if cfg.App.JWT.TTLDays <= 0 {
		cfg.App.JWT.TTLDays = 7
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.Mongo.ConnectTimeout <= 0 {
		cfg.Mongo.ConnectTimeout = Duration(15 * time.Second)
	}
	if cfg.Collections.Users == "" {
		cfg.Collections.Users = "users"
	}
	if cfg.Collections.Doctors == "" {
		cfg.Collections.Doctors = "doctors"
	}

	return cfg, nil
}
