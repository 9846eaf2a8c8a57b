package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
}

type GRPCConfig struct {
	Address string `yaml:"address" env:"GRPC_ADDRESS" env-default:":9090"`
}

type DBConfig struct {
	Driver      string `yaml:"driver" env:"DB_DRIVER" env-default:"pgx"` // pgx | sqlite3
	Address     string `yaml:"address" env:"DB_ADDRESS" env-required:"true"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer" env:"AUTH_ISSUER"`
}

type TasksConfig struct {
	// EnforceOwnership scopes show/edit/update/delete to the task owner.
	EnforceOwnership bool `yaml:"enforce_ownership" env:"TASKS_ENFORCE_OWNERSHIP" env-default:"true"`
}

type Config struct {
	LogLevel  string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	LogFormat string      `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	HTTP      HTTPConfig  `yaml:"http"`
	GRPC      GRPCConfig  `yaml:"grpc"`
	DB        DBConfig    `yaml:"db"`
	Auth      AuthConfig  `yaml:"auth"`
	Tasks     TasksConfig `yaml:"tasks"`
}

// Load reads configPath, falling back to the environment when the path is
// empty or the file does not exist.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("cannot read config %q: %w", configPath, err)
		}
		cfg = Config{}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case "pgx", "sqlite3":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTP.Timeout)
	}
	return nil
}
