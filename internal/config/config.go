package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Counter  CounterConfig  `mapstructure:"counter"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	Migrations string `mapstructure:"migrations" validate:"required"`
}

// CounterConfig holds animated counter settings.
type CounterConfig struct {
	CompactDuration time.Duration `mapstructure:"compact_duration" validate:"gt=0"`
	HeroDuration    time.Duration `mapstructure:"hero_duration" validate:"gt=0"`
	Easing          string        `mapstructure:"easing" validate:"oneof=quart cubic linear"`
	Locale          string        `mapstructure:"locale" validate:"required,bcp47_language_tag"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `mapstructure:"theme" validate:"oneof=light green blue ocean"`
	Role  string `mapstructure:"role" validate:"required"`
	FPS   int    `mapstructure:"fps" validate:"min=1,max=240"`
	// RefreshInterval of zero disables polling.
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gte=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `mapstructure:"path" validate:"required"`
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
}

var validate = validator.New()

func home() string { return os.Getenv("HOME") }

// DefaultPath is where Load looks for config.toml unless CAMPUSBOARD_CONFIG is set.
func DefaultPath() string {
	if p := os.Getenv("CAMPUSBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "campusboard", "config.toml")
}

// Load reads configuration from an optional .env file, the toml config file and
// the environment. Env var overrides use prefix CAMPUSBOARD_.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "campusboard", "campusboard.db"))
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("counter.compact_duration", 1500*time.Millisecond)
	v.SetDefault("counter.hero_duration", 2000*time.Millisecond)
	v.SetDefault("counter.easing", "quart")
	v.SetDefault("counter.locale", "en")
	v.SetDefault("ui.theme", "light")
	v.SetDefault("ui.role", "admin")
	v.SetDefault("ui.fps", 60)
	v.SetDefault("ui.refresh_interval", 5*time.Second)
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "campusboard", "campusboard.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	if p := os.Getenv("CAMPUSBOARD_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "campusboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CAMPUSBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges and enumerations.
func Validate(c Config) error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func loadDotEnv() error {
	path := os.Getenv("CAMPUSBOARD_DOTENV")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "stat %s", path)
	}
	return errors.Wrapf(godotenv.Load(path), "load %s", path)
}

// Save writes cfg to DefaultPath, creating the config directory if needed.
func Save(cfg Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("counter.compact_duration", cfg.Counter.CompactDuration.String())
	v.Set("counter.hero_duration", cfg.Counter.HeroDuration.String())
	v.Set("counter.easing", cfg.Counter.Easing)
	v.Set("counter.locale", cfg.Counter.Locale)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.role", cfg.UI.Role)
	v.Set("ui.fps", cfg.UI.FPS)
	v.Set("ui.refresh_interval", cfg.UI.RefreshInterval.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
