package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/config"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/utils"
)

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Timezone string         `yaml:"timezone"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
	Calendar CalendarConfig `yaml:"calendar"`
}

type StorageConfig struct {
	// DSN is a SQLite file path or a postgres:// connection string.
	DSN string `yaml:"dsn"`
}

type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type WatchConfig struct {
	Schedule string `yaml:"schedule"`
}

type CalendarConfig struct {
	// ObservancesFile replaces the built-in observance table when set.
	ObservancesFile string `yaml:"observances_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timezone: constants.DefaultTimezone,
		Logging: LoggingConfig{
			Level: constants.DefaultLogLevel,
			Dir:   filepath.Join(constants.DefaultConfigDir, constants.LogDirName),
		},
		Watch: WatchConfig{
			Schedule: constants.DefaultWatchSchedule,
		},
	}
}

// DefaultPath returns the default location of the config file.
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
}

// Load builds the configuration from defaults, the YAML file at path and
// ALMANAC_* environment variables, in that order. A .env file in the working
// directory is loaded into the environment before either is read. A missing
// file at path is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	// .env is loaded first so ${VAR} in the YAML file can see its variables.
	if err := godotenv.Load(constants.DefaultDotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", constants.DefaultDotEnvFile, err)
	}

	opts := []config.YAMLOption{config.Static(Default())}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, config.File(path))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	opts = append(opts, config.Expand(os.LookupEnv))

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create config provider: %w", err)
	}

	var cfg Config
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("failed to populate config: %w", err)
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	if cfg.Logging.Dir, err = ExpandPath(cfg.Logging.Dir); err != nil {
		return nil, err
	}
	if cfg.Calendar.ObservancesFile, err = ExpandPath(cfg.Calendar.ObservancesFile); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables if present
func (c *Config) overrideFromEnv() {
	if val := os.Getenv(constants.EnvPrefix + "DB"); val != "" {
		c.Storage.DSN = val
	}
	if val := os.Getenv(constants.EnvPrefix + "TIMEZONE"); val != "" {
		c.Timezone = val
	}
	if val := os.Getenv(constants.EnvPrefix + "DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Logging.Debug = debug
		}
	}
	if val := os.Getenv(constants.EnvPrefix + "LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv(constants.EnvPrefix + "LOG_DIR"); val != "" {
		c.Logging.Dir = val
	}
	if val := os.Getenv(constants.EnvPrefix + "WATCH_SCHEDULE"); val != "" {
		c.Watch.Schedule = val
	}
	if val := os.Getenv(constants.EnvPrefix + "OBSERVANCES_FILE"); val != "" {
		c.Calendar.ObservancesFile = val
	}
}

// Validate checks the timezone and the watch schedule.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", c.Watch.Schedule, err)
	}
	return nil
}

// ConfigDir returns the expanded default configuration directory.
func ConfigDir() (string, error) {
	return ExpandPath(constants.DefaultConfigDir)
}

// DefaultDBPath returns the default SQLite database path.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DefaultDBFile), nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ResolveDSN picks the database location: an explicit flag value first, then the
// configured DSN, then the keyring lookup, then the default SQLite file.
func ResolveDSN(flagDSN string, cfg *Config, fromKeyring func() (string, error)) (string, error) {
	if flagDSN != "" {
		return ExpandPath(flagDSN)
	}
	if cfg != nil && cfg.Storage.DSN != "" {
		return ExpandPath(cfg.Storage.DSN)
	}
	if fromKeyring != nil {
		if dsn, err := fromKeyring(); err == nil && dsn != "" {
			return dsn, nil
		}
	}
	return DefaultDBPath()
}
