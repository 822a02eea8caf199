// Package config loads the optional settings file and STREAKGUARD_* environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/utils"
)

// Config holds settings that are not part of the tracked key space.
type Config struct {
	// Storage is a SQLite file path or a PostgreSQL URL.
	Storage            string `mapstructure:"storage"`
	Timezone           string `mapstructure:"timezone"`
	Debug              bool   `mapstructure:"debug"`
	CalendarWindowDays int    `mapstructure:"calendar_window_days"`
}

// Load reads config.yaml from configDir if present. Missing files are fine; environment
// variables such as STREAKGUARD_TIMEZONE override file values.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType(constants.ConfigFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(constants.ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultDir is the directory holding config.yaml, the database and logs.
func DefaultDir() (string, error) {
	path, err := utils.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ConfigStorage, constants.DefaultConfigPath)
	v.SetDefault(constants.ConfigTimezone, constants.DefaultTimezone)
	v.SetDefault(constants.ConfigDebug, false)
	v.SetDefault(constants.ConfigCalendarWindowDays, constants.DefaultCalendarWindowDays)
}

func (c *Config) validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q in config", c.Timezone)
	}
	if c.CalendarWindowDays < 1 || c.CalendarWindowDays > 366 {
		return fmt.Errorf("calendar_window_days must be between 1 and 366, got %d", c.CalendarWindowDays)
	}
	if strings.TrimSpace(c.Storage) == "" {
		return fmt.Errorf("storage must not be empty")
	}
	return nil
}
