package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	APIBaseURL       string `mapstructure:"API_BASE_URL"`
	BadgerDBPath     string `mapstructure:"BADGERDB_PATH"`
	RequestTimeoutMs int    `mapstructure:"REQUEST_TIMEOUT_MS"`
	SlowLoadMs       int    `mapstructure:"SLOW_LOAD_MS"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("API_BASE_URL", "https://conduit.productionready.io/api")
	viper.SetDefault("BADGERDB_PATH", "./conduit_data")
	viper.SetDefault("REQUEST_TIMEOUT_MS", 5000)
	viper.SetDefault("SLOW_LOAD_MS", 500)
	viper.SetDefault("LOG_LEVEL", "info")

	// Allow reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine, the defaults and env vars carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.RequestTimeoutMs <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT_MS must be positive")
	}
	if config.SlowLoadMs <= 0 {
		return Config{}, fmt.Errorf("SLOW_LOAD_MS must be positive")
	}

	return config, nil
}

// RequestTimeout is the HTTP client timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// SlowLoadThreshold is how long a fetch may run before the UI switches to
// the explicit loading indicator.
func (c Config) SlowLoadThreshold() time.Duration {
	return time.Duration(c.SlowLoadMs) * time.Millisecond
}
