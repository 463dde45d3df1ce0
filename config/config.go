// Package config loads the application configuration from a YAML file
// and exposes typed sections for the logger, observability and data
// layers. The file is read with viper and can be watched for changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ncobase/ncursor/validation/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	AppName     string `json:"app_name" validate:"required"`
	Environment string `json:"environment" validate:"required"`
	Logger      *Logger
	Observes    *Observes
	Data        *Data
	Viper       *viper.Viper

	mu sync.Mutex
}

// LoadConfig loads the configuration from the given file. An empty path
// falls back to a config.yaml next to the executable, in the working
// directory, or under /etc/ncursor and $HOME/.ncursor.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/ncursor")
		v.AddConfigPath("$HOME/.ncursor")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}

	v.SetDefault("app_name", "ncursor")
	v.SetDefault("environment", "dev")
	v.SetEnvPrefix("ncursor")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := readConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfig(v *viper.Viper) *Config {
	return &Config{
		AppName:     v.GetString("app_name"),
		Environment: v.GetString("environment"),
		Logger:      getLoggerConfig(v),
		Observes:    getObservesConfig(v),
		Data:        getDataConfig(v),
		Viper:       v,
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if errs := validator.ValidateStruct(c); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, msg := range errs {
			msgs = append(msgs, msg)
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, " "))
	}
	return nil
}

// Reload re-reads the configuration file into this Config.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	fresh := readConfig(c.Viper)
	if err := fresh.Validate(); err != nil {
		return err
	}

	c.AppName = fresh.AppName
	c.Environment = fresh.Environment
	c.Logger = fresh.Logger
	c.Observes = fresh.Observes
	c.Data = fresh.Data
	return nil
}

// Watch reloads the configuration whenever the file changes on disk and
// hands the refreshed Config to callback. A reload that fails validation
// keeps the previous values.
func (c *Config) Watch(callback func(*Config)) {
	c.Viper.WatchConfig()
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if err := c.Reload(); err != nil {
			fmt.Printf("config reload failed: %v\n", err)
			return
		}
		callback(c)
	})
}
