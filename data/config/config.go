// Package config declares the data layer configuration surface and reads
// it from viper.
package config

import (
	"github.com/spf13/viper"
)

// Config is the data section of the application configuration.
type Config struct {
	*Search `yaml:"search" json:"search"`
}

// GetConfig reads the data section from viper.
func GetConfig(v *viper.Viper) *Config {
	return &Config{
		Search: getSearchConfig(v),
	}
}

func getIntOrDefault(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}

func getStringOrDefault(v *viper.Viper, key string, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getBoolOrDefault(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getSliceOrDefault treats an absent or empty list as unset.
func getSliceOrDefault(v *viper.Viper, key string, def []string) []string {
	if s := v.GetStringSlice(key); len(s) > 0 {
		return s
	}
	return def
}

// Engine connection settings live under data.search.<engine>. The bare
// data.<engine> location predates the search section and is still read
// when the nested one is absent.

func engineString(v *viper.Viper, engine, field string) string {
	if s := v.GetString("data.search." + engine + "." + field); s != "" {
		return s
	}
	return v.GetString("data." + engine + "." + field)
}

func engineSlice(v *viper.Viper, engine, field string) []string {
	if s := v.GetStringSlice("data.search." + engine + "." + field); len(s) > 0 {
		return s
	}
	return v.GetStringSlice("data." + engine + "." + field)
}

func engineBool(v *viper.Viper, engine, field string) bool {
	if v.IsSet("data.search." + engine + "." + field) {
		return v.GetBool("data.search." + engine + "." + field)
	}
	return v.GetBool("data." + engine + "." + field)
}
