package config

import "github.com/google/wire"

// ProviderSet exposes the typed configuration sections to wire, so
// downstream packages can depend on their own section instead of the
// whole *Config.
var ProviderSet = wire.NewSet(
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideObservesConfig,
)

// ProvideLoggerConfig extracts the logger section.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideDataConfig extracts the data layer section.
func ProvideDataConfig(cfg *Config) *Data {
	if cfg == nil {
		return nil
	}
	return cfg.Data
}

// ProvideObservesConfig extracts the observability section.
func ProvideObservesConfig(cfg *Config) *Observes {
	if cfg == nil {
		return nil
	}
	return cfg.Observes
}
