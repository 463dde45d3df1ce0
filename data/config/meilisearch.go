package config

import "github.com/spf13/viper"

// Meilisearch holds the instance connection settings.
type Meilisearch struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

func getMeilisearchConfigs(v *viper.Viper) *Meilisearch {
	return &Meilisearch{
		Host:   engineString(v, "meilisearch", "host"),
		APIKey: engineString(v, "meilisearch", "api_key"),
	}
}
