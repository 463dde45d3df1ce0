package config

import "github.com/spf13/viper"

// MongoDB holds the deployment connection settings.
type MongoDB struct {
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`
}

func getMongoDBConfigs(v *viper.Viper) *MongoDB {
	return &MongoDB{
		URI:      engineString(v, "mongodb", "uri"),
		Database: engineString(v, "mongodb", "database"),
	}
}
