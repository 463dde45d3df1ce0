package config

import "github.com/spf13/viper"

// Elasticsearch holds the cluster connection settings.
type Elasticsearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

func getElasticsearchConfigs(v *viper.Viper) *Elasticsearch {
	return &Elasticsearch{
		Addresses: engineSlice(v, "elasticsearch", "addresses"),
		Username:  engineString(v, "elasticsearch", "username"),
		Password:  engineString(v, "elasticsearch", "password"),
	}
}
