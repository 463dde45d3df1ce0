package config

import "github.com/spf13/viper"

// OpenSearch holds the cluster connection settings.
type OpenSearch struct {
	Addresses       []string `json:"addresses" yaml:"addresses"`
	Username        string   `json:"username" yaml:"username"`
	Password        string   `json:"password" yaml:"password"`
	InsecureSkipTLS bool     `json:"insecure_skip_tls" yaml:"insecure_skip_tls"`
}

func getOpenSearchConfigs(v *viper.Viper) *OpenSearch {
	return &OpenSearch{
		Addresses:       engineSlice(v, "opensearch", "addresses"),
		Username:        engineString(v, "opensearch", "username"),
		Password:        engineString(v, "opensearch", "password"),
		InsecureSkipTLS: engineBool(v, "opensearch", "insecure_skip_tls"),
	}
}
