package config

import "github.com/spf13/viper"

// The shipping backends are configured under logger.<engine>, separate
// from the data layer's engines, so log storage can point at a
// different cluster than the search index. A section that is absent in
// the file leaves the corresponding hook unattached.

// Elasticsearch holds the log shipping target for Elasticsearch.
type Elasticsearch struct {
	Addresses []string `json:"addresses"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
}

func getElasticsearchConfigs(v *viper.Viper) *Elasticsearch {
	if !v.IsSet("logger.elasticsearch") {
		return nil
	}
	return &Elasticsearch{
		Addresses: v.GetStringSlice("logger.elasticsearch.addresses"),
		Username:  v.GetString("logger.elasticsearch.username"),
		Password:  v.GetString("logger.elasticsearch.password"),
	}
}

// OpenSearch holds the log shipping target for OpenSearch.
type OpenSearch struct {
	Addresses       []string `json:"addresses"`
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	InsecureSkipTLS bool     `json:"insecure_skip_tls"`
}

func getOpenSearchConfigs(v *viper.Viper) *OpenSearch {
	if !v.IsSet("logger.opensearch") {
		return nil
	}
	return &OpenSearch{
		Addresses:       v.GetStringSlice("logger.opensearch.addresses"),
		Username:        v.GetString("logger.opensearch.username"),
		Password:        v.GetString("logger.opensearch.password"),
		InsecureSkipTLS: v.GetBool("logger.opensearch.insecure_skip_tls"),
	}
}

// Meilisearch holds the log shipping target for Meilisearch.
type Meilisearch struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

func getMeilisearchConfigs(v *viper.Viper) *Meilisearch {
	if !v.IsSet("logger.meilisearch") {
		return nil
	}
	return &Meilisearch{
		Host:   v.GetString("logger.meilisearch.host"),
		APIKey: v.GetString("logger.meilisearch.api_key"),
	}
}
