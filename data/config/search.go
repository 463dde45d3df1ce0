package config

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/spf13/viper"
)

// Search configures the unified search layer: engine endpoints, the shared
// index name prefix, and how missing indices are provisioned.
type Search struct {
	IndexPrefix     string         `yaml:"index_prefix" json:"index_prefix"`
	DefaultEngine   string         `yaml:"default_engine" json:"default_engine"`
	AutoCreateIndex bool           `yaml:"auto_create_index" json:"auto_create_index"`
	IndexSettings   *IndexSettings `yaml:"index_settings" json:"index_settings"`
	Elasticsearch   *Elasticsearch `yaml:"elasticsearch" json:"elasticsearch"`
	OpenSearch      *OpenSearch    `yaml:"opensearch" json:"opensearch"`
	Meilisearch     *Meilisearch   `yaml:"meilisearch" json:"meilisearch"`
	MongoDB         *MongoDB       `yaml:"mongodb" json:"mongodb"`
}

// IndexSettings shapes indices created by the auto-create path.
type IndexSettings struct {
	Shards           int      `yaml:"shards" json:"shards"`
	Replicas         int      `yaml:"replicas" json:"replicas"`
	RefreshInterval  string   `yaml:"refresh_interval" json:"refresh_interval"`
	SearchableFields []string `yaml:"searchable_fields" json:"searchable_fields"`
	FilterableFields []string `yaml:"filterable_fields" json:"filterable_fields"`
}

// Field lists applied when the config names none.
var (
	defaultSearchableFields = []string{"title", "content", "details", "name", "description"}
	defaultFilterableFields = []string{"id", "kind", "status", "created_at", "updated_at"}
)

// getSearchConfig assembles the search section from viper keys.
func getSearchConfig(v *viper.Viper) *Search {
	return &Search{
		IndexPrefix:     searchIndexPrefix(v),
		DefaultEngine:   getStringOrDefault(v, "data.search.default_engine", "elasticsearch"),
		AutoCreateIndex: getBoolOrDefault(v, "data.search.auto_create_index", true),
		IndexSettings:   searchIndexSettings(v),
		Elasticsearch:   getElasticsearchConfigs(v),
		OpenSearch:      getOpenSearchConfigs(v),
		Meilisearch:     getMeilisearchConfigs(v),
		MongoDB:         getMongoDBConfigs(v),
	}
}

// searchIndexPrefix resolves the index name prefix. An explicit
// data.search.index_prefix wins; otherwise the prefix is derived by
// slugging app_name plus environment so each deployment gets its own
// index namespace.
func searchIndexPrefix(v *viper.Viper) string {
	if v.IsSet("data.search.index_prefix") {
		return v.GetString("data.search.index_prefix")
	}

	appName := v.GetString("app_name")
	environment := v.GetString("environment")
	switch {
	case appName != "" && environment != "":
		return slug.Make(fmt.Sprintf("%s %s", appName, environment))
	case appName != "":
		return slug.Make(appName)
	default:
		return ""
	}
}

// searchIndexSettings reads index provisioning settings, falling back to
// one shard, no replicas, and the standard field lists.
func searchIndexSettings(v *viper.Viper) *IndexSettings {
	return &IndexSettings{
		Shards:           getIntOrDefault(v, "data.search.index_settings.shards", 1),
		Replicas:         getIntOrDefault(v, "data.search.index_settings.replicas", 0),
		RefreshInterval:  getStringOrDefault(v, "data.search.index_settings.refresh_interval", "1s"),
		SearchableFields: getSliceOrDefault(v, "data.search.index_settings.searchable_fields", defaultSearchableFields),
		FilterableFields: getSliceOrDefault(v, "data.search.index_settings.filterable_fields", defaultFilterableFields),
	}
}
