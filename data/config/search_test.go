package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestElasticsearchConfigs_PreferSearchNamespace(t *testing.T) {
	v := viper.New()

	v.Set("data.elasticsearch.addresses", []string{"http://old-cluster:9200"})
	v.Set("data.elasticsearch.username", "old-user")

	v.Set("data.search.elasticsearch.addresses", []string{"http://es-1:9200", "http://es-2:9200"})
	v.Set("data.search.elasticsearch.username", "walker")
	v.Set("data.search.elasticsearch.password", "hunter2")

	es := getElasticsearchConfigs(v)
	if len(es.Addresses) != 2 || es.Addresses[0] != "http://es-1:9200" {
		t.Fatalf("Expected addresses from data.search.elasticsearch, got %v", es.Addresses)
	}
	if es.Username != "walker" {
		t.Errorf("Username = %q, want walker", es.Username)
	}
	if es.Password != "hunter2" {
		t.Errorf("Password = %q, want hunter2", es.Password)
	}
}

func TestElasticsearchConfigs_LegacyNamespaceFallback(t *testing.T) {
	v := viper.New()

	v.Set("data.elasticsearch.addresses", []string{"http://old-cluster:9200"})
	v.Set("data.elasticsearch.username", "old-user")
	v.Set("data.elasticsearch.password", "old-pass")

	es := getElasticsearchConfigs(v)
	if len(es.Addresses) != 1 || es.Addresses[0] != "http://old-cluster:9200" {
		t.Fatalf("Expected addresses from data.elasticsearch, got %v", es.Addresses)
	}
	if es.Username != "old-user" || es.Password != "old-pass" {
		t.Errorf("Credentials = %q/%q, want old-user/old-pass", es.Username, es.Password)
	}
}

func TestOpenSearchConfigs_InsecureSkipTLS(t *testing.T) {
	v := viper.New()

	v.Set("data.opensearch.insecure_skip_tls", false)
	v.Set("data.search.opensearch.addresses", []string{"https://os:9200"})
	v.Set("data.search.opensearch.insecure_skip_tls", true)

	osc := getOpenSearchConfigs(v)
	if !osc.InsecureSkipTLS {
		t.Error("Expected insecure_skip_tls from data.search.opensearch to win")
	}
	if len(osc.Addresses) != 1 || osc.Addresses[0] != "https://os:9200" {
		t.Errorf("Addresses = %v, want [https://os:9200]", osc.Addresses)
	}
}

func TestMongoDBConfigs_SearchNamespace(t *testing.T) {
	v := viper.New()

	v.Set("data.mongodb.uri", "mongodb://legacy:27017")
	v.Set("data.search.mongodb.uri", "mongodb://search:27017")
	v.Set("data.search.mongodb.database", "catalog")

	mongo := getMongoDBConfigs(v)
	if mongo.URI != "mongodb://search:27017" {
		t.Fatalf("Expected uri from data.search.mongodb, got %q", mongo.URI)
	}
	if mongo.Database != "catalog" {
		t.Errorf("Database = %q, want catalog", mongo.Database)
	}
}

func TestSearchIndexPrefix_DefaultsFromAppInfo(t *testing.T) {
	v := viper.New()
	v.Set("app_name", "My App")
	v.Set("environment", "dev")

	s := getSearchConfig(v)
	if s.IndexPrefix != "my-app-dev" {
		t.Fatalf("Expected slugified prefix my-app-dev, got %q", s.IndexPrefix)
	}
	if s.DefaultEngine != "elasticsearch" {
		t.Errorf("DefaultEngine = %q, want elasticsearch", s.DefaultEngine)
	}
	if !s.AutoCreateIndex {
		t.Error("Expected auto_create_index to default to true")
	}
}

func TestSearchIndexPrefix_ExplicitWins(t *testing.T) {
	v := viper.New()
	v.Set("app_name", "My App")
	v.Set("data.search.index_prefix", "custom")

	s := getSearchConfig(v)
	if s.IndexPrefix != "custom" {
		t.Fatalf("Expected explicit prefix custom, got %q", s.IndexPrefix)
	}
}

func TestSearchIndexSettings_Defaults(t *testing.T) {
	v := viper.New()

	s := getSearchConfig(v)
	if s.IndexSettings == nil {
		t.Fatal("Expected default index settings, got nil")
	}
	if s.IndexSettings.Shards != 1 || s.IndexSettings.Replicas != 0 {
		t.Fatalf("Expected 1 shard / 0 replicas, got %d/%d", s.IndexSettings.Shards, s.IndexSettings.Replicas)
	}
	if len(s.IndexSettings.SearchableFields) == 0 {
		t.Fatal("Expected non-empty default searchable fields")
	}
}
