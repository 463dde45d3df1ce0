package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultDateSuffix is the Go time layout appended to rotated index names.
const defaultDateSuffix = "2006.01.02"

// Config is the logger section of the application configuration.
type Config struct {
	Level         int            `json:"level" yaml:"level"`
	Format        string         `json:"format" yaml:"format"`
	Output        string         `json:"output" yaml:"output"`
	OutputFile    string         `json:"output_file" yaml:"output_file"`
	IndexName     string         `json:"index_name" yaml:"index_name"`
	DateSuffix    string         `json:"date_suffix" yaml:"date_suffix"`
	RotateDaily   bool           `json:"rotate_daily" yaml:"rotate_daily"`
	Elasticsearch *Elasticsearch `json:"elasticsearch" yaml:"elasticsearch"`
	OpenSearch    *OpenSearch    `json:"opensearch" yaml:"opensearch"`
	Meilisearch   *Meilisearch   `json:"meilisearch" yaml:"meilisearch"`
}

// GetConfig reads the logger section from viper. The index name for
// shipped logs defaults to <app_name>-<environment>-log.
func GetConfig(v *viper.Viper) *Config {
	if !v.IsSet("logger") {
		return nil
	}

	indexName := strings.ToLower(v.GetString("app_name") + "-" + v.GetString("environment") + "-log")
	if v.IsSet("logger.index_name") && v.GetString("logger.index_name") != "" {
		indexName = v.GetString("logger.index_name")
	}

	return &Config{
		Level:         v.GetInt("logger.level"),
		Format:        v.GetString("logger.format"),
		Output:        v.GetString("logger.output"),
		OutputFile:    v.GetString("logger.output_file"),
		IndexName:     indexName,
		DateSuffix:    v.GetString("logger.date_suffix"),
		RotateDaily:   v.GetBool("logger.rotate_daily"),
		Elasticsearch: getElasticsearchConfigs(v),
		OpenSearch:    getOpenSearchConfigs(v),
		Meilisearch:   getMeilisearchConfigs(v),
	}
}

// BuildIndexName returns the index name for a log entry written at the
// given time, applying the daily date suffix when rotation is enabled.
func (c *Config) BuildIndexName(logTime time.Time) string {
	if c == nil || c.IndexName == "" {
		return "default-log"
	}
	if !c.RotateDaily {
		return c.IndexName
	}
	suffix := c.DateSuffix
	if suffix == "" {
		suffix = defaultDateSuffix
	}
	return c.IndexName + "-" + logTime.Format(suffix)
}
