package logger

import (
	"context"
	"encoding/json"
	"fmt"

	esclient "github.com/ncobase/ncursor/data/elasticsearch/client"
	"github.com/ncobase/ncursor/logging/logger/config"
	"github.com/sirupsen/logrus"
)

func init() {
	RegisterHookFactory(HookElasticsearch, NewElasticsearchHook)
}

// ElasticsearchHook ships log entries to an Elasticsearch index.
type ElasticsearchHook struct {
	client *esclient.Client
	config *config.Config
}

// NewElasticsearchHook connects to the configured cluster and verifies
// it is reachable before the hook is attached.
func NewElasticsearchHook(cfg *config.Config) (logrus.Hook, error) {
	if cfg.Elasticsearch == nil {
		return nil, fmt.Errorf("elasticsearch config is nil")
	}

	cli, err := esclient.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	if err := cli.Health(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to elasticsearch: %w", err)
	}

	return &ElasticsearchHook{client: cli, config: cfg}, nil
}

// Levels reports that the hook fires for every level.
func (h *ElasticsearchHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire indexes one entry into the date-suffixed log index.
func (h *ElasticsearchHook) Fire(entry *logrus.Entry) error {
	body, err := json.Marshal(prepareLogDocument(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	return h.client.IndexDocument(ctx, h.config.BuildIndexName(entry.Time), logDocID(entry.Time), string(body))
}
