package logger

import (
	"context"
	"encoding/json"
	"fmt"

	osclient "github.com/ncobase/ncursor/data/opensearch/client"
	"github.com/ncobase/ncursor/logging/logger/config"
	"github.com/sirupsen/logrus"
)

func init() {
	RegisterHookFactory(HookOpenSearch, NewOpenSearchHook)
}

// OpenSearchHook ships log entries to an OpenSearch index.
type OpenSearchHook struct {
	client *osclient.Client
	config *config.Config
}

// NewOpenSearchHook connects to the configured cluster and verifies it
// is reachable before the hook is attached.
func NewOpenSearchHook(cfg *config.Config) (logrus.Hook, error) {
	if cfg.OpenSearch == nil {
		return nil, fmt.Errorf("opensearch config is nil")
	}

	cli, err := osclient.NewClient(cfg.OpenSearch.Addresses, cfg.OpenSearch.Username, cfg.OpenSearch.Password, cfg.OpenSearch.InsecureSkipTLS)
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	if _, err := cli.Health(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to opensearch: %w", err)
	}

	return &OpenSearchHook{client: cli, config: cfg}, nil
}

// Levels reports that the hook fires for every level.
func (h *OpenSearchHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire indexes one entry into the date-suffixed log index.
func (h *OpenSearchHook) Fire(entry *logrus.Entry) error {
	body, err := json.Marshal(prepareLogDocument(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	return h.client.IndexDocument(ctx, h.config.BuildIndexName(entry.Time), logDocID(entry.Time), string(body))
}
