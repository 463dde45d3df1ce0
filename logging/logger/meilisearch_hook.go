package logger

import (
	"fmt"

	msclient "github.com/ncobase/ncursor/data/meilisearch/client"
	"github.com/ncobase/ncursor/logging/logger/config"

	"github.com/meilisearch/meilisearch-go"
	"github.com/sirupsen/logrus"
)

func init() {
	RegisterHookFactory(HookMeilisearch, NewMeilisearchHook)
}

// MeilisearchHook ships log entries to a Meilisearch index.
type MeilisearchHook struct {
	client *msclient.Client
	config *config.Config
}

// NewMeilisearchHook connects to the configured instance and verifies
// it is reachable before the hook is attached.
func NewMeilisearchHook(cfg *config.Config) (logrus.Hook, error) {
	if cfg.Meilisearch == nil {
		return nil, fmt.Errorf("meilisearch config is nil")
	}

	cli, err := msclient.NewClient(cfg.Meilisearch.Host, cfg.Meilisearch.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create meilisearch client: %w", err)
	}

	if _, err := cli.Health(); err != nil {
		return nil, fmt.Errorf("failed to connect to meilisearch: %w", err)
	}

	return &MeilisearchHook{client: cli, config: cfg}, nil
}

// Levels reports that the hook fires for every level.
func (h *MeilisearchHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire indexes one entry into the date-suffixed log index. Documents
// are added without waiting for task completion so logging stays cheap.
func (h *MeilisearchHook) Fire(entry *logrus.Entry) error {
	doc := prepareLogDocument(entry)
	doc["id"] = logDocID(entry.Time)

	pk := "id"
	index := h.client.GetClient().Index(h.config.BuildIndexName(entry.Time))
	if _, err := index.AddDocuments([]map[string]any{doc}, &meilisearch.DocumentOptions{PrimaryKey: &pk}); err != nil {
		return fmt.Errorf("failed to index log entry: %w", err)
	}

	return nil
}
