package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ncobase/ncursor/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// HookType names a log shipping backend.
type HookType string

const (
	HookElasticsearch HookType = "elasticsearch"
	HookOpenSearch    HookType = "opensearch"
	HookMeilisearch   HookType = "meilisearch"
)

// HookFactory builds a logrus hook from the logger configuration. Hook
// files register their factory from init, so a backend only ships logs
// when its file is linked in.
type HookFactory func(cfg *config.Config) (logrus.Hook, error)

var (
	hookMu        sync.RWMutex
	hookFactories = make(map[HookType]HookFactory)
)

// RegisterHookFactory records a factory under the given hook type.
func RegisterHookFactory(hookType HookType, factory HookFactory) {
	hookMu.Lock()
	defer hookMu.Unlock()
	hookFactories[hookType] = factory
}

// GetHookFactory returns the factory registered for hookType.
func GetHookFactory(hookType HookType) (HookFactory, bool) {
	hookMu.RLock()
	defer hookMu.RUnlock()
	factory, ok := hookFactories[hookType]
	return factory, ok
}

// GetRegisteredHooks returns the registered hook types.
func GetRegisteredHooks() []HookType {
	hookMu.RLock()
	defer hookMu.RUnlock()
	hooks := make([]HookType, 0, len(hookFactories))
	for hookType := range hookFactories {
		hooks = append(hooks, hookType)
	}
	return hooks
}

// initSearchHooks attaches a shipping hook for every backend the config
// carries an endpoint for. Backends without a registered factory are
// skipped silently; a factory that fails aborts logger construction.
func (l *Logger) initSearchHooks(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	var wanted []HookType
	if cfg.Elasticsearch != nil && len(cfg.Elasticsearch.Addresses) > 0 {
		wanted = append(wanted, HookElasticsearch)
	}
	if cfg.OpenSearch != nil && len(cfg.OpenSearch.Addresses) > 0 {
		wanted = append(wanted, HookOpenSearch)
	}
	if cfg.Meilisearch != nil && cfg.Meilisearch.Host != "" {
		wanted = append(wanted, HookMeilisearch)
	}

	for _, hookType := range wanted {
		factory, ok := GetHookFactory(hookType)
		if !ok {
			continue
		}
		hook, err := factory(cfg)
		if err != nil {
			return fmt.Errorf("failed to create %s hook: %w", hookType, err)
		}
		l.AddHook(hook)
	}
	return nil
}

// hookTimeout bounds the shipping hooks' calls so a slow backend
// cannot stall the application's logging path.
const hookTimeout = 5 * time.Second

// reservedLogFields are set by prepareLogDocument itself and win over
// entry data of the same name.
var reservedLogFields = map[string]bool{
	"@timestamp": true,
	"timestamp":  true,
	"level":      true,
	"message":    true,
}

// logDocID derives a unique document id from the entry time plus the
// current nanosecond, which keeps entries logged in the same instant
// from overwriting each other.
func logDocID(entryTime time.Time) string {
	return fmt.Sprintf("%d-%d", entryTime.UnixNano(), time.Now().Nanosecond())
}

// prepareLogDocument builds the document the search hooks index for one
// log entry.
func prepareLogDocument(entry *logrus.Entry) map[string]any {
	doc := map[string]any{
		"@timestamp": entry.Time.UTC().Format(time.RFC3339Nano),
		"timestamp":  entry.Time.UnixMilli(),
		"level":      entry.Level.String(),
		"message":    entry.Message,
	}
	if hostname, err := os.Hostname(); err == nil {
		doc["hostname"] = hostname
	}
	for key, value := range entry.Data {
		if !reservedLogFields[key] {
			doc[key] = value
		}
	}
	return doc
}
