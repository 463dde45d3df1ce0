package data

import (
	"github.com/ncobase/ncursor/data/config"
	"github.com/ncobase/ncursor/data/search"
)

type engineConn struct {
	engine search.Engine
	conn   any
}

// NewSearchClient assembles the unified search client from the data
// layer's live connections. Every dialed engine with a registered adapter
// factory contributes an adapter; engines that were never dialed or never
// registered are skipped.
//
// Returns nil when no adapter could be built so callers can treat search
// as optional.
func NewSearchClient(d *Data, collector ...search.Collector) *search.Client {
	var c search.Collector = search.NoOpCollector{}
	if len(collector) > 0 && collector[0] != nil {
		c = collector[0]
	}

	var candidates []engineConn
	if es := d.GetElasticsearch(); es != nil {
		candidates = append(candidates, engineConn{search.Elasticsearch, es})
	}
	if os := d.GetOpenSearch(); os != nil {
		candidates = append(candidates, engineConn{search.OpenSearch, os})
	}
	if ms := d.GetMeilisearch(); ms != nil {
		candidates = append(candidates, engineConn{search.Meilisearch, ms})
	}
	if mg := d.GetMongoDB(); mg != nil {
		candidates = append(candidates, engineConn{search.MongoDB, mg})
	}

	var adapters []search.Adapter
	for _, cand := range candidates {
		factory, err := search.GetAdapterFactory(cand.engine)
		if err != nil {
			continue
		}
		adapter, err := factory(cand.conn)
		if err != nil {
			continue
		}
		adapters = append(adapters, adapter)
	}
	if len(adapters) == 0 {
		return nil
	}

	client := search.NewClient(c, adapters...)
	if d.conf != nil && d.conf.Search != nil {
		client.UpdateSearchConfig(adaptSearchConfig(d.conf.Search))
	}
	return client
}

// adaptSearchConfig maps the config layer's search section onto the
// search client's own Config type.
func adaptSearchConfig(cfg *config.Search) *search.Config {
	if cfg == nil {
		return nil
	}
	return &search.Config{
		IndexPrefix:     cfg.IndexPrefix,
		DefaultEngine:   cfg.DefaultEngine,
		AutoCreateIndex: cfg.AutoCreateIndex,
		IndexSettings:   adaptIndexSettings(cfg.IndexSettings),
	}
}

func adaptIndexSettings(s *config.IndexSettings) *search.IndexSettings {
	if s == nil {
		return nil
	}
	return &search.IndexSettings{
		Shards:           s.Shards,
		Replicas:         s.Replicas,
		RefreshInterval:  s.RefreshInterval,
		SearchableFields: s.SearchableFields,
		FilterableFields: s.FilterableFields,
	}
}
