// Package connection manages live search engine connections. Engines are
// dialed through the driver registry the data package injects at init
// time, which keeps this package free of engine imports and import
// cycles.
package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ncobase/ncursor/data/config"
	esclient "github.com/ncobase/ncursor/data/elasticsearch/client"
	msclient "github.com/ncobase/ncursor/data/meilisearch/client"
	mgclient "github.com/ncobase/ncursor/data/mongodb/client"
	osclient "github.com/ncobase/ncursor/data/opensearch/client"
)

// SearchDriver matches the driver contract the data package registers.
type SearchDriver interface {
	Name() string
	Connect(ctx context.Context, cfg any) (any, error)
	Close(conn any) error
}

// DriverRegistry resolves named drivers. The data package injects its
// registry so this package can use drivers without an import cycle.
type DriverRegistry interface {
	GetSearchDriver(name string) (SearchDriver, error)
}

var (
	registryMu sync.RWMutex
	registry   DriverRegistry
)

// SetDriverRegistry installs the driver registry.
func SetDriverRegistry(r DriverRegistry) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = r
}

func getSearchDriver(name string) (SearchDriver, error) {
	registryMu.RLock()
	r := registry
	registryMu.RUnlock()

	if r == nil {
		return nil, errors.New("connection: no driver registry configured")
	}
	return r.GetSearchDriver(name)
}

type heldConn struct {
	name   string
	driver SearchDriver
	conn   any
}

// Connections holds all live search engine connections. Engines that are
// not configured stay nil.
type Connections struct {
	ES *esclient.Client
	OS *osclient.Client
	MS *msclient.Client
	MG *mgclient.Client

	held   []heldConn
	closed bool
	mu     sync.Mutex
}

// New dials every configured engine. A configured engine that cannot be
// reached fails the whole call; engines without configuration are
// skipped.
func New(ctx context.Context, conf *config.Config) (*Connections, error) {
	c := &Connections{}
	if conf == nil || conf.Search == nil {
		return c, nil
	}
	s := conf.Search

	if s.Elasticsearch != nil && len(s.Elasticsearch.Addresses) > 0 {
		conn, err := c.dial(ctx, "elasticsearch", s.Elasticsearch)
		if err != nil {
			return nil, err
		}
		es, ok := conn.(*esclient.Client)
		if !ok {
			return nil, fmt.Errorf("elasticsearch driver returned unexpected connection type: %T", conn)
		}
		c.ES = es
	}

	if s.OpenSearch != nil && len(s.OpenSearch.Addresses) > 0 {
		conn, err := c.dial(ctx, "opensearch", s.OpenSearch)
		if err != nil {
			return nil, err
		}
		os, ok := conn.(*osclient.Client)
		if !ok {
			return nil, fmt.Errorf("opensearch driver returned unexpected connection type: %T", conn)
		}
		c.OS = os
	}

	if s.Meilisearch != nil && s.Meilisearch.Host != "" {
		conn, err := c.dial(ctx, "meilisearch", s.Meilisearch)
		if err != nil {
			return nil, err
		}
		ms, ok := conn.(*msclient.Client)
		if !ok {
			return nil, fmt.Errorf("meilisearch driver returned unexpected connection type: %T", conn)
		}
		c.MS = ms
	}

	if s.MongoDB != nil && s.MongoDB.URI != "" {
		conn, err := c.dial(ctx, "mongodb", s.MongoDB)
		if err != nil {
			return nil, err
		}
		mg, ok := conn.(*mgclient.Client)
		if !ok {
			return nil, fmt.Errorf("mongodb driver returned unexpected connection type: %T", conn)
		}
		c.MG = mg
	}

	return c, nil
}

func (c *Connections) dial(ctx context.Context, name string, cfg any) (any, error) {
	driver, err := getSearchDriver(name)
	if err != nil {
		return nil, err
	}

	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s: %w", name, err)
	}

	c.held = append(c.held, heldConn{name: name, driver: driver, conn: conn})
	return conn, nil
}

// Engines returns the names of the connected engines in dial order.
func (c *Connections) Engines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.held))
	for _, h := range c.held {
		names = append(names, h.name)
	}
	return names
}

// Close closes all connections through their drivers.
func (c *Connections) Close() (errs []error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	for _, h := range c.held {
		if err := h.driver.Close(h.conn); err != nil {
			errs = append(errs, fmt.Errorf("%s close error: %w", h.name, err))
		}
	}

	c.held = nil
	c.ES = nil
	c.OS = nil
	c.MS = nil
	c.MG = nil
	c.closed = true

	return errs
}
