// Package meilisearch provides the Meilisearch search engine driver.
//
// Importing this package registers the driver with the data layer and its
// adapter factory with the search package:
//
//	import _ "github.com/ncobase/ncursor/data/meilisearch"
package meilisearch

import (
	"context"
	"fmt"

	"github.com/ncobase/ncursor/data"
	"github.com/ncobase/ncursor/data/config"
	"github.com/ncobase/ncursor/data/meilisearch/client"
)

func init() {
	data.RegisterSearchDriver(&driver{})
}

// driver implements data.SearchDriver for Meilisearch.
type driver struct{}

// Name returns the driver name.
func (d *driver) Name() string {
	return "meilisearch"
}

// Connect establishes a connection and verifies the service is reachable.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	c, ok := cfg.(*config.Meilisearch)
	if !ok {
		return nil, fmt.Errorf("invalid meilisearch config type: %T", cfg)
	}
	if c.Host == "" {
		return nil, fmt.Errorf("meilisearch host is not configured")
	}

	cli, err := client.NewClient(c.Host, c.APIKey)
	if err != nil {
		return nil, err
	}
	if _, err := cli.Health(); err != nil {
		return nil, err
	}
	return cli, nil
}

// Close releases the connection. The Meilisearch client holds no
// persistent connection, so there is nothing to release.
func (d *driver) Close(conn any) error {
	return nil
}
