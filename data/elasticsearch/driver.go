// Package elasticsearch provides the Elasticsearch search engine driver.
//
// Importing this package registers the driver with the data layer and its
// adapter factory with the search package:
//
//	import _ "github.com/ncobase/ncursor/data/elasticsearch"
package elasticsearch

import (
	"context"
	"fmt"

	"github.com/ncobase/ncursor/data"
	"github.com/ncobase/ncursor/data/config"
	"github.com/ncobase/ncursor/data/elasticsearch/client"
)

func init() {
	data.RegisterSearchDriver(&driver{})
}

// driver implements data.SearchDriver for Elasticsearch.
type driver struct{}

// Name returns the driver name.
func (d *driver) Name() string {
	return "elasticsearch"
}

// Connect establishes a connection and verifies the cluster is reachable.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	c, ok := cfg.(*config.Elasticsearch)
	if !ok {
		return nil, fmt.Errorf("invalid elasticsearch config type: %T", cfg)
	}
	if len(c.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch addresses are not configured")
	}

	cli, err := client.NewClient(c.Addresses, c.Username, c.Password)
	if err != nil {
		return nil, err
	}
	if err := cli.Health(ctx); err != nil {
		return nil, err
	}
	return cli, nil
}

// Close releases the connection. The Elasticsearch client holds no
// persistent connection, so there is nothing to release.
func (d *driver) Close(conn any) error {
	return nil
}
