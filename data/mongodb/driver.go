// Package mongodb provides the MongoDB search engine driver. MongoDB is
// not a dedicated search engine, but a collection can serve as a search
// index when the other engines are unavailable.
//
// Importing this package registers the driver with the data layer and its
// adapter factory with the search package:
//
//	import _ "github.com/ncobase/ncursor/data/mongodb"
package mongodb

import (
	"context"
	"fmt"

	"github.com/ncobase/ncursor/data"
	"github.com/ncobase/ncursor/data/config"
	"github.com/ncobase/ncursor/data/mongodb/client"
)

func init() {
	data.RegisterSearchDriver(&driver{})
}

// driver implements data.SearchDriver for MongoDB.
type driver struct{}

// Name returns the driver name.
func (d *driver) Name() string {
	return "mongodb"
}

// Connect establishes a connection and verifies the deployment is
// reachable.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	c, ok := cfg.(*config.MongoDB)
	if !ok {
		return nil, fmt.Errorf("invalid mongodb config type: %T", cfg)
	}
	if c.URI == "" {
		return nil, fmt.Errorf("mongodb uri is not configured")
	}
	if c.Database == "" {
		return nil, fmt.Errorf("mongodb database is not configured")
	}

	return client.NewClient(ctx, c.URI, c.Database)
}

// Close disconnects the client.
func (d *driver) Close(conn any) error {
	cli, ok := conn.(*client.Client)
	if !ok {
		return fmt.Errorf("invalid mongodb connection type: %T", conn)
	}
	return cli.Close(context.Background())
}
