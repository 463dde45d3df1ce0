package data

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/ncursor/data/config"
)

// ProviderSet wires *Data into an injector built with
// wire.Build(data.ProviderSet, ...). The cleanup function it yields
// closes every engine connection and belongs at application shutdown.
var ProviderSet = wire.NewSet(ProvideData)

// ProvideData builds the data layer from its configuration section.
func ProvideData(ctx context.Context, cfg *config.Config) (*Data, func(), error) {
	return New(ctx, cfg)
}
