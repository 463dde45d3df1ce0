package logger

import (
	"github.com/google/wire"
	"github.com/ncobase/ncursor/logging/logger/config"
)

// ProviderSet wires the logger for dependency injection.
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger configures the standard logger from cfg and returns it
// together with its cleanup.
func ProvideLogger(cfg *config.Config) (*Logger, func(), error) {
	cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return StdLogger(), cleanup, nil
}
