package search

import (
	"fmt"
	"sync"
)

// AdapterFactory builds an Adapter on top of an established engine
// connection. The conn argument is the engine client produced by the
// matching driver, passed as any so this package stays free of engine
// imports.
type AdapterFactory func(conn any) (Adapter, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Engine]AdapterFactory)
)

// RegisterAdapterFactory makes an adapter constructor available under the
// given engine name. Engine packages call it from init, so a nil or
// duplicate registration panics rather than surfacing later.
func RegisterAdapterFactory(engine Engine, factory AdapterFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if factory == nil {
		panic("search: RegisterAdapterFactory factory is nil")
	}
	if _, dup := factories[engine]; dup {
		panic("search: RegisterAdapterFactory called twice for engine " + string(engine))
	}
	factories[engine] = factory
}

// GetAdapterFactory returns the factory registered for engine.
func GetAdapterFactory(engine Engine) (AdapterFactory, error) {
	factoriesMu.RLock()
	factory, ok := factories[engine]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no adapter factory for %q", ErrEngineNotFound, engine)
	}
	return factory, nil
}
