package data

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// SearchDriver is the contract between the data layer and an engine
// package. In the manner of database/sql, engine packages register a
// driver from init and stay unlinked until a blank import pulls them in;
// the data layer dials engines purely by configured name.
type SearchDriver interface {
	// Name returns the engine name the driver answers to, matching the
	// data.search config key ("elasticsearch", "opensearch", ...).
	Name() string

	// Connect dials the engine. cfg is the engine's config struct; the
	// returned conn is the engine client, both passed as any so the data
	// package never imports engine SDKs.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close releases a connection obtained from Connect.
	Close(conn any) error
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]SearchDriver)
)

// RegisterSearchDriver records a driver under its Name. Engine packages
// call it from init:
//
//	func init() {
//	    data.RegisterSearchDriver(&driver{})
//	}
//
// A nil driver, an empty name, or a second registration under the same
// name panics, since all three mean a broken engine package.
func RegisterSearchDriver(driver SearchDriver) {
	if driver == nil {
		panic("data: RegisterSearchDriver driver is nil")
	}
	name := driver.Name()
	if name == "" {
		panic("data: RegisterSearchDriver driver name is empty")
	}

	driversMu.Lock()
	defer driversMu.Unlock()
	if _, dup := drivers[name]; dup {
		panic(fmt.Sprintf("data: RegisterSearchDriver called twice for driver %s", name))
	}
	drivers[name] = driver
}

// GetSearchDriver looks up a registered driver by engine name. The error
// for an unknown name spells out the missing blank import, since that is
// almost always the cause.
func GetSearchDriver(name string) (SearchDriver, error) {
	driversMu.RLock()
	driver, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf(
			"data: search driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/ncursor/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, ListSearchDrivers(),
		)
	}
	return driver, nil
}

// ListSearchDrivers returns the registered driver names, sorted.
func ListSearchDrivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
