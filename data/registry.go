package data

import "github.com/ncobase/ncursor/data/connection"

// driverBridge adapts this package's registry to the lookup interface the
// connection package consumes, breaking the import cycle between the two:
// connection cannot import data, so data hands it a registry at init.
type driverBridge struct{}

func (driverBridge) GetSearchDriver(name string) (connection.SearchDriver, error) {
	return GetSearchDriver(name)
}

func init() {
	connection.SetDriverRegistry(driverBridge{})
}
