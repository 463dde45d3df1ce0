package config

import (
	dc "github.com/ncobase/ncursor/data/config"

	"github.com/spf13/viper"
)

// Data represents the data layer configuration
type Data = dc.Config

// getDataConfig returns data config
func getDataConfig(v *viper.Viper) *Data {
	return dc.GetConfig(v)
}
