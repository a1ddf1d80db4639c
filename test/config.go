package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// INTEGRATION_COLOURS enables colorized step headers for log readability
	Colours bool `envconfig:"INTEGRATION_COLOURS" default:"true"`
	// INTEGRATION_DEBUG_EVENTS dumps every journaled event during scenarios
	DebugEvents bool `envconfig:"INTEGRATION_DEBUG_EVENTS" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
