package cmd

import (
	"github.com/caarlos0/env/v11"
)

const fallbackConfigFile = "relations.yaml"

// environment holds the settings the cli reads from environment variables.
type environment struct {
	ConfigFile string `env:"RELATIONSHIP_CONFIG" envDefault:"relations.yaml"`
}

// defaultConfigFile returns the default value of the --config flag.
func defaultConfigFile() string {
	var e environment

	if err := env.Parse(&e); err != nil || e.ConfigFile == "" {
		return fallbackConfigFile
	}

	return e.ConfigFile
}
