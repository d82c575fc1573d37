package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

const configFile = "lpsleuth.toml"

// config is the optional lpsleuth.toml in the working directory. Flags
// override it; it overrides the built-in defaults.
type config struct {
	Diagnose diagnoseConfig `toml:"diagnose"`
	Check    checkConfig    `toml:"check"`
}

type diagnoseConfig struct {
	Penalty  float64 `toml:"penalty"`
	SlackTol float64 `toml:"slack_tolerance"`
	Workers  int     `toml:"workers"`
	NoIIS    bool    `toml:"no_iis"`
}

type checkConfig struct {
	Tolerance float64 `toml:"tolerance"`
}

func loadConfig() (config, error) {
	var cfg config
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(configFile, &cfg)
	return cfg, err
}
