// Package config loads default CLI flag values from a TOML file. Explicit
// flags on the command line still override anything set here.
package config

import (
	"github.com/BurntSushi/toml"
)

// Defaults holds the subset of CLI flags that may be pre-set in a config
// file; zero values mean "not set" and leave the flag package's own default
// in place.
type Defaults struct {
	Grammar     string `toml:"grammar"`
	String      string `toml:"string"`
	CSV         string `toml:"csv"`
	Bench       bool   `toml:"bench"`
	Profile     string `toml:"profile"`
	ColWidth    int    `toml:"col-width"`
	Interactive bool   `toml:"interactive"`
	Direct      bool   `toml:"direct"`
	NoColor     bool   `toml:"no-color"`
}

// Load parses the TOML file at path into a Defaults value.
func Load(path string) (Defaults, error) {
	var d Defaults
	_, err := toml.DecodeFile(path, &d)
	return d, err
}
