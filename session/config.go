package session

import "io"

// defaultSeedImports are evaluated into every fresh namespace so snippets
// can print without an import preamble.
var defaultSeedImports = []string{"fmt"}

// Config configures a Session.
type Config struct {
	// GoPath is the directory the interpreter searches for third-party
	// package source, and the directory the installer populates. Optional;
	// when empty only standard library imports are available.
	GoPath string

	// SeedImports are import paths evaluated into every fresh namespace in
	// addition to the built-in dataframe alias. Nil means the default set
	// ("fmt"); an empty slice disables extra seeds.
	SeedImports []string

	// Stdout and Stderr receive interpreter output while no capture scope
	// is active. Optional; nil discards.
	Stdout io.Writer
	Stderr io.Writer
}

// applyDefaults sets default values for unset optional fields.
func (c *Config) applyDefaults() {
	if c.SeedImports == nil {
		c.SeedImports = defaultSeedImports
	}
}
