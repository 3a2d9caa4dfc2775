// Package config defines the project manifest the skeleton generator
// writes and the CLI reads back, mirroring cmd/new.rs's
// Config::default(package_name).save(&root) call. The teacher carries
// no config-file format of its own; this one is modelled on the
// BurntSushi/toml manifest shape used across the retrieval pack's other
// language projects.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file a project's Config is read from and written
// to, relative to the project root.
const ManifestName = "aiken.toml"

// Dependency is one entry in a project's dependency list.
type Dependency struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source,omitempty"`
}

// Config is a project's manifest: everything `new` writes and `build`/
// `check` read back before walking lib/ and validators/.
type Config struct {
	Name         string       `toml:"name"`
	Version      string       `toml:"version"`
	License      string       `toml:"license,omitempty"`
	Description  string       `toml:"description,omitempty"`
	Dependencies []Dependency `toml:"dependencies,omitempty"`
}

// Default builds the manifest `new` writes for a freshly scaffolded
// project: the normalised project name, a 0.0.0 starting version, and
// no dependencies yet.
func Default(name string) Config {
	return Config{
		Name:    name,
		Version: "0.0.0",
		License: "Apache-2.0",
	}
}

// Save writes c to <root>/aiken.toml.
func (c Config) Save(root string) error {
	f, err := os.Create(filepath.Join(root, ManifestName))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads the manifest at <root>/aiken.toml.
func Load(root string) (Config, error) {
	var c Config
	_, err := toml.DecodeFile(filepath.Join(root, ManifestName), &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
