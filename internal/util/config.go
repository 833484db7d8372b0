package util

import (
	"crab/internal/input"
	"fmt"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel string      `toml:"log_level"`
	LogFile  string      `toml:"log_file"`
	Report   string      `toml:"report"`
	Input    input.Query `toml:"input"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		LogLevel: "none",
		Report:   "text",
		Input:    input.Query{Driver: "sqlite3"},
	}
}

// LoadConfiguration overlays the TOML file at path onto base. Keys missing
// from the file keep their base value.
func LoadConfiguration(path string, base Configuration) (Configuration, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, fmt.Errorf("failed to load config '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("unknown keys in config '%s': %v", path, undecoded)
	}
	return cfg, nil
}
