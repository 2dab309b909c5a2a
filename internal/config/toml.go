// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Prayer      PrayerConfig      `toml:"prayer"`
	Stats       StatsConfig       `toml:"stats"`
	Meditations MeditationsConfig `toml:"meditations"`
}

// PrayerConfig maps prayer-related settings.
type PrayerConfig struct {
	Mode          *string `toml:"mode"`
	PrimaryLang   *string `toml:"primary-lang"`
	SecondaryLang *string `toml:"secondary-lang"`
	Content       *string `toml:"content"`
}

// StatsConfig maps stats-related settings.
type StatsConfig struct {
	RecentDays *int `toml:"recent-days"`
}

// MeditationsConfig maps the remote meditation catalog settings.
type MeditationsConfig struct {
	CatalogURL *string `toml:"catalog-url"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// NormalizeLang validates a BCP 47 language tag and returns its canonical form.
func NormalizeLang(tag string) (string, error) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	return parsed.String(), nil
}

// LangName returns the English display name of a language tag, or the tag
// itself when no name is known.
func LangName(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	name := display.English.Languages().Name(parsed)
	if name == "" {
		return tag
	}
	return name
}
