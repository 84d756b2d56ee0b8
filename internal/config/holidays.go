package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// HolidayFile lists the closed dates of a business calendar.
type HolidayFile struct {
	Weekmask string   `yaml:"weekmask" toml:"weekmask"`
	Holidays []string `yaml:"holidays" toml:"holidays"`
	Closures []string `yaml:"closures" toml:"closures"`
}

// LoadHolidayFile reads a holiday file; the format follows the extension.
func LoadHolidayFile(path string) (*HolidayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday file: %w", err)
	}

	var file HolidayFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse holiday file %v: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("failed to parse holiday file %v: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported holiday file extension %q", ext)
	}
	return &file, nil
}
