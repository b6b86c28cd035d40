package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	MinColumns  = 4
	MaxColumns  = 32
	MinFontSize = 8
	MaxFontSize = 32
)

// Settings is the user's persistent preferences file.
type Settings struct {
	Columns          int     `yaml:"columns"`
	MidGroupSize     int     `yaml:"mid_group_size"`
	AddrDigits       int     `yaml:"addr_digits"`
	ShowAscii        bool    `yaml:"show_ascii"`
	GreyOutZeroes    bool    `yaml:"grey_out_zeroes"`
	FontSize         float64 `yaml:"font_size"`
	BaseAddress      uint64  `yaml:"base_address"`
	CompressProjects bool    `yaml:"compress_projects"`
	WatchFiles       bool    `yaml:"watch_files"`
}

func Default() Settings {
	return Settings{
		Columns:          16,
		MidGroupSize:     8,
		ShowAscii:        true,
		GreyOutZeroes:    true,
		FontSize:         14,
		CompressProjects: true,
		WatchFiles:       true,
	}
}

// DefaultPath is config.yaml under the user's config directory
// ($XDG_CONFIG_HOME on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hexview", "config.yaml"), nil
}

// Load reads settings from path. Keys missing from the file keep their
// defaults, and a missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing YAML: %w", err)
	}
	return s.Normalize(), nil
}

func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s.Normalize())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Normalize clamps every field into its usable range.
func (s Settings) Normalize() Settings {
	s.Columns = clamp(s.Columns, MinColumns, MaxColumns)
	s.MidGroupSize = max(s.MidGroupSize, 0)
	s.AddrDigits = clamp(s.AddrDigits, 0, 16)
	if s.FontSize < MinFontSize {
		s.FontSize = MinFontSize
	}
	if s.FontSize > MaxFontSize {
		s.FontSize = MaxFontSize
	}
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
