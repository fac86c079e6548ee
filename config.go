package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const configFileName = ".schemerrc"

type Config struct {
	CanvasWidth  int     `toml:"canvas_width"`
	CanvasHeight int     `toml:"canvas_height"`
	DefaultX     float64 `toml:"default_x"`
	DefaultY     float64 `toml:"default_y"`
	HandleSize   float64 `toml:"handle_size"`
	PaletteWidth int     `toml:"palette_width"`
	ChatWidth    int     `toml:"chat_width"`
	LogFile      string  `toml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		CanvasWidth:  defaultCanvasWidth,
		CanvasHeight: defaultCanvasHeight,
		DefaultX:     defaultComponentX,
		DefaultY:     defaultComponentY,
		HandleSize:   defaultHandleSize,
		PaletteWidth: defaultPaletteWidth,
		ChatWidth:    defaultChatWidth,
	}
}

// loadConfig reads ~/.schemerrc. The returned config is always usable;
// the error only reports why some or all of the file was ignored.
func loadConfig() (*Config, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return defaultConfig(), fmt.Errorf("locate home directory: %w", err)
	}
	return loadConfigFile(filepath.Join(homeDir, configFileName))
}

func loadConfigFile(path string) (*Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read %s: %w", path, err)
	}

	parsed := defaultConfig()
	if err := toml.Unmarshal(data, parsed); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	parsed.sanitize()
	if parsed.LogFile != "" {
		if expanded, err := homedir.Expand(parsed.LogFile); err == nil {
			parsed.LogFile = expanded
		}
	}
	return parsed, nil
}

// sanitize replaces nonsensical values with defaults.
func (c *Config) sanitize() {
	d := defaultConfig()
	if c.CanvasWidth < componentWidth {
		c.CanvasWidth = d.CanvasWidth
	}
	if c.CanvasHeight < componentHeight {
		c.CanvasHeight = d.CanvasHeight
	}
	if c.HandleSize <= 0 {
		c.HandleSize = d.HandleSize
	}
	if c.DefaultX < 0 || c.DefaultX > float64(c.CanvasWidth-componentWidth) {
		c.DefaultX = d.DefaultX
	}
	if c.DefaultY < 0 || c.DefaultY > float64(c.CanvasHeight-componentHeight) {
		c.DefaultY = d.DefaultY
	}
	if c.PaletteWidth < 8 {
		c.PaletteWidth = d.PaletteWidth
	}
	if c.ChatWidth < 16 {
		c.ChatWidth = d.ChatWidth
	}
}
