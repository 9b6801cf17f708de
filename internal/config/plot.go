package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PlotConfig holds the rendering options for chart output. Pointer fields
// distinguish "omitted" from "set to the zero value", so partial JSON
// configs are safe; the Get* accessors supply defaults.
type PlotConfig struct {
	Theme    *string `json:"theme,omitempty"`
	Width    *string `json:"width,omitempty"`  // CSS length like "900px"
	Height   *string `json:"height,omitempty"` // CSS length like "500px"
	Decimals *int    `json:"decimals,omitempty"`
	SIPrefix *bool   `json:"si_prefix,omitempty"`
}

// EmptyPlotConfig returns a PlotConfig with all fields unset.
func EmptyPlotConfig() *PlotConfig {
	return &PlotConfig{}
}

// LoadPlotConfig loads a PlotConfig from a JSON file. The file must have a
// .json extension and stay under the max file size.
func LoadPlotConfig(path string) (*PlotConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlotConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *PlotConfig) Validate() error {
	if c.Decimals != nil {
		if *c.Decimals < 0 || *c.Decimals > 12 {
			return fmt.Errorf("decimals must be between 0 and 12, got %d", *c.Decimals)
		}
	}
	if c.Width != nil && *c.Width == "" {
		return fmt.Errorf("width must not be empty when set")
	}
	if c.Height != nil && *c.Height == "" {
		return fmt.Errorf("height must not be empty when set")
	}
	return nil
}

// GetTheme returns the chart theme or the default.
func (c *PlotConfig) GetTheme() string {
	if c.Theme == nil || *c.Theme == "" {
		return "dark"
	}
	return *c.Theme
}

// GetWidth returns the chart width or the default.
func (c *PlotConfig) GetWidth() string {
	if c.Width == nil || *c.Width == "" {
		return "900px"
	}
	return *c.Width
}

// GetHeight returns the chart height or the default.
func (c *PlotConfig) GetHeight() string {
	if c.Height == nil || *c.Height == "" {
		return "500px"
	}
	return *c.Height
}

// GetDecimals returns the label decimal places or the default.
func (c *PlotConfig) GetDecimals() int {
	if c.Decimals == nil {
		return 3
	}
	return *c.Decimals
}

// GetSIPrefix returns whether axis labels use SI prefixes.
func (c *PlotConfig) GetSIPrefix() bool {
	if c.SIPrefix == nil {
		return true
	}
	return *c.SIPrefix
}
