package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultRequestTimeout is the client-side deadline for one analysis run.
// The backend crawls, filters and summarises for 10-15 minutes on a normal day.
const DefaultRequestTimeout = 1080 * time.Second

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Request RequestConfig `yaml:"request" json:"request"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
}

// ServerConfig locates the analysis backend
type ServerConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`     // scheme://host[:port]
	Path      string `yaml:"path" json:"path"`             // analysis endpoint path
	UserAgent string `yaml:"user_agent" json:"user_agent"` // sent with every request
}

// RequestConfig configures the single analysis request
type RequestConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"` // client-side deadline
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|html|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// UIConfig configures the presentation layer
type UIConfig struct {
	Layout string `yaml:"layout" json:"layout"` // panels|modal
	Theme  string `yaml:"theme" json:"theme"`   // default|high-contrast|minimal
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			BaseURL:   "http://localhost:8000",
			Path:      "/api/run-analysis",
			UserAgent: "cityreport",
		},
		Request: RequestConfig{
			Timeout: DefaultRequestTimeout,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		UI: UIConfig{
			Layout: "modal",
			Theme:  "default",
		},
	}
}

// Endpoint returns the absolute analysis endpoint URL
func (c *Config) Endpoint() string {
	return strings.TrimRight(c.Server.BaseURL, "/") + "/" + strings.TrimLeft(c.Server.Path, "/")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateRequestConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return c.validateUIConfig()
}

func (c *Config) validateServerConfig() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server.base_url scheme: %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url has no host")
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server.path must start with '/'")
	}
	return nil
}

func (c *Config) validateRequestConfig() error {
	if c.Request.Timeout <= 0 {
		return fmt.Errorf("request.timeout must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"html":     true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, html, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	switch c.UI.Layout {
	case "", "panels", "modal":
	default:
		return fmt.Errorf("invalid ui layout: %s (must be one of: panels, modal)", c.UI.Layout)
	}
	switch c.UI.Theme {
	case "", "default", "high-contrast", "minimal":
	default:
		return fmt.Errorf("invalid ui theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
	return nil
}
