package config

import (
	"log/slog"
)

const (
	// DefaultMarkerTag is the element inserted before nodes that carry instructions
	DefaultMarkerTag = "au-marker"
	// DefaultMarkerClass is the class added to elements that carry instructions
	DefaultMarkerClass = "au"
	// DefaultName names templates compiled without a name
	DefaultName = "Unknown"
)

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	StrictExpressions bool
	GlobalResources   bool
	MarkerTag         string
	MarkerClass       string
	DefaultName       string
	Logger            *slog.Logger
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{
		StrictExpressions: false,
		GlobalResources:   true,
		MarkerTag:         DefaultMarkerTag,
		MarkerClass:       DefaultMarkerClass,
		DefaultName:       DefaultName,
		Logger:            slog.Default(),
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithStrictExpressions makes the first expression error fail the whole template
func WithStrictExpressions(strict bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.StrictExpressions = strict
	}
}

// WithGlobalResources sets whether the built-in template controllers are registered
func WithGlobalResources(enabled bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.GlobalResources = enabled
	}
}

// WithMarker sets the marker element tag and class. Empty values keep the current setting.
func WithMarker(tag, class string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		if tag != "" {
			c.MarkerTag = tag
		}
		if class != "" {
			c.MarkerClass = class
		}
	}
}

// WithDefaultName sets the name given to unnamed templates
func WithDefaultName(name string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		if name != "" {
			c.DefaultName = name
		}
	}
}

// WithLogger sets the logger warnings are written to
func WithLogger(logger *slog.Logger) CompilerConfigOption {
	return func(c *CompilerConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
