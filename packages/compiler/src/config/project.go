package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig describes a template project, read from auc.yaml
type ProjectConfig struct {
	Root      string         `yaml:"root"`
	Include   []string       `yaml:"include"`
	Exclude   []string       `yaml:"exclude"`
	OutDir    string         `yaml:"outDir"`
	Resources string         `yaml:"resources"`
	Ast       AstOptions     `yaml:"ast"`
	Compiler  CompileOptions `yaml:"compiler"`
}

// AstOptions controls the generated expression lookup file
type AstOptions struct {
	Output  string `yaml:"output"`
	Package string `yaml:"package"`
}

// CompileOptions mirrors the CompilerConfig switches. Unset values keep the defaults.
type CompileOptions struct {
	Strict  *bool  `yaml:"strict"`
	Globals *bool  `yaml:"globals"`
	Name    string `yaml:"name"`
}

// NewProjectConfig returns a project rooted at root with every default applied
func NewProjectConfig(root string) *ProjectConfig {
	config := &ProjectConfig{Root: root}
	config.applyDefaults("")
	return config
}

// ParseProjectConfig reads and parses a project file. Relative paths in the
// file are resolved against the file's directory.
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	config, err := DecodeProjectConfig(data)
	if err != nil {
		return nil, err
	}
	config.applyDefaults(filepath.Dir(absPath))
	return config, nil
}

// DecodeProjectConfig decodes YAML without applying defaults
func DecodeProjectConfig(data []byte) (*ProjectConfig, error) {
	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	return &config, nil
}

func (c *ProjectConfig) applyDefaults(base string) {
	if c.Root == "" {
		c.Root = "."
	}
	if base != "" && !filepath.IsAbs(c.Root) {
		c.Root = filepath.Join(base, c.Root)
	}
	if len(c.Include) == 0 {
		c.Include = []string{"**/*.html"}
	}
	if c.OutDir == "" {
		c.OutDir = filepath.Join("dist", "auc-go")
	}
	if base != "" && !filepath.IsAbs(c.OutDir) {
		c.OutDir = filepath.Join(base, c.OutDir)
	}
	if base != "" && c.Resources != "" && !filepath.IsAbs(c.Resources) {
		c.Resources = filepath.Join(base, c.Resources)
	}
	if c.Ast.Output == "" {
		c.Ast.Output = filepath.Join("asts", "asts.go")
	}
	if c.Ast.Package == "" {
		c.Ast.Package = "asts"
	}
}

// CompilerOptions converts the project settings into compiler options
func (c *ProjectConfig) CompilerOptions() []CompilerConfigOption {
	opts := []CompilerConfigOption{}
	if c.Compiler.Strict != nil {
		opts = append(opts, WithStrictExpressions(*c.Compiler.Strict))
	}
	if c.Compiler.Globals != nil {
		opts = append(opts, WithGlobalResources(*c.Compiler.Globals))
	}
	if c.Compiler.Name != "" {
		opts = append(opts, WithDefaultName(c.Compiler.Name))
	}
	return opts
}

// Matches reports whether rel, a slash separated path relative to Root, is
// selected by the include and exclude patterns
func (c *ProjectConfig) Matches(rel string) bool {
	included := false
	for _, pattern := range c.Include {
		if MatchGlob(pattern, rel) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range c.Exclude {
		if MatchGlob(pattern, rel) {
			return false
		}
	}
	return true
}

// MatchGlob matches slash separated paths against a pattern where `**`
// spans any number of directories
func MatchGlob(pattern, name string) bool {
	return matchSegments(splitPath(pattern), splitPath(name))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if matchSegments(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := filepath.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

func splitPath(path string) []string {
	parts := []string{}
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
