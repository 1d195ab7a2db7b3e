package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"auc-go/packages/compiler/src/config"

	"github.com/google/go-cmp/cmp"
)

func TestNewCompilerConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		c := config.NewCompilerConfig()
		if c.StrictExpressions || !c.GlobalResources {
			t.Errorf("Unexpected switches %+v", c)
		}
		if c.MarkerTag != "au-marker" || c.MarkerClass != "au" || c.DefaultName != "Unknown" {
			t.Errorf("Unexpected defaults %+v", c)
		}
		if c.Logger == nil {
			t.Errorf("Expected a default logger")
		}
	})

	t.Run("should apply options in order", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		c := config.NewCompilerConfig(
			config.WithStrictExpressions(true),
			config.WithGlobalResources(false),
			config.WithMarker("x-marker", ""),
			config.WithDefaultName("App"),
			config.WithDefaultName(""),
			config.WithLogger(logger),
			config.WithLogger(nil),
		)
		if !c.StrictExpressions || c.GlobalResources {
			t.Errorf("Unexpected switches %+v", c)
		}
		if c.MarkerTag != "x-marker" || c.MarkerClass != "au" {
			t.Errorf("Unexpected marker %q/%q", c.MarkerTag, c.MarkerClass)
		}
		if c.DefaultName != "App" {
			t.Errorf("Expected App, got %q", c.DefaultName)
		}
		if c.Logger != logger {
			t.Errorf("Expected the supplied logger")
		}
	})
}

func TestParseProjectConfig(t *testing.T) {
	t.Run("should resolve paths against the config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "auc.yaml")
		data := []byte(`
root: src
exclude:
  - "vendor/**"
outDir: out
resources: resources.yaml
ast:
  package: generated
compiler:
  strict: true
`)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile() returned error: %v", err)
		}

		got, err := config.ParseProjectConfig(path)
		if err != nil {
			t.Fatalf("ParseProjectConfig() returned error: %v", err)
		}
		strict := true
		want := &config.ProjectConfig{
			Root:      filepath.Join(dir, "src"),
			Include:   []string{"**/*.html"},
			Exclude:   []string{"vendor/**"},
			OutDir:    filepath.Join(dir, "out"),
			Resources: filepath.Join(dir, "resources.yaml"),
			Ast:       config.AstOptions{Output: filepath.Join("asts", "asts.go"), Package: "generated"},
			Compiler:  config.CompileOptions{Strict: &strict},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseProjectConfig() mismatch (-want +got):\n%s", diff)
		}
		if opts := got.CompilerOptions(); len(opts) != 1 || !config.NewCompilerConfig(opts...).StrictExpressions {
			t.Errorf("Expected a single strict option, got %d", len(opts))
		}
	})

	t.Run("should report missing files", func(t *testing.T) {
		if _, err := config.ParseProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Errorf("Expected an error for a missing file")
		}
	})

	t.Run("should report invalid yaml", func(t *testing.T) {
		if _, err := config.DecodeProjectConfig([]byte("include: [")); err == nil {
			t.Errorf("Expected a parse error")
		}
	})
}

func TestProjectConfig_Matches(t *testing.T) {
	c := config.NewProjectConfig(".")
	c.Exclude = []string{"node_modules/**", "**/*.spec.html"}

	tests := []struct {
		path string
		want bool
	}{
		{"app.html", true},
		{"views/home/home.html", true},
		{"views/home/home.ts", false},
		{"node_modules/pkg/index.html", false},
		{"views/home.spec.html", false},
	}
	for _, tt := range tests {
		t.Run("should match "+tt.path, func(t *testing.T) {
			if got := c.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
