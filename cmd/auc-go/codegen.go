package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"auc-go/packages/compiler/src/config"
	ep "auc-go/packages/compiler/src/expression_parser"
	tc "auc-go/packages/compiler/src/template_compiler"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

var useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// paint wraps s in an ANSI color when stdout is a terminal
func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

// compileManifest is written to manifest.json next to the definitions
type compileManifest struct {
	Session string              `json:"session"`
	Files   []manifestFile      `json:"files"`
	Records []*ep.BindingRecord `json:"records"`
}

type manifestFile struct {
	Source       string   `json:"source"`
	Output       string   `json:"output"`
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
	Diagnostics  int      `json:"diagnostics,omitempty"`
}

// output writes the artifacts of one project compilation
type output struct {
	project  *config.ProjectConfig
	session  *tc.Session
	manifest compileManifest
}

func newOutput(project *config.ProjectConfig, session *tc.Session) *output {
	return &output{
		project: project,
		session: session,
		manifest: compileManifest{
			Session: session.ID.String(),
			Files:   []manifestFile{},
		},
	}
}

// writeDefinition writes def as <rel without extension>.json and returns the output path
func (o *output) writeDefinition(file TemplateFile, def *tc.TemplateDefinition) (string, error) {
	rel := strings.TrimSuffix(file.Rel, filepath.Ext(file.Rel)) + ".json"
	path := filepath.Join(o.project.OutDir, filepath.FromSlash(rel))
	if err := writeJSON(path, def); err != nil {
		return "", err
	}
	o.manifest.Files = append(o.manifest.Files, manifestFile{
		Source:       file.Rel,
		Output:       rel,
		Name:         def.Name,
		Dependencies: def.Dependencies,
		Diagnostics:  len(def.Diagnostics),
	})
	return path, nil
}

// writeAstLookup generates the Go file that rebuilds every registered expression
func (o *output) writeAstLookup() error {
	records := o.session.Records()
	path := filepath.Join(o.project.OutDir, filepath.FromSlash(o.project.Ast.Output))
	fmt.Printf("🔧 Generating expression lookup (%d record(s))...\n", len(records))

	source, err := ep.GenerateGoSource(records, o.project.Ast.Package, path)
	if err != nil {
		return fmt.Errorf("error generating %s: %w", path, err)
	}
	if err := writeFile(path, source); err != nil {
		return err
	}
	fmt.Printf("   📄 Output file created: %s (%d bytes)\n", path, len(source))
	return nil
}

func (o *output) writeManifest() error {
	o.manifest.Records = o.session.Records()
	if o.manifest.Records == nil {
		o.manifest.Records = []*ep.BindingRecord{}
	}
	return writeJSON(filepath.Join(o.project.OutDir, "manifest.json"), o.manifest)
}

// writeJSON writes v indented, leaving markup unescaped
func writeJSON(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing output file %s: %w", path, err)
	}
	return nil
}
