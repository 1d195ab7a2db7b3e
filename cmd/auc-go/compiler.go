package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"auc-go/packages/compiler/src/config"
	"auc-go/packages/compiler/src/resources"
	tc "auc-go/packages/compiler/src/template_compiler"
)

// TemplateFile is a template found below the project root
type TemplateFile struct {
	Path string
	// Rel is the slash separated path relative to the project root
	Rel  string
	Name string
}

// CompileProject compiles every template of project in one session
func CompileProject(project *config.ProjectConfig, logger *slog.Logger) error {
	fmt.Printf("🔨 Compiling templates at: %s\n", project.Root)
	fmt.Println("")

	templates, err := findTemplates(project)
	if err != nil {
		return fmt.Errorf("error finding templates: %w", err)
	}
	if len(templates) == 0 {
		fmt.Println(paint(colorYellow, "⚠️  No templates found"))
		return nil
	}
	fmt.Printf("📦 Found %d template(s)\n", len(templates))
	fmt.Println("")

	opts := append(project.CompilerOptions(), config.WithLogger(logger))
	session, err := tc.NewSession(opts...)
	if err != nil {
		return err
	}
	if project.Resources != "" {
		manifest, err := resources.LoadManifest(project.Resources)
		if err != nil {
			return err
		}
		if err := manifest.Register(session.Resources()); err != nil {
			return fmt.Errorf("error registering resources: %w", err)
		}
		fmt.Printf("🧩 Registered %d element(s) and %d attribute(s) from %s\n",
			len(manifest.Elements), len(manifest.Attributes), project.Resources)
	}

	if err := os.MkdirAll(project.OutDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	fmt.Printf("📁 Output directory: %s\n", project.OutDir)
	fmt.Println("")

	out := newOutput(project, session)
	successCount := 0
	for i, file := range templates {
		fmt.Printf("[%d/%d] Compiling %s...\n", i+1, len(templates), file.Rel)

		def, err := compileTemplate(session, file)
		if err != nil {
			fmt.Println(paint(colorRed, fmt.Sprintf("   ❌ Error: %v", err)))
			continue
		}
		output, err := out.writeDefinition(file, def)
		if err != nil {
			fmt.Println(paint(colorRed, fmt.Sprintf("   ❌ Error: %v", err)))
			continue
		}
		for _, diagnostic := range def.Diagnostics {
			fmt.Println(paint(colorYellow, fmt.Sprintf("   ⚠️  %s", diagnostic)))
		}

		successCount++
		fmt.Printf("   📄 %s (%d instruction set(s), %d dependenc(ies))\n",
			output, len(def.Instructions), len(def.Dependencies))
		fmt.Println(paint(colorGreen, "   ✅ Compiled successfully"))
	}

	if err := out.writeAstLookup(); err != nil {
		return err
	}
	if err := out.writeManifest(); err != nil {
		return err
	}

	fmt.Println("")
	fmt.Printf("✅ Compilation complete: %d/%d templates compiled, %d expression(s)\n",
		successCount, len(templates), len(session.Records()))

	if successCount < len(templates) {
		return fmt.Errorf("some templates failed to compile")
	}
	return nil
}

// findTemplates walks the project root for files selected by the include and
// exclude patterns
func findTemplates(project *config.ProjectConfig) ([]TemplateFile, error) {
	var templates []TemplateFile
	outDir, _ := filepath.Abs(project.OutDir)

	err := filepath.WalkDir(project.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" {
				return filepath.SkipDir
			}
			if abs, _ := filepath.Abs(path); abs == outDir {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(project.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !project.Matches(rel) {
			return nil
		}
		templates = append(templates, TemplateFile{
			Path: path,
			Rel:  rel,
			Name: templateName(rel),
		})
		return nil
	})
	return templates, err
}

// templateName derives a resource name from a file name, e.g.
// `src/name-tag.html` is `name-tag`
func templateName(rel string) string {
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func compileTemplate(session *tc.Session, file TemplateFile) (*tc.TemplateDefinition, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading template file %s: %w", file.Path, err)
	}
	fmt.Printf("   🔍 Parsing template (%d bytes)...\n", len(data))
	return session.Compile(tc.TemplateSource{Name: file.Name, Template: string(data)})
}
