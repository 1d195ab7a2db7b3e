package main

import (
	"os"
	"path/filepath"
	"testing"

	"auc-go/packages/compiler/src/config"

	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("<template></template>"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindTemplates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"app.html",
		"src/name-tag.html",
		"src/name-tag.ts",
		"src/legacy/old.html",
		"node_modules/lib/view.html",
		"dist/auc-go/copy.html",
	)

	project := config.NewProjectConfig(root)
	project.OutDir = filepath.Join(root, project.OutDir)
	project.Exclude = []string{"src/legacy/**"}

	got, err := findTemplates(project)
	if err != nil {
		t.Fatalf("findTemplates() returned error: %v", err)
	}
	want := []TemplateFile{
		{Path: filepath.Join(root, "app.html"), Rel: "app.html", Name: "app"},
		{Path: filepath.Join(root, "src", "name-tag.html"), Rel: "src/name-tag.html", Name: "name-tag"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findTemplates() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProject(t *testing.T) {
	t.Run("should fall back to defaults without a project file", func(t *testing.T) {
		root := t.TempDir()
		project, err := loadProject(root, "")
		if err != nil {
			t.Fatal(err)
		}
		if project.Root != root || project.OutDir != filepath.Join(root, "dist", "auc-go") {
			t.Errorf("Unexpected project %+v", project)
		}
	})

	t.Run("should read the project file in the root", func(t *testing.T) {
		root := t.TempDir()
		data := []byte("outDir: build\ninclude:\n  - views/**/*.html\n")
		if err := os.WriteFile(filepath.Join(root, projectFile), data, 0644); err != nil {
			t.Fatal(err)
		}
		project, err := loadProject(root, "")
		if err != nil {
			t.Fatal(err)
		}
		if project.OutDir != filepath.Join(root, "build") {
			t.Errorf("OutDir = %q", project.OutDir)
		}
		if diff := cmp.Diff([]string{"views/**/*.html"}, project.Include); diff != "" {
			t.Errorf("Include mismatch (-want +got):\n%s", diff)
		}
	})
}
