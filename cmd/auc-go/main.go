package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"auc-go/packages/compiler/src/config"
	ep "auc-go/packages/compiler/src/expression_parser"
)

const projectFile = "auc.yaml"

func usage() {
	fmt.Println(`auc-go - template compiler
Usage: auc-go <command> [args]

Commands:
  compile [-config auc.yaml] [-out dir] [-v] <path>   Compile the templates below path
  parse <expression>                                  Parse a binding expression
  help                                                Show help`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	switch cmd {
	case "help", "-h", "--help":
		usage()
	case "compile":
		if err := runCompile(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		if err := runParse(strings.Join(os.Args[2:], " ")); err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func runCompile(args []string) error {
	flags := flag.NewFlagSet("compile", flag.ContinueOnError)
	configPath := flags.String("config", "", "project file (default <path>/"+projectFile+")")
	outDir := flags.String("out", "", "output directory, relative to the project root")
	verbose := flags.Bool("v", false, "verbose logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	root := "."
	if flags.NArg() > 0 {
		root = flags.Arg(0)
	}
	project, err := loadProject(root, *configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		if filepath.IsAbs(*outDir) {
			project.OutDir = *outDir
		} else {
			project.OutDir = filepath.Join(project.Root, *outDir)
		}
	}
	return CompileProject(project, logger)
}

// loadProject reads the project file, falling back to the defaults rooted at
// root when there is none
func loadProject(root, path string) (*config.ProjectConfig, error) {
	if path != "" {
		return config.ParseProjectConfig(path)
	}
	candidate := filepath.Join(root, projectFile)
	if _, err := os.Stat(candidate); err == nil {
		return config.ParseProjectConfig(candidate)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	project := config.NewProjectConfig(root)
	project.OutDir = filepath.Join(root, project.OutDir)
	return project, nil
}

func runParse(expression string) error {
	parser := ep.NewParser(ep.NewLexer())
	ast, err := parser.Parse(expression)
	if err != nil {
		return err
	}
	dehydrated, err := json.Marshal(ast.Dehydrate())
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", paint(colorBold, "expression:"), ep.Serialize(ast))
	fmt.Printf("%s %s\n", paint(colorBold, "kind:"), ast.Kind())
	fmt.Printf("%s %s\n", paint(colorBold, "ast:"), dehydrated)
	fmt.Printf("%s %s\n", paint(colorBold, "observes:"), strings.Join(ast.ObservedProperties(), ", "))
	return nil
}
