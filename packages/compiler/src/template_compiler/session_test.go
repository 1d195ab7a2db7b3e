package template_compiler_test

import (
	"testing"

	"auc-go/packages/compiler/src/config"
	"auc-go/packages/compiler/src/di"
	ep "auc-go/packages/compiler/src/expression_parser"
	tc "auc-go/packages/compiler/src/template_compiler"

	"github.com/google/uuid"
)

func TestSession(t *testing.T) {
	t.Run("should identify each session", func(t *testing.T) {
		a, b := newSession(t), newSession(t)
		if a.ID == uuid.Nil || a.ID == b.ID {
			t.Errorf("Expected distinct ids, got %s and %s", a.ID, b.ID)
		}
	})

	t.Run("should resolve its services from the container", func(t *testing.T) {
		s := newSession(t)
		parser, err := di.Resolve[*ep.Parser](s.Container(), tc.ParserKey)
		if err != nil {
			t.Fatal(err)
		}
		if parser != s.Parser() {
			t.Errorf("Expected the container parser to be the session parser")
		}
		first, err := di.Resolve[*tc.TemplateCompiler](s.Container(), tc.TemplateCompilerKey)
		if err != nil {
			t.Fatal(err)
		}
		second, _ := di.Resolve[*tc.TemplateCompiler](s.Container(), tc.TemplateCompilerKey)
		if first != second {
			t.Errorf("Expected a singleton compiler")
		}
		cfg, err := di.Resolve[*config.CompilerConfig](s.Container(), tc.ConfigKey)
		if err != nil {
			t.Fatal(err)
		}
		if cfg != s.Config() {
			t.Errorf("Expected the container config to be the session config")
		}
	})

	t.Run("should register binding records", func(t *testing.T) {
		s := newSession(t)
		compile(t, s, `<template><input value.bind="msg"><p>${count + 1}</p></template>`)
		records := s.Records()
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[0].ID != 1 || records[0].Expression != "msg" {
			t.Errorf("Unexpected first record %+v", records[0])
		}
		if records[1].ID != 2 || records[1].Expression != "${count + 1}" {
			t.Errorf("Unexpected second record %+v", records[1])
		}
	})

	t.Run("should drop caches on reset", func(t *testing.T) {
		s := newSession(t)
		compile(t, s, `<template><input value.bind="msg"></template>`)
		if s.Parser().CacheSize() == 0 {
			t.Fatalf("Expected a warm parse cache")
		}
		s.Reset()
		if s.Parser().CacheSize() != 0 || len(s.Records()) != 0 {
			t.Errorf("Expected empty caches, got %d entries and %d records", s.Parser().CacheSize(), len(s.Records()))
		}
		if _, ok := s.Resources().GetAttribute("if"); !ok {
			t.Errorf("Expected resources to survive a reset")
		}
		def := compile(t, s, `<template><input value.bind="other"></template>`)
		if got := def.Instructions[0][0].(*tc.TwoWayBindingInstruction).Record; got != 1 {
			t.Errorf("Expected record ids to restart at 1, got %d", got)
		}
	})

	t.Run("should not share state between sessions", func(t *testing.T) {
		a, b := newSession(t), newSession(t)
		compile(t, a, `<template><input value.bind="x"></template>`)
		if len(b.Records()) != 0 || b.Parser().CacheSize() != 0 {
			t.Errorf("Expected an untouched second session")
		}
		if a.Resources() == b.Resources() {
			t.Errorf("Expected separate resources")
		}
	})
}
