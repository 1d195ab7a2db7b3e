// Package template_compiler compiles template markup into a TemplateDefinition:
// the rewritten markup plus one ordered instruction set per marked node.
//
// Main pieces:
//
//   - Session: owns the parse cache, binding records, name cache and resources
//     of one compilation run, wired through a di.Container
//   - BindingLanguage: splits `name.command` attributes and detects `${...}`
//     interpolations
//   - SyntaxInterpreter: turns binding commands into instructions
//   - AttributeMap: maps HTML attribute names to DOM property names
//   - TemplateCompiler: walks the DOM, strips consumed attributes, inserts
//     text markers and collects observed properties
//
// Usage:
//
//	session, err := template_compiler.NewSession()
//	if err != nil {
//		return err
//	}
//	def, err := session.Compile(template_compiler.TemplateSource{
//		Name:     "name-tag",
//		Template: `<template><input value.bind="name"></template>`,
//	})
package template_compiler
