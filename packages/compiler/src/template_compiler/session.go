package template_compiler

import (
	"fmt"
	"log/slog"

	"auc-go/packages/compiler/src/config"
	"auc-go/packages/compiler/src/di"
	ep "auc-go/packages/compiler/src/expression_parser"
	"auc-go/packages/compiler/src/resources"
	"auc-go/packages/compiler/src/util"

	"github.com/google/uuid"
)

type serviceKey string

// Keys of the services a Session registers in its container
const (
	ConfigKey            serviceKey = "CompilerConfig"
	LoggerKey            serviceKey = "Logger"
	NameCacheKey         serviceKey = "NameCache"
	ResourcesKey         serviceKey = "Resources"
	LexerKey             serviceKey = "Lexer"
	ParserKey            serviceKey = "Parser"
	AttributeMapKey      serviceKey = "AttributeMap"
	BindingLanguageKey   serviceKey = "BindingLanguage"
	SyntaxInterpreterKey serviceKey = "SyntaxInterpreter"
	TemplateCompilerKey  serviceKey = "TemplateCompiler"
)

var (
	lexerClass = &di.Class{
		Name: "Lexer",
		New: func(args ...interface{}) (interface{}, error) {
			return ep.NewLexer(), nil
		},
	}
	parserClass = &di.Class{
		Name:   "Parser",
		Inject: []di.Key{LexerKey},
		New: func(args ...interface{}) (interface{}, error) {
			return ep.NewParser(args[0].(*ep.Lexer)), nil
		},
	}
	attributeMapClass = &di.Class{
		Name:   "AttributeMap",
		Inject: []di.Key{NameCacheKey},
		New: func(args ...interface{}) (interface{}, error) {
			return NewAttributeMap(args[0].(*util.NameCache)), nil
		},
	}
	bindingLanguageClass = &di.Class{
		Name:   "BindingLanguage",
		Inject: []di.Key{ParserKey},
		New: func(args ...interface{}) (interface{}, error) {
			return NewBindingLanguage(args[0].(*ep.Parser)), nil
		},
	}
	syntaxInterpreterClass = &di.Class{
		Name:   "SyntaxInterpreter",
		Inject: []di.Key{ParserKey, AttributeMapKey, LoggerKey},
		New: func(args ...interface{}) (interface{}, error) {
			return NewSyntaxInterpreter(args[0].(*ep.Parser), args[1].(*AttributeMap), args[2].(*slog.Logger)), nil
		},
	}
	templateCompilerClass = &di.Class{
		Name:   "TemplateCompiler",
		Inject: []di.Key{ParserKey, BindingLanguageKey, SyntaxInterpreterKey, ConfigKey},
		New: func(args ...interface{}) (interface{}, error) {
			return NewTemplateCompiler(
				args[0].(*ep.Parser),
				args[1].(*BindingLanguage),
				args[2].(*SyntaxInterpreter),
				args[3].(*config.CompilerConfig),
			), nil
		},
	}
)

// Session owns every piece of mutable compiler state: the parse cache, the
// binding record registry, the name cache and the resources. Independent
// sessions never share state.
type Session struct {
	ID        uuid.UUID
	config    *config.CompilerConfig
	logger    *slog.Logger
	container *di.Container
	names     *util.NameCache
	parser    *ep.Parser
	compiler  *TemplateCompiler
	resources *resources.Resources
}

// NewSession wires a compiler in a session-owned container
func NewSession(opts ...config.CompilerConfigOption) (*Session, error) {
	cfg := config.NewCompilerConfig(opts...)
	id := uuid.New()
	logger := cfg.Logger.With("session", id.String())
	sessionConfig := *cfg
	sessionConfig.Logger = logger

	s := &Session{
		ID:        id,
		config:    &sessionConfig,
		logger:    logger,
		container: di.NewContainer(),
		names:     util.NewNameCache(),
		resources: resources.NewResources(),
	}
	if cfg.GlobalResources {
		if err := resources.RegisterGlobals(s.resources); err != nil {
			return nil, fmt.Errorf("failed to register global resources: %w", err)
		}
	}

	if err := s.register(); err != nil {
		return nil, err
	}
	parser, err := di.Resolve[*ep.Parser](s.container, ParserKey)
	if err != nil {
		return nil, err
	}
	compiler, err := di.Resolve[*TemplateCompiler](s.container, TemplateCompilerKey)
	if err != nil {
		return nil, err
	}
	s.parser = parser
	s.compiler = compiler
	logger.Debug("session created", "globals", cfg.GlobalResources, "strict", cfg.StrictExpressions)
	return s, nil
}

func (s *Session) register() error {
	instances := []struct {
		key   di.Key
		value interface{}
	}{
		{ConfigKey, s.config},
		{LoggerKey, s.logger},
		{NameCacheKey, s.names},
		{ResourcesKey, s.resources},
	}
	for _, instance := range instances {
		if _, err := s.container.RegisterInstance(instance.key, instance.value); err != nil {
			return err
		}
	}
	singletons := []struct {
		key   di.Key
		class *di.Class
	}{
		{LexerKey, lexerClass},
		{ParserKey, parserClass},
		{AttributeMapKey, attributeMapClass},
		{BindingLanguageKey, bindingLanguageClass},
		{SyntaxInterpreterKey, syntaxInterpreterClass},
		{TemplateCompilerKey, templateCompilerClass},
	}
	for _, singleton := range singletons {
		if _, err := s.container.RegisterSingleton(singleton.key, singleton.class); err != nil {
			return err
		}
	}
	return nil
}

// Compile compiles source against the session resources
func (s *Session) Compile(source TemplateSource) (*TemplateDefinition, error) {
	def, err := s.compiler.Compile(source, s.resources)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("compiled template", "name", def.Name,
		"instructions", len(def.Instructions), "diagnostics", len(def.Diagnostics))
	return def, nil
}

// Resources returns the session resources
func (s *Session) Resources() *resources.Resources {
	return s.resources
}

// Parser returns the session expression parser
func (s *Session) Parser() *ep.Parser {
	return s.parser
}

// Container returns the session service container
func (s *Session) Container() *di.Container {
	return s.container
}

// Config returns the session configuration
func (s *Session) Config() *config.CompilerConfig {
	return s.config
}

// Records returns every binding record registered so far, in id order
func (s *Session) Records() []*ep.BindingRecord {
	return s.parser.Registry().Records()
}

// Reset drops the parse cache, the binding records and the name cache.
// Registered resources are kept.
func (s *Session) Reset() {
	s.parser.Reset()
	s.names.Reset()
	s.logger.Debug("session reset")
}
