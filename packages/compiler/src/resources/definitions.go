package resources

import (
	"errors"
	"fmt"
	"strings"

	"auc-go/packages/compiler/src/core"
	"auc-go/packages/compiler/src/util"
)

// ResourceKind distinguishes custom elements from custom attributes
type ResourceKind int

const (
	ResourceKindElement ResourceKind = iota
	ResourceKindAttribute
)

// String returns the kind name
func (k ResourceKind) String() string {
	if k == ResourceKindElement {
		return "element"
	}
	return "attribute"
}

// ErrTwoPrimaryProperties is returned when more than one bindable of a
// custom attribute is flagged as primary
var ErrTwoPrimaryProperties = errors.New("Cannot have two custom primary properties on one custom attribute.")

// BindableConfig is the declaration of a bindable property before defaults
// are applied. A nil DefaultBindingMode means toView.
type BindableConfig struct {
	Name               string            `yaml:"name"`
	Type               string            `yaml:"type"`
	Attribute          string            `yaml:"attribute"`
	DefaultValue       interface{}       `yaml:"defaultValue"`
	PrimaryProperty    bool              `yaml:"primaryProperty"`
	DefaultBindingMode *core.BindingMode `yaml:"defaultBindingMode"`
}

// BindableProperty is a view-model property that can be targeted from markup
type BindableProperty struct {
	Name               string           `json:"name"`
	Type               string           `json:"type"`
	Attribute          string           `json:"attribute"`
	DefaultValue       interface{}      `json:"defaultValue,omitempty"`
	PrimaryProperty    bool             `json:"primaryProperty,omitempty"`
	DefaultBindingMode core.BindingMode `json:"defaultBindingMode"`
}

// NewBindableProperty applies defaults to config: type "string", the
// hyphenated name as attribute and toView as binding mode
func NewBindableProperty(config BindableConfig) (*BindableProperty, error) {
	if config.Name == "" {
		return nil, errors.New("bindable property requires a name")
	}
	prop := &BindableProperty{
		Name:               config.Name,
		Type:               config.Type,
		Attribute:          config.Attribute,
		DefaultValue:       config.DefaultValue,
		PrimaryProperty:    config.PrimaryProperty,
		DefaultBindingMode: core.BindingModeToView,
	}
	if prop.Type == "" {
		prop.Type = "string"
	}
	if prop.Attribute == "" {
		prop.Attribute = util.Hyphenate(config.Name)
	}
	if config.DefaultBindingMode != nil {
		prop.DefaultBindingMode = *config.DefaultBindingMode
	}
	return prop, nil
}

// HTMLBehavior holds what custom elements and custom attributes share
type HTMLBehavior struct {
	// Name is the view-model name, e.g. NameTagCustomElement
	Name string
	// HTMLName is the name used in markup, e.g. name-tag
	HTMLName   string
	URL        string
	Bindables  []*BindableProperty
	LifeCycles map[string]bool

	bindables map[string]*BindableProperty
}

func newHTMLBehavior(name, url string, bindables []*BindableProperty, lifeCycles []string) (HTMLBehavior, error) {
	behavior := HTMLBehavior{
		Name:       name,
		HTMLName:   BehaviorHTMLName(name),
		URL:        url,
		Bindables:  bindables,
		LifeCycles: map[string]bool{},
		bindables:  map[string]*BindableProperty{},
	}
	for _, prop := range bindables {
		if _, exists := behavior.bindables[prop.Attribute]; exists {
			return behavior, fmt.Errorf("duplicate bindable attribute [%s] on %s", prop.Attribute, name)
		}
		behavior.bindables[prop.Attribute] = prop
	}
	for _, hook := range lifeCycles {
		behavior.LifeCycles[hook] = true
	}
	return behavior, nil
}

// GetBindable returns the bindable targeted by the given attribute name, or nil
func (b *HTMLBehavior) GetBindable(htmlName string) *BindableProperty {
	return b.bindables[htmlName]
}

// HasConstructor reports whether the view model declares a constructor hook
func (b *HTMLBehavior) HasConstructor() bool {
	return b.LifeCycles["ctor"]
}

// ElementResource is a registered custom element
type ElementResource struct {
	HTMLBehavior
	Containerless bool
}

// NewElementResource creates a new ElementResource
func NewElementResource(name, url string, bindables []*BindableProperty, lifeCycles ...string) (*ElementResource, error) {
	behavior, err := newHTMLBehavior(name, url, bindables, lifeCycles)
	if err != nil {
		return nil, err
	}
	return &ElementResource{HTMLBehavior: behavior}, nil
}

// Kind returns ResourceKindElement
func (e *ElementResource) Kind() ResourceKind { return ResourceKindElement }

// AttributeResource is a registered custom attribute
type AttributeResource struct {
	HTMLBehavior
	// PrimaryProperty receives a value that is not written as an option bag
	PrimaryProperty    *BindableProperty
	TemplateController bool
}

// NewAttributeResource creates a new AttributeResource
func NewAttributeResource(name, url string, bindables []*BindableProperty, lifeCycles ...string) (*AttributeResource, error) {
	behavior, err := newHTMLBehavior(name, url, bindables, lifeCycles)
	if err != nil {
		return nil, err
	}
	attr := &AttributeResource{HTMLBehavior: behavior}
	for _, prop := range bindables {
		if !prop.PrimaryProperty {
			continue
		}
		if attr.PrimaryProperty != nil {
			return nil, ErrTwoPrimaryProperties
		}
		attr.PrimaryProperty = prop
	}
	return attr, nil
}

// Kind returns ResourceKindAttribute
func (a *AttributeResource) Kind() ResourceKind { return ResourceKindAttribute }

// BehaviorHTMLName strips the CustomElement or CustomAttribute suffix and
// hyphenates the rest
func BehaviorHTMLName(name string) string {
	name = strings.TrimSuffix(name, "CustomElement")
	name = strings.TrimSuffix(name, "CustomAttribute")
	return util.Hyphenate(name)
}
