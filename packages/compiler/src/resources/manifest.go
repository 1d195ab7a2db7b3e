package resources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest declares the custom elements and attributes a project provides.
//
//	elements:
//	  - name: NameTagCustomElement
//	    url: ./name-tag
//	    bindables:
//	      - firstName
//	      - name: value
//	        defaultBindingMode: two-way
//	attributes:
//	  - name: tooltip
//	    bindables:
//	      - name: text
//	        primaryProperty: true
type Manifest struct {
	Elements   []ResourceConfig `yaml:"elements"`
	Attributes []ResourceConfig `yaml:"attributes"`
}

// ResourceConfig is one manifest entry
type ResourceConfig struct {
	Name               string           `yaml:"name"`
	URL                string           `yaml:"url"`
	Containerless      bool             `yaml:"containerless"`
	TemplateController bool             `yaml:"templateController"`
	Bindables          []BindableConfig `yaml:"bindables"`
	LifeCycles         []string         `yaml:"lifeCycles"`
}

// UnmarshalYAML accepts a bare property name as shorthand for {name: ...}
func (c *BindableConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Name = node.Value
		return nil
	}
	type plain BindableConfig
	return node.Decode((*plain)(c))
}

// ParseManifest decodes a YAML manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse resource manifest: %w", err)
	}
	return &manifest, nil
}

// LoadManifest reads and decodes the manifest at path
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource manifest: %w", err)
	}
	return ParseManifest(data)
}

func (c ResourceConfig) bindables() ([]*BindableProperty, error) {
	props := make([]*BindableProperty, 0, len(c.Bindables))
	for _, config := range c.Bindables {
		prop, err := NewBindableProperty(config)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		props = append(props, prop)
	}
	return props, nil
}

// Register adds every declared resource to r
func (m *Manifest) Register(r *Resources) error {
	for _, config := range m.Elements {
		props, err := config.bindables()
		if err != nil {
			return err
		}
		element, err := NewElementResource(config.Name, config.URL, props, config.LifeCycles...)
		if err != nil {
			return err
		}
		element.Containerless = config.Containerless
		if err := r.RegisterElement(element); err != nil {
			return fmt.Errorf("element %s: %w", element.HTMLName, err)
		}
	}
	for _, config := range m.Attributes {
		props, err := config.bindables()
		if err != nil {
			return err
		}
		attr, err := NewAttributeResource(config.Name, config.URL, props, config.LifeCycles...)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", config.Name, err)
		}
		attr.TemplateController = config.TemplateController
		if err := r.RegisterAttribute(attr); err != nil {
			return fmt.Errorf("attribute %s: %w", attr.HTMLName, err)
		}
	}
	return nil
}
