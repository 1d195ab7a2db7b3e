package resources

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrDuplicateElement is returned when an element name is already
	// resolvable from the container
	ErrDuplicateElement = errors.New("Element with same name already exists.")
	// ErrDuplicateAttribute is returned when an attribute name is already
	// resolvable from the container
	ErrDuplicateAttribute = errors.New("Attribute with same name already exists.")
)

// Resources holds the custom elements and attributes visible to a template.
// Lookups check the container itself first, then its parent chain.
type Resources struct {
	mu         sync.RWMutex
	parent     *Resources
	elements   map[string]*ElementResource
	attributes map[string]*AttributeResource
}

// NewResources creates a root container
func NewResources() *Resources {
	return &Resources{
		elements:   map[string]*ElementResource{},
		attributes: map[string]*AttributeResource{},
	}
}

// CreateChild creates a container that falls back to r
func (r *Resources) CreateChild() *Resources {
	child := NewResources()
	child.parent = r
	return child
}

// Parent returns the parent container, or nil at the root
func (r *Resources) Parent() *Resources {
	return r.parent
}

// RegisterElement registers element under its HTML name. Names already
// resolvable through the parent chain are rejected too.
func (r *Resources) RegisterElement(element *ElementResource) error {
	if r.parent != nil {
		if _, exists := r.parent.GetElement(element.HTMLName); exists {
			return ErrDuplicateElement
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.elements[element.HTMLName]; exists {
		return ErrDuplicateElement
	}
	r.elements[element.HTMLName] = element
	return nil
}

// GetElement resolves a custom element by HTML name
func (r *Resources) GetElement(name string) (*ElementResource, bool) {
	for c := r; c != nil; c = c.parent {
		c.mu.RLock()
		element, ok := c.elements[name]
		c.mu.RUnlock()
		if ok {
			return element, true
		}
	}
	return nil, false
}

// RegisterAttribute registers attr under its HTML name. Names already
// resolvable through the parent chain are rejected too.
func (r *Resources) RegisterAttribute(attr *AttributeResource) error {
	if r.parent != nil {
		if _, exists := r.parent.GetAttribute(attr.HTMLName); exists {
			return ErrDuplicateAttribute
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.attributes[attr.HTMLName]; exists {
		return ErrDuplicateAttribute
	}
	r.attributes[attr.HTMLName] = attr
	return nil
}

// GetAttribute resolves a custom attribute by HTML name
func (r *Resources) GetAttribute(name string) (*AttributeResource, bool) {
	for c := r; c != nil; c = c.parent {
		c.mu.RLock()
		attr, ok := c.attributes[name]
		c.mu.RUnlock()
		if ok {
			return attr, true
		}
	}
	return nil, false
}

// ElementNames returns the HTML names of the elements registered on r itself, sorted
func (r *Resources) ElementNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.elements))
	for name := range r.elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttributeNames returns the HTML names of the attributes registered on r itself, sorted
func (r *Resources) AttributeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.attributes))
	for name := range r.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
