package di

import (
	"errors"
	"fmt"
	"sync"
)

// Key identifies a registration. Keys must be comparable; a *Class is its
// own key when registered without an explicit one.
type Key interface{}

// Class is an invokable component. Inject lists the keys resolved, in order,
// into the arguments of New.
type Class struct {
	Name   string
	Inject []Key
	New    func(args ...interface{}) (interface{}, error)
}

type containerKey struct{}

// ContainerKey resolves to the container performing the lookup
var ContainerKey Key = containerKey{}

// ErrNilKey is returned when a nil key or value reaches the container
var ErrNilKey = errors.New("key/value cannot be null or undefined. Are you trying to inject/register something that doesn't exist with DI?")

// InvokeError wraps a failure to construct a Class
type InvokeError struct {
	Name string
	Err  error
}

// Error implements the error interface
func (e *InvokeError) Error() string {
	return fmt.Sprintf("Error invoking %s. %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause
func (e *InvokeError) Unwrap() error {
	return e.Err
}

// Container is a keyed service locator. Unresolved keys fall back to the
// parent chain; the root auto-registers them.
type Container struct {
	mu        sync.RWMutex
	parent    *Container
	root      *Container
	resolvers map[Key]*Resolver
}

// NewContainer creates a root container
func NewContainer() *Container {
	c := &Container{resolvers: map[Key]*Resolver{}}
	c.root = c
	return c
}

func validateKey(key Key) error {
	if key == nil {
		return ErrNilKey
	}
	return nil
}

// RegisterInstance registers a fixed value. A nil instance registers the key itself.
func (c *Container) RegisterInstance(key Key, instance interface{}) (*Resolver, error) {
	if instance == nil {
		instance = key
	}
	return c.RegisterResolver(key, NewResolver(StrategyInstance, instance))
}

// RegisterSingleton registers class to be constructed on first request.
// A nil class uses the key, which must then be a *Class.
func (c *Container) RegisterSingleton(key Key, class *Class) (*Resolver, error) {
	return c.RegisterResolver(key, NewResolver(StrategySingleton, classOrKey(key, class)))
}

// RegisterTransient registers class to be constructed on every request
func (c *Container) RegisterTransient(key Key, class *Class) (*Resolver, error) {
	return c.RegisterResolver(key, NewResolver(StrategyTransient, classOrKey(key, class)))
}

// RegisterHandler registers a callback resolver
func (c *Container) RegisterHandler(key Key, handler Handler) (*Resolver, error) {
	if handler == nil {
		return nil, ErrNilKey
	}
	return c.RegisterResolver(key, NewResolver(StrategyCallback, handler))
}

// RegisterAlias makes aliasKey resolve whatever originalKey resolves
func (c *Container) RegisterAlias(originalKey, aliasKey Key) (*Resolver, error) {
	if err := validateKey(originalKey); err != nil {
		return nil, err
	}
	return c.RegisterResolver(aliasKey, NewResolver(StrategyAlias, originalKey))
}

// RegisterResolver registers resolver under key. A second registration for
// the same key turns the entry into an array resolver.
func (c *Container) RegisterResolver(key Key, resolver *Resolver) (*Resolver, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.resolvers[key]
	switch {
	case !ok:
		c.resolvers[key] = resolver
	case existing.Strategy() == StrategyArray:
		existing.push(resolver)
	default:
		c.resolvers[key] = NewResolver(StrategyArray, []*Resolver{existing, resolver})
	}
	return resolver, nil
}

// AutoRegister registers fn as a singleton when it is a *Class and as an
// instance otherwise. A nil fn uses the key.
func (c *Container) AutoRegister(key Key, fn interface{}) (*Resolver, error) {
	if fn == nil {
		fn = key
	}
	if class, ok := fn.(*Class); ok {
		return c.RegisterResolver(key, NewResolver(StrategySingleton, class))
	}
	return c.RegisterResolver(key, NewResolver(StrategyInstance, fn))
}

// Unregister removes the local registration for key
func (c *Container) Unregister(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolvers, key)
}

// HasResolver reports whether key is registered locally, or anywhere up
// the parent chain when checkParent is set
func (c *Container) HasResolver(key Key, checkParent bool) bool {
	if validateKey(key) != nil {
		return false
	}
	if _, ok := c.GetResolver(key); ok {
		return true
	}
	return checkParent && c.parent != nil && c.parent.HasResolver(key, checkParent)
}

// GetResolver returns the local resolver for key
func (c *Container) GetResolver(key Key) (*Resolver, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resolver, ok := c.resolvers[key]
	return resolver, ok
}

// Get resolves key
func (c *Container) Get(key Key) (interface{}, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if key == ContainerKey {
		return c, nil
	}
	for current := c; ; current = current.parent {
		if resolver, ok := current.GetResolver(key); ok {
			return resolver.Get(current, key)
		}
		if current.parent == nil {
			resolver, err := current.AutoRegister(key, nil)
			if err != nil {
				return nil, err
			}
			return resolver.Get(current, key)
		}
	}
}

// GetAll resolves every registration for key. Unknown keys yield an empty slice.
func (c *Container) GetAll(key Key) ([]interface{}, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	resolver, ok := c.GetResolver(key)
	if !ok {
		if c.parent == nil {
			return []interface{}{}, nil
		}
		return c.parent.GetAll(key)
	}
	list := resolver.resolvers()
	results := make([]interface{}, len(list))
	for i, r := range list {
		value, err := r.Get(c, key)
		if err != nil {
			return nil, err
		}
		results[i] = value
	}
	return results, nil
}

// CreateChild creates a container that falls back to c
func (c *Container) CreateChild() *Container {
	child := NewContainer()
	child.parent = c
	child.root = c.root
	return child
}

// Parent returns the parent container, or nil at the root
func (c *Container) Parent() *Container {
	return c.parent
}

// Root returns the root of the container chain
func (c *Container) Root() *Container {
	return c.root
}

// Invoke resolves the dependencies of class and constructs it. dynamic
// arguments are appended after the injected ones.
func (c *Container) Invoke(class *Class, dynamic ...interface{}) (interface{}, error) {
	if class == nil || class.New == nil {
		return nil, ErrNilKey
	}
	args := make([]interface{}, 0, len(class.Inject)+len(dynamic))
	for i, dep := range class.Inject {
		if dep == nil {
			return nil, &InvokeError{
				Name: class.Name,
				Err:  fmt.Errorf("Constructor Parameter with index %d cannot be null or undefined. Are you trying to inject/register something that doesn't exist with DI?", i),
			}
		}
		value, err := c.Get(dep)
		if err != nil {
			return nil, &InvokeError{Name: class.Name, Err: err}
		}
		args = append(args, value)
	}
	args = append(args, dynamic...)
	instance, err := class.New(args...)
	if err != nil {
		return nil, &InvokeError{Name: class.Name, Err: err}
	}
	return instance, nil
}

// Resolve resolves key and asserts the result to T
func Resolve[T any](c *Container, key Key) (T, error) {
	var zero T
	value, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("key %v resolved to %T, not %T", key, value, zero)
	}
	return typed, nil
}

func classOrKey(key Key, class *Class) interface{} {
	if class != nil {
		return class
	}
	return key
}
