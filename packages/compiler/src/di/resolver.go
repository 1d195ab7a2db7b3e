package di

import (
	"fmt"
	"sync"
)

// Strategy selects how a Resolver produces its value
type Strategy int

const (
	// StrategyInstance returns a fixed value
	StrategyInstance Strategy = iota
	// StrategySingleton invokes a Class once, then behaves as an instance
	StrategySingleton
	// StrategyTransient invokes a Class on every request
	StrategyTransient
	// StrategyCallback delegates to a Handler
	StrategyCallback
	// StrategyArray holds several resolvers registered under one key
	StrategyArray
	// StrategyAlias redirects to another key
	StrategyAlias
)

// Handler produces a value on request
type Handler func(c *Container, key Key, resolver *Resolver) (interface{}, error)

// Resolver produces the value registered under a key
type Resolver struct {
	mu           sync.Mutex
	strategy     Strategy
	state        interface{}
	constructing bool
}

// NewResolver creates a new Resolver
func NewResolver(strategy Strategy, state interface{}) *Resolver {
	return &Resolver{strategy: strategy, state: state}
}

// Strategy returns the current strategy. A singleton reports
// StrategyInstance once it has been constructed.
func (r *Resolver) Strategy() Strategy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.strategy
}

func (r *Resolver) resolvers() []*Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.strategy != StrategyArray {
		return []*Resolver{r}
	}
	list := r.state.([]*Resolver)
	result := make([]*Resolver, len(list))
	copy(result, list)
	return result
}

func (r *Resolver) push(resolver *Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = append(r.state.([]*Resolver), resolver)
}

// Get resolves the value against container c
func (r *Resolver) Get(c *Container, key Key) (interface{}, error) {
	r.mu.Lock()
	switch r.strategy {
	case StrategyInstance:
		state := r.state
		r.mu.Unlock()
		return state, nil
	case StrategySingleton:
		if r.constructing {
			r.mu.Unlock()
			return nil, fmt.Errorf("Cyclic dependency detected for key %v", key)
		}
		class, err := asClass(r.state)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		r.constructing = true
		r.mu.Unlock()

		singleton, err := c.Invoke(class)

		r.mu.Lock()
		defer r.mu.Unlock()
		r.constructing = false
		if err != nil {
			return nil, err
		}
		if r.strategy == StrategyInstance {
			return r.state, nil
		}
		r.state = singleton
		r.strategy = StrategyInstance
		return singleton, nil
	case StrategyTransient:
		state := r.state
		r.mu.Unlock()
		class, err := asClass(state)
		if err != nil {
			return nil, err
		}
		return c.Invoke(class)
	case StrategyCallback:
		handler := r.state.(Handler)
		r.mu.Unlock()
		return handler(c, key, r)
	case StrategyArray:
		first := r.state.([]*Resolver)[0]
		r.mu.Unlock()
		return first.Get(c, key)
	case StrategyAlias:
		target := r.state
		r.mu.Unlock()
		return c.Get(target)
	default:
		strategy := r.strategy
		r.mu.Unlock()
		return nil, fmt.Errorf("Invalid strategy: %d", int(strategy))
	}
}

func asClass(state interface{}) (*Class, error) {
	class, ok := state.(*Class)
	if !ok {
		return nil, fmt.Errorf("%v is not invokable", state)
	}
	return class, nil
}
