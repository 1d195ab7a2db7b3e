package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BindingMode governs the data flow direction between a view model and the view
type BindingMode int

const (
	BindingModeOneTime  BindingMode = 0
	BindingModeToView   BindingMode = 1
	BindingModeOneWay   BindingMode = BindingModeToView
	BindingModeTwoWay   BindingMode = 2
	BindingModeFromView BindingMode = 3
)

// String returns the camel cased mode name
func (m BindingMode) String() string {
	switch m {
	case BindingModeOneTime:
		return "oneTime"
	case BindingModeToView:
		return "toView"
	case BindingModeTwoWay:
		return "twoWay"
	case BindingModeFromView:
		return "fromView"
	default:
		return fmt.Sprintf("BindingMode(%d)", int(m))
	}
}

// ParseBindingMode resolves a mode name. Both the camel cased names and the
// binding command spelling (one-time, to-view, one-way, two-way, from-view) are accepted.
func ParseBindingMode(name string) (BindingMode, bool) {
	switch name {
	case "oneTime", "one-time":
		return BindingModeOneTime, true
	case "toView", "to-view", "oneWay", "one-way":
		return BindingModeToView, true
	case "twoWay", "two-way":
		return BindingModeTwoWay, true
	case "fromView", "from-view":
		return BindingModeFromView, true
	}
	return 0, false
}

// UnmarshalYAML accepts either a mode name or its numeric value
func (m *BindingMode) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err == nil {
		if n < int(BindingModeOneTime) || n > int(BindingModeFromView) {
			return fmt.Errorf("line %d: invalid binding mode %d", node.Line, n)
		}
		*m = BindingMode(n)
		return nil
	}
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	mode, ok := ParseBindingMode(name)
	if !ok {
		return fmt.Errorf("line %d: cannot resolve binding mode for mode: [%s]", node.Line, name)
	}
	*m = mode
	return nil
}

// DelegationStrategy is the event listening mode of a listener binding
type DelegationStrategy int

const (
	DelegationStrategyNone      DelegationStrategy = 0
	DelegationStrategyCapturing DelegationStrategy = 1
	DelegationStrategyBubbling  DelegationStrategy = 2
)

// String returns the strategy name
func (d DelegationStrategy) String() string {
	switch d {
	case DelegationStrategyNone:
		return "none"
	case DelegationStrategyCapturing:
		return "capturing"
	case DelegationStrategyBubbling:
		return "bubbling"
	default:
		return fmt.Sprintf("DelegationStrategy(%d)", int(d))
	}
}
