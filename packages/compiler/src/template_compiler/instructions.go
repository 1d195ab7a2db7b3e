package template_compiler

import (
	"encoding/json"

	"auc-go/packages/compiler/src/core"
)

// InstructionType discriminates targeted instructions
type InstructionType string

const (
	InstructionTypeSetProperty      InstructionType = "setProperty"
	InstructionTypeSetAttribute     InstructionType = "setAttribute"
	InstructionTypeOneWayBinding    InstructionType = "oneWayBinding"
	InstructionTypeTwoWayBinding    InstructionType = "twoWayBinding"
	InstructionTypeOneTimeBinding   InstructionType = "oneTimeBinding"
	InstructionTypeFromViewBinding  InstructionType = "fromViewBinding"
	InstructionTypeTextBinding      InstructionType = "textBinding"
	InstructionTypeListenerBinding  InstructionType = "listenerBinding"
	InstructionTypeRefBinding       InstructionType = "refBinding"
	InstructionTypeHydrateElement   InstructionType = "hydrateElement"
	InstructionTypeHydrateAttribute InstructionType = "hydrateAttribute"
)

// Instruction tells the runtime what to attach to one marked template position.
// The set of implementations is closed.
type Instruction interface {
	Type() InstructionType
	instruction()
}

// ElementRefKey is the ref destination for a bare `ref` attribute
const ElementRefKey = "element"

// SetPropertyInstruction assigns a literal value to a property
type SetPropertyInstruction struct {
	Value string `json:"value"`
	Dest  string `json:"dest"`
}

// SetAttributeInstruction assigns a literal value to an attribute
type SetAttributeInstruction struct {
	Value string `json:"value"`
	Dest  string `json:"dest"`
}

// PropertyBinding is shared by the four property binding instructions.
// Record is the binding record id of Src.
type PropertyBinding struct {
	Src    string `json:"src"`
	Dest   string `json:"dest"`
	Record int    `json:"record,omitempty"`
}

// OneWayBindingInstruction binds Src to Dest, view model to view
type OneWayBindingInstruction struct{ PropertyBinding }

// TwoWayBindingInstruction binds Src and Dest in both directions
type TwoWayBindingInstruction struct{ PropertyBinding }

// OneTimeBindingInstruction evaluates Src once
type OneTimeBindingInstruction struct{ PropertyBinding }

// FromViewBindingInstruction binds Dest back to Src, view to view model
type FromViewBindingInstruction struct{ PropertyBinding }

// TextBindingInstruction binds an interpolated text node
type TextBindingInstruction struct {
	Src    string `json:"src"`
	Record int    `json:"record,omitempty"`
}

// ListenerBindingInstruction attaches Src as the handler of the event Dest
type ListenerBindingInstruction struct {
	Src            string                  `json:"src"`
	Dest           string                  `json:"dest"`
	PreventDefault bool                    `json:"preventDefault"`
	Strategy       core.DelegationStrategy `json:"strategy"`
	Record         int                     `json:"record,omitempty"`
}

// RefBindingInstruction stores a reference to Dest in the view model property Src
type RefBindingInstruction struct {
	Src    string `json:"src"`
	Dest   string `json:"dest"`
	Record int    `json:"record,omitempty"`
}

// HydrateElementInstruction creates a custom element with its bindable instructions
type HydrateElementInstruction struct {
	Res          string        `json:"res"`
	Instructions []Instruction `json:"instructions"`
}

// HydrateAttributeInstruction creates a custom attribute with its bindable instructions
type HydrateAttributeInstruction struct {
	Res          string        `json:"res"`
	Instructions []Instruction `json:"instructions"`
}

func (*SetPropertyInstruction) Type() InstructionType      { return InstructionTypeSetProperty }
func (*SetAttributeInstruction) Type() InstructionType     { return InstructionTypeSetAttribute }
func (*OneWayBindingInstruction) Type() InstructionType    { return InstructionTypeOneWayBinding }
func (*TwoWayBindingInstruction) Type() InstructionType    { return InstructionTypeTwoWayBinding }
func (*OneTimeBindingInstruction) Type() InstructionType   { return InstructionTypeOneTimeBinding }
func (*FromViewBindingInstruction) Type() InstructionType  { return InstructionTypeFromViewBinding }
func (*TextBindingInstruction) Type() InstructionType      { return InstructionTypeTextBinding }
func (*ListenerBindingInstruction) Type() InstructionType  { return InstructionTypeListenerBinding }
func (*RefBindingInstruction) Type() InstructionType       { return InstructionTypeRefBinding }
func (*HydrateElementInstruction) Type() InstructionType   { return InstructionTypeHydrateElement }
func (*HydrateAttributeInstruction) Type() InstructionType { return InstructionTypeHydrateAttribute }

func (*SetPropertyInstruction) instruction()      {}
func (*SetAttributeInstruction) instruction()     {}
func (*OneWayBindingInstruction) instruction()    {}
func (*TwoWayBindingInstruction) instruction()    {}
func (*OneTimeBindingInstruction) instruction()   {}
func (*FromViewBindingInstruction) instruction()  {}
func (*TextBindingInstruction) instruction()      {}
func (*ListenerBindingInstruction) instruction()  {}
func (*RefBindingInstruction) instruction()       {}
func (*HydrateElementInstruction) instruction()   {}
func (*HydrateAttributeInstruction) instruction() {}

// NewPropertyBinding returns the binding instruction matching mode
func NewPropertyBinding(mode core.BindingMode, src, dest string, record int) Instruction {
	binding := PropertyBinding{Src: src, Dest: dest, Record: record}
	switch mode {
	case core.BindingModeOneTime:
		return &OneTimeBindingInstruction{binding}
	case core.BindingModeTwoWay:
		return &TwoWayBindingInstruction{binding}
	case core.BindingModeFromView:
		return &FromViewBindingInstruction{binding}
	default:
		return &OneWayBindingInstruction{binding}
	}
}

type typed struct {
	Type InstructionType `json:"type"`
}

func marshalTyped(t InstructionType, fields interface{}) ([]byte, error) {
	head, err := json.Marshal(typed{Type: t})
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if len(body) <= 2 {
		return head, nil
	}
	// splice {"type":...} and {...} into one object
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// MarshalJSON implements json.Marshaler
func (i *SetPropertyInstruction) MarshalJSON() ([]byte, error) {
	type plain SetPropertyInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}

// MarshalJSON implements json.Marshaler
func (i *SetAttributeInstruction) MarshalJSON() ([]byte, error) {
	type plain SetAttributeInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}

// MarshalJSON implements json.Marshaler
func (i *OneWayBindingInstruction) MarshalJSON() ([]byte, error) {
	return marshalTyped(i.Type(), i.PropertyBinding)
}

// MarshalJSON implements json.Marshaler
func (i *TwoWayBindingInstruction) MarshalJSON() ([]byte, error) {
	return marshalTyped(i.Type(), i.PropertyBinding)
}

// MarshalJSON implements json.Marshaler
func (i *OneTimeBindingInstruction) MarshalJSON() ([]byte, error) {
	return marshalTyped(i.Type(), i.PropertyBinding)
}

// MarshalJSON implements json.Marshaler
func (i *FromViewBindingInstruction) MarshalJSON() ([]byte, error) {
	return marshalTyped(i.Type(), i.PropertyBinding)
}

// MarshalJSON implements json.Marshaler
func (i *TextBindingInstruction) MarshalJSON() ([]byte, error) {
	type plain TextBindingInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}

// MarshalJSON implements json.Marshaler
func (i *ListenerBindingInstruction) MarshalJSON() ([]byte, error) {
	type plain ListenerBindingInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}

// MarshalJSON implements json.Marshaler
func (i *RefBindingInstruction) MarshalJSON() ([]byte, error) {
	type plain RefBindingInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}

// MarshalJSON implements json.Marshaler
func (i *HydrateElementInstruction) MarshalJSON() ([]byte, error) {
	type plain HydrateElementInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}

// MarshalJSON implements json.Marshaler
func (i *HydrateAttributeInstruction) MarshalJSON() ([]byte, error) {
	type plain HydrateAttributeInstruction
	return marshalTyped(i.Type(), (*plain)(i))
}
