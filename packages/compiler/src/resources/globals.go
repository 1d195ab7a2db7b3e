package resources

import "auc-go/packages/compiler/src/core"

// RegisterGlobals registers the built-in `if` and `else` template controllers
func RegisterGlobals(r *Resources) error {
	toView := core.BindingModeToView

	condition, err := NewBindableProperty(BindableConfig{
		Name:               "condition",
		Type:               "boolean",
		PrimaryProperty:    true,
		DefaultBindingMode: &toView,
	})
	if err != nil {
		return err
	}
	ifAttr, err := NewAttributeResource("if", "", []*BindableProperty{condition}, "bind", "unbind")
	if err != nil {
		return err
	}
	ifAttr.TemplateController = true
	if err := r.RegisterAttribute(ifAttr); err != nil {
		return err
	}

	elseCondition, err := NewBindableProperty(BindableConfig{
		Name: "condition",
		Type: "boolean",
	})
	if err != nil {
		return err
	}
	elseAttr, err := NewAttributeResource("else", "", []*BindableProperty{elseCondition}, "bind")
	if err != nil {
		return err
	}
	elseAttr.TemplateController = true
	return r.RegisterAttribute(elseAttr)
}
