package resources_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"auc-go/packages/compiler/src/core"
	"auc-go/packages/compiler/src/resources"

	"github.com/google/go-cmp/cmp"
)

func element(t *testing.T, name string, bindables ...string) *resources.ElementResource {
	t.Helper()
	props := []*resources.BindableProperty{}
	for _, b := range bindables {
		prop, err := resources.NewBindableProperty(resources.BindableConfig{Name: b})
		if err != nil {
			t.Fatalf("NewBindableProperty(%q) returned error: %v", b, err)
		}
		props = append(props, prop)
	}
	el, err := resources.NewElementResource(name, "", props)
	if err != nil {
		t.Fatalf("NewElementResource(%q) returned error: %v", name, err)
	}
	return el
}

func attribute(t *testing.T, name string) *resources.AttributeResource {
	t.Helper()
	attr, err := resources.NewAttributeResource(name, "", nil)
	if err != nil {
		t.Fatalf("NewAttributeResource(%q) returned error: %v", name, err)
	}
	return attr
}

func TestResources_Registration(t *testing.T) {
	t.Run("should register elements", func(t *testing.T) {
		r := resources.NewResources()
		app := element(t, "App")
		if err := r.RegisterElement(app); err != nil {
			t.Fatalf("RegisterElement() returned error: %v", err)
		}
		got, ok := r.GetElement("app")
		if !ok || got != app {
			t.Errorf("Expected to resolve app, got %v", got)
		}
	})

	t.Run("should register attributes", func(t *testing.T) {
		r := resources.NewResources()
		picker := attribute(t, "DatePickerCustomAttribute")
		if err := r.RegisterAttribute(picker); err != nil {
			t.Fatalf("RegisterAttribute() returned error: %v", err)
		}
		got, ok := r.GetAttribute("date-picker")
		if !ok || got != picker {
			t.Errorf("Expected to resolve date-picker, got %v", got)
		}
	})

	t.Run("should reject elements with the same name", func(t *testing.T) {
		r := resources.NewResources()
		r.RegisterElement(element(t, "App"))
		err := r.RegisterElement(element(t, "AppCustomElement"))
		if !errors.Is(err, resources.ErrDuplicateElement) {
			t.Fatalf("Expected ErrDuplicateElement, got %v", err)
		}
		if err.Error() != "Element with same name already exists." {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})

	t.Run("should reject attributes with the same name", func(t *testing.T) {
		r := resources.NewResources()
		r.RegisterAttribute(attribute(t, "date-picker"))
		err := r.RegisterAttribute(attribute(t, "DatePicker"))
		if err == nil || err.Error() != "Attribute with same name already exists." {
			t.Errorf("Expected duplicate attribute error, got %v", err)
		}
	})
	t.Run("should accept one of several concurrent registrations", func(t *testing.T) {
		r := resources.NewResources()
		elements := make([]*resources.ElementResource, 16)
		attributes := make([]*resources.AttributeResource, 16)
		for i := range elements {
			elements[i] = element(t, "App")
			attributes[i] = attribute(t, "date-picker")
		}

		var registered, attached atomic.Int32
		var wg sync.WaitGroup
		for i := range elements {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if r.RegisterElement(elements[i]) == nil {
					registered.Add(1)
				}
				if r.RegisterAttribute(attributes[i]) == nil {
					attached.Add(1)
				}
			}(i)
		}
		wg.Wait()

		if registered.Load() != 1 || attached.Load() != 1 {
			t.Errorf("Expected one registration each, got %d elements and %d attributes", registered.Load(), attached.Load())
		}
	})
}

func TestResources_Hierarchy(t *testing.T) {
	t.Run("should resolve elements from the parent", func(t *testing.T) {
		parent := resources.NewResources()
		child := parent.CreateChild()
		app := element(t, "App")
		parent.RegisterElement(app)
		if got, ok := child.GetElement("app"); !ok || got != app {
			t.Errorf("Expected child to resolve app from parent")
		}
		if child.Parent() != parent {
			t.Errorf("Expected Parent() to return the parent container")
		}
	})

	t.Run("should prefer local registrations", func(t *testing.T) {
		parent := resources.NewResources()
		child := parent.CreateChild()
		local := element(t, "Local")
		child.RegisterElement(local)
		if _, ok := parent.GetElement("local"); ok {
			t.Errorf("Expected parent not to see child registrations")
		}
		if got, _ := child.GetElement("local"); got != local {
			t.Errorf("Expected child to resolve its own element")
		}
	})

	t.Run("should reject an element that exists in the parent", func(t *testing.T) {
		parent := resources.NewResources()
		child := parent.CreateChild()
		parent.RegisterElement(element(t, "App"))
		if err := child.RegisterElement(element(t, "App")); !errors.Is(err, resources.ErrDuplicateElement) {
			t.Errorf("Expected ErrDuplicateElement, got %v", err)
		}
	})

	t.Run("should reject an attribute that exists in the parent", func(t *testing.T) {
		parent := resources.NewResources()
		child := parent.CreateChild()
		parent.RegisterAttribute(attribute(t, "date-picker"))
		if err := child.RegisterAttribute(attribute(t, "date-picker")); !errors.Is(err, resources.ErrDuplicateAttribute) {
			t.Errorf("Expected ErrDuplicateAttribute, got %v", err)
		}
	})
}

func TestBindableProperty(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		prop, err := resources.NewBindableProperty(resources.BindableConfig{Name: "firstName"})
		if err != nil {
			t.Fatalf("NewBindableProperty() returned error: %v", err)
		}
		want := &resources.BindableProperty{
			Name:               "firstName",
			Type:               "string",
			Attribute:          "first-name",
			DefaultBindingMode: core.BindingModeToView,
		}
		if diff := cmp.Diff(want, prop); diff != "" {
			t.Errorf("NewBindableProperty() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should require a name", func(t *testing.T) {
		if _, err := resources.NewBindableProperty(resources.BindableConfig{}); err == nil {
			t.Errorf("Expected an error for a nameless bindable")
		}
	})

	t.Run("should index bindables by attribute", func(t *testing.T) {
		el := element(t, "NameTag", "firstName")
		if el.GetBindable("first-name") == nil {
			t.Errorf("Expected first-name bindable")
		}
		if el.GetBindable("firstName") != nil {
			t.Errorf("Expected lookup by property name to miss")
		}
	})
}

func TestAttributeResource_PrimaryProperty(t *testing.T) {
	primary := func(name string) *resources.BindableProperty {
		prop, _ := resources.NewBindableProperty(resources.BindableConfig{Name: name, PrimaryProperty: true})
		return prop
	}

	t.Run("should pick the primary bindable", func(t *testing.T) {
		value := primary("value")
		attr, err := resources.NewAttributeResource("tooltip", "", []*resources.BindableProperty{value})
		if err != nil {
			t.Fatalf("NewAttributeResource() returned error: %v", err)
		}
		if attr.PrimaryProperty != value {
			t.Errorf("Expected value to be the primary property")
		}
	})

	t.Run("should reject two primary bindables", func(t *testing.T) {
		_, err := resources.NewAttributeResource("tooltip", "", []*resources.BindableProperty{primary("a"), primary("b")})
		if !errors.Is(err, resources.ErrTwoPrimaryProperties) {
			t.Errorf("Expected ErrTwoPrimaryProperties, got %v", err)
		}
	})
}

func TestRegisterGlobals(t *testing.T) {
	r := resources.NewResources()
	if err := resources.RegisterGlobals(r); err != nil {
		t.Fatalf("RegisterGlobals() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"else", "if"}, r.AttributeNames()); diff != "" {
		t.Errorf("AttributeNames() mismatch (-want +got):\n%s", diff)
	}
	ifAttr, _ := r.GetAttribute("if")
	if ifAttr.PrimaryProperty == nil || ifAttr.PrimaryProperty.Name != "condition" || ifAttr.PrimaryProperty.Type != "boolean" {
		t.Errorf("Expected if to have a boolean primary condition, got %+v", ifAttr.PrimaryProperty)
	}
	elseAttr, _ := r.GetAttribute("else")
	if elseAttr.PrimaryProperty != nil {
		t.Errorf("Expected else to have no primary property")
	}
	if err := resources.RegisterGlobals(r.CreateChild()); err == nil {
		t.Errorf("Expected globals to be rejected when already visible from the parent")
	}
}

func TestManifest(t *testing.T) {
	const manifestYAML = `
elements:
  - name: NameTagCustomElement
    url: ./name-tag
    containerless: true
    bindables:
      - firstName
      - name: value
        defaultBindingMode: two-way
attributes:
  - name: tooltip
    bindables:
      - name: text
        primaryProperty: true
        defaultBindingMode: 0
`

	t.Run("should register declared resources", func(t *testing.T) {
		manifest, err := resources.ParseManifest([]byte(manifestYAML))
		if err != nil {
			t.Fatalf("ParseManifest() returned error: %v", err)
		}
		r := resources.NewResources()
		if err := manifest.Register(r); err != nil {
			t.Fatalf("Register() returned error: %v", err)
		}

		tag, ok := r.GetElement("name-tag")
		if !ok {
			t.Fatalf("Expected name-tag to be registered")
		}
		if !tag.Containerless || tag.URL != "./name-tag" {
			t.Errorf("Unexpected element %+v", tag)
		}
		if got := tag.GetBindable("value").DefaultBindingMode; got != core.BindingModeTwoWay {
			t.Errorf("Expected twoWay, got %v", got)
		}
		if got := tag.GetBindable("first-name").DefaultBindingMode; got != core.BindingModeToView {
			t.Errorf("Expected toView, got %v", got)
		}

		tooltip, ok := r.GetAttribute("tooltip")
		if !ok || tooltip.PrimaryProperty == nil || tooltip.PrimaryProperty.DefaultBindingMode != core.BindingModeOneTime {
			t.Errorf("Unexpected attribute %+v", tooltip)
		}
	})

	t.Run("should reject unknown binding modes", func(t *testing.T) {
		_, err := resources.ParseManifest([]byte("elements:\n  - name: x\n    bindables:\n      - name: y\n        defaultBindingMode: sideways\n"))
		if err == nil {
			t.Errorf("Expected an error for an unknown binding mode")
		}
	})

	t.Run("should report duplicates across manifest and container", func(t *testing.T) {
		manifest, _ := resources.ParseManifest([]byte(manifestYAML))
		r := resources.NewResources()
		r.RegisterElement(element(t, "NameTag"))
		err := manifest.Register(r)
		if !errors.Is(err, resources.ErrDuplicateElement) {
			t.Errorf("Expected ErrDuplicateElement, got %v", err)
		}
	})
}
