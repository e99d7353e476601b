package schema

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Union is a choice among variant structures keyed by a selector domain held in a
// sibling field. The union does not own the selector; it owns at most one
// materialised variant.
type Union[E comparable] struct {
	name     string
	id       string
	selector *Domain[E]
	variants map[E]func() *Struct

	current E
	payload *Struct
}

// NewUnion declares a union over the values of selector.
func NewUnion[E comparable](name string, selector *Domain[E], variants map[E]func() *Struct) *Union[E] {
	return &Union[E]{name: name, selector: selector, variants: variants}
}

func (u *Union[E]) ID() string { return u.id }

func (u *Union[E]) Name() string { return u.name }

// Selector returns the sibling field the union dispatches on.
func (u *Union[E]) Selector() *Domain[E] { return u.selector }

// Variant returns the materialised variant, nil while the union is empty.
func (u *Union[E]) Variant() *Struct { return u.payload }

// Selected returns the selector value the current variant was built for.
func (u *Union[E]) Selected() (E, bool) {
	if u.payload == nil {
		var zero E
		return zero, false
	}
	return u.current, true
}

// materialise makes the payload match the selector: empty while it is unset, a fresh
// variant whenever its value differs from the materialised one.
func (u *Union[E]) materialise() error {
	v, err := u.selector.Value()
	if err != nil {
		u.payload = nil
		return nil
	}
	if u.payload != nil && u.current == v {
		return nil
	}

	u.payload = nil
	factory := u.variants[v]
	if factory == nil {
		code, _ := u.selector.Code()
		return &domain.UnionDispatchError{Union: u.name, Code: code}
	}
	variant := factory()
	if variant == nil {
		code, _ := u.selector.Code()
		return &domain.UnionDispatchError{Union: u.name, Code: code}
	}
	variant.bind(u.id)
	u.payload = variant
	u.current = v
	return nil
}

// Render asks for the selector while it is unset; otherwise it delegates to the
// variant selected by it.
func (u *Union[E]) Render(p *Pass) error {
	if !u.selector.IsSet() {
		u.payload = nil
		return u.selector.Render(p)
	}
	if err := u.materialise(); err != nil {
		return err
	}
	return u.payload.Render(p)
}

func (u *Union[E]) bind(id string) {
	u.id = id
	if u.payload != nil {
		u.payload.bind(id)
	}
}

func (u *Union[E]) sync() error {
	if err := u.materialise(); err != nil {
		return err
	}
	if u.payload == nil {
		return nil
	}
	return u.payload.sync()
}

func (u *Union[E]) dump(values map[string]string) {
	if u.payload == nil {
		return
	}
	if v, err := u.selector.Value(); err != nil || v != u.current {
		return
	}
	u.payload.dump(values)
}

func (u *Union[E]) load(values map[string]string) error {
	// The selector may be declared after the union.
	if err := u.selector.load(values); err != nil {
		return err
	}
	if err := u.materialise(); err != nil {
		return err
	}
	if u.payload == nil {
		return nil
	}
	return u.payload.load(values)
}

func (u *Union[E]) validate(path string) []error {
	if u.selector == nil || u.selector.def == nil {
		return []error{invalid(path, "union %s has no selector", u.name)}
	}

	var errs []error
	if u.selector.id == "" {
		errs = append(errs, invalid(path, "selector of union %s is not part of the record", u.name))
	}
	def := u.selector.def
	for v := range u.variants {
		if _, ok := def.byValue[v]; !ok {
			errs = append(errs, invalid(path, "variant %v is not a value of domain %s", v, def.name))
		}
	}
	for _, e := range def.entries {
		factory, ok := u.variants[e.Value]
		if !ok || factory == nil {
			errs = append(errs, invalid(path, "no variant for selector code %q", e.Code))
			continue
		}
		probe := factory()
		if probe == nil {
			errs = append(errs, invalid(path, "variant %q factory returned nil", e.Code))
			continue
		}
		probe.bind(path)
		for _, err := range probe.validate(path) {
			errs = append(errs, fmt.Errorf("variant %q: %w", e.Code, err))
		}
	}
	return errs
}
