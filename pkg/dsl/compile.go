package dsl

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/schema"
)

// Factory builds a fresh record with every field unset.
type Factory func() *schema.Struct

// Compile resolves domains and union selectors and validates the resulting record.
// All failures are reported together as a *schema.AggregateError.
func (d *Definition) Compile() (Factory, error) {
	if d == nil {
		return nil, &schema.ValidationError{Reason: "definition is nil"}
	}
	if d.Name == "" {
		return nil, &schema.ValidationError{Reason: "definition has no name"}
	}

	c := &compiler{domains: make(map[string]*schema.DomainDef[string], len(d.Domains))}
	var errs []error
	for _, spec := range d.Domains {
		if _, dup := c.domains[spec.Name]; dup {
			errs = append(errs, fail("", "domain %s is declared twice", spec.Name))
			continue
		}
		entries := make([]schema.Entry[string], len(spec.Values))
		for i, v := range spec.Values {
			entries[i] = schema.Entry[string]{Value: v.Code, Code: v.Code, Label: v.Label}
		}
		def, err := schema.NewDomainDef(spec.Name, entries...)
		if err != nil {
			errs = append(errs, fail("", "%v", err))
			continue
		}
		c.domains[spec.Name] = def
	}
	if len(errs) > 0 {
		return nil, &schema.AggregateError{Errors: errs}
	}

	probe, errs := c.build(d.Name, d.Description, d.Fields, "", true)
	if len(errs) > 0 {
		return nil, &schema.AggregateError{Errors: errs}
	}
	if err := schema.Validate(probe); err != nil {
		return nil, err
	}

	name, description, fields := d.Name, d.Description, d.Fields
	return func() *schema.Struct {
		s, _ := c.build(name, description, fields, "", false)
		return s
	}, nil
}

type compiler struct {
	domains map[string]*schema.DomainDef[string]
}

// build assembles a structure. With check set, union variants and repeated elements
// are built once so their errors surface at compile time.
func (c *compiler) build(name, description string, defs []*FieldDef, path string, check bool) (*schema.Struct, []error) {
	var errs []error
	slots := make([]*schema.Slot, len(defs))
	selectors := make(map[string]*schema.Domain[string])

	for i, fd := range defs {
		if fd == nil {
			errs = append(errs, fail(path, "field %d is empty", i))
			continue
		}
		if fd.Kind() == TypeUnion {
			continue
		}
		key := join(path, fd.Name)

		if fd.Repeated() {
			if check {
				if _, ferrs := c.field(fd, key+"[]", true); len(ferrs) > 0 {
					errs = append(errs, ferrs...)
					continue
				}
			}
			slots[i] = schema.Repeat(fd.Name, fd.Min, fd.Bound(), func() schema.Field {
				f, _ := c.field(fd, key+"[]", false)
				return f
			})
			continue
		}

		f, ferrs := c.field(fd, key, check)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		if sel, ok := f.(*schema.Domain[string]); ok && fd.Value == "" {
			selectors[fd.Name] = sel
		}
		slots[i] = schema.One(fd.Name, f)
	}

	for i, fd := range defs {
		if fd == nil || fd.Kind() != TypeUnion {
			continue
		}
		key := join(path, fd.Name)
		if fd.Repeated() {
			errs = append(errs, fail(key, "a union cannot be repeated"))
			continue
		}
		sel, ok := selectors[fd.Selector]
		if !ok {
			errs = append(errs, fail(key, "selector %q is not a sibling domain field", fd.Selector))
			continue
		}

		variants := make(map[string]func() *schema.Struct, len(fd.Variants))
		for code, v := range fd.Variants {
			if v == nil {
				continue
			}
			if check {
				if _, verrs := c.build(code, v.Description, v.Fields, key, true); len(verrs) > 0 {
					for _, err := range verrs {
						errs = append(errs, fmt.Errorf("variant %q: %w", code, err))
					}
					continue
				}
			}
			variants[code] = func() *schema.Struct {
				s, _ := c.build(code, v.Description, v.Fields, key, false)
				return s
			}
		}
		slots[i] = schema.One(fd.Name, schema.NewUnion(fd.Name, sel, variants))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return schema.NewStruct(name, description, slots...), nil
}

func (c *compiler) field(fd *FieldDef, key string, check bool) (schema.Field, []error) {
	switch fd.Kind() {
	case TypeText:
		return schema.NewText().WithMaxLength(fd.MaxLength), nil

	case TypeDomain:
		def, ok := c.domains[fd.Domain]
		if !ok {
			return nil, []error{fail(key, "unknown domain %q", fd.Domain)}
		}
		if fd.Value == "" {
			return def.New(), nil
		}
		if _, err := def.Lookup(fd.Value); err != nil {
			return nil, []error{fail(key, "literal %q is not a code of domain %s", fd.Value, fd.Domain)}
		}
		return def.Literal(fd.Value), nil

	case TypeStruct:
		s, errs := c.build(fd.Name, fd.Description, fd.Fields, key, check)
		if len(errs) > 0 {
			return nil, errs
		}
		return s, nil

	case TypeUnion:
		return nil, []error{fail(key, "a union must be declared directly in a structure")}

	default:
		return nil, []error{fail(key, "unknown field type %q", fd.Type)}
	}
}

func fail(key, format string, args ...any) error {
	return &schema.ValidationError{Key: key, Reason: fmt.Sprintf(format, args...)}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
