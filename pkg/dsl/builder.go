package dsl

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder assembles a Definition in code.
type Builder struct {
	def Definition
}

// New starts a definition.
func New(name, description string) *Builder {
	return &Builder{def: Definition{Name: name, Description: description}}
}

// Domain declares a value domain with options in display order.
func (b *Builder) Domain(name string, values ...domain.Option) *Builder {
	b.def.Domains = append(b.def.Domains, DomainSpec{Name: name, Values: values})
	return b
}

// Fields appends top-level fields.
func (b *Builder) Fields(fn func(f *FieldList)) *Builder {
	l := &FieldList{}
	fn(l)
	b.def.Fields = append(b.def.Fields, l.defs...)
	return b
}

// Definition returns the definition built so far.
func (b *Builder) Definition() *Definition {
	d := b.def
	return &d
}

// Compile is shorthand for Definition().Compile().
func (b *Builder) Compile() (Factory, error) {
	return b.Definition().Compile()
}

// FieldList collects the fields of one structure.
type FieldList struct {
	defs []*FieldDef
}

func (l *FieldList) add(fd *FieldDef) *FieldBuilder {
	l.defs = append(l.defs, fd)
	return &FieldBuilder{def: fd}
}

// Text adds a free-text field.
func (l *FieldList) Text(name string) *FieldBuilder {
	return l.add(&FieldDef{Name: name, Type: TypeText})
}

// Choice adds a field taking one value of the named domain.
func (l *FieldList) Choice(name, domainName string) *FieldBuilder {
	return l.add(&FieldDef{Name: name, Type: TypeDomain, Domain: domainName})
}

// Literal adds a field fixed to one code of the named domain.
func (l *FieldList) Literal(name, domainName, code string) *FieldBuilder {
	return l.add(&FieldDef{Name: name, Type: TypeDomain, Domain: domainName, Value: code})
}

// Group adds a nested structure.
func (l *FieldList) Group(name, description string, fn func(f *FieldList)) *FieldBuilder {
	nested := &FieldList{}
	fn(nested)
	return l.add(&FieldDef{Name: name, Type: TypeStruct, Description: description, Fields: nested.defs})
}

// Union adds a union dispatching on the sibling field named selector.
func (l *FieldList) Union(name, selector string) *UnionBuilder {
	fd := &FieldDef{Name: name, Type: TypeUnion, Selector: selector, Variants: make(map[string]*Variant)}
	l.defs = append(l.defs, fd)
	return &UnionBuilder{def: fd}
}

// FieldBuilder tunes the field just added.
type FieldBuilder struct {
	def *FieldDef
}

// MaxLength limits a text field.
func (f *FieldBuilder) MaxLength(n int) *FieldBuilder {
	f.def.MaxLength = n
	return f
}

// Repeat turns the field into a collection. Use schema.Unbounded for max to leave it open.
func (f *FieldBuilder) Repeat(min, max int) *FieldBuilder {
	f.def.Min, f.def.Max = min, max
	return f
}

// UnionBuilder declares the variants of a union.
type UnionBuilder struct {
	def *FieldDef
}

// Variant maps a selector code to a structure.
func (u *UnionBuilder) Variant(code, description string, fn func(f *FieldList)) *UnionBuilder {
	l := &FieldList{}
	fn(l)
	u.def.Variants[code] = &Variant{Description: description, Fields: l.defs}
	return u
}
