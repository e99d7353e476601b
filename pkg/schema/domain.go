package schema

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Entry maps one enumerated value to its external code and label.
type Entry[E comparable] struct {
	Value E
	Code  string
	Label string
}

// DomainDef is the immutable definition of a value domain.
// Fields are created from it with New (unset) or Literal (pre-set).
type DomainDef[E comparable] struct {
	name    string
	entries []Entry[E]
	byCode  map[string]int
	byValue map[E]int
}

// NewDomainDef declares a value domain. Codes and values must be unique and codes non-empty.
func NewDomainDef[E comparable](name string, entries ...Entry[E]) (*DomainDef[E], error) {
	if name == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("domain %s: at least one entry is required", name)
	}

	d := &DomainDef[E]{
		name:    name,
		entries: make([]Entry[E], len(entries)),
		byCode:  make(map[string]int, len(entries)),
		byValue: make(map[E]int, len(entries)),
	}
	copy(d.entries, entries)

	for i, e := range d.entries {
		if e.Code == "" {
			return nil, fmt.Errorf("domain %s: entry %d has an empty code", name, i)
		}
		if _, dup := d.byCode[e.Code]; dup {
			return nil, fmt.Errorf("domain %s: duplicate code %q", name, e.Code)
		}
		if _, dup := d.byValue[e.Value]; dup {
			return nil, fmt.Errorf("domain %s: value of code %q is already declared", name, e.Code)
		}
		d.byCode[e.Code] = i
		d.byValue[e.Value] = i
	}
	return d, nil
}

// MustDomainDef is like NewDomainDef but panics on an invalid declaration.
func MustDomainDef[E comparable](name string, entries ...Entry[E]) *DomainDef[E] {
	d, err := NewDomainDef(name, entries...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the domain name.
func (d *DomainDef[E]) Name() string { return d.name }

// Entries returns the declared entries in order.
func (d *DomainDef[E]) Entries() []Entry[E] {
	return append([]Entry[E](nil), d.entries...)
}

// Options returns the (code, label) pairs in declared order.
func (d *DomainDef[E]) Options() []domain.Option {
	opts := make([]domain.Option, len(d.entries))
	for i, e := range d.entries {
		opts[i] = domain.Option{Code: e.Code, Label: e.Label}
	}
	return opts
}

// Lookup converts an external code to its value.
func (d *DomainDef[E]) Lookup(code string) (E, error) {
	i, ok := d.byCode[code]
	if !ok {
		var zero E
		return zero, &domain.DomainError{Domain: d.name, Code: code}
	}
	return d.entries[i].Value, nil
}

// New creates an unset input field of this domain.
func (d *DomainDef[E]) New() *Domain[E] {
	return &Domain[E]{def: d, idx: -1}
}

// Literal creates a field pre-set to v. It panics if v is not declared.
func (d *DomainDef[E]) Literal(v E) *Domain[E] {
	i, ok := d.byValue[v]
	if !ok {
		panic(fmt.Sprintf("domain %s: literal value %v is not declared", d.name, v))
	}
	return &Domain[E]{def: d, idx: i, literal: true}
}

// Domain is a field holding at most one value of a DomainDef.
type Domain[E comparable] struct {
	def     *DomainDef[E]
	id      string
	idx     int
	literal bool
}

func (f *Domain[E]) ID() string { return f.id }

// Def returns the definition the field was created from.
func (f *Domain[E]) Def() *DomainDef[E] { return f.def }

func (f *Domain[E]) IsSet() bool { return f.idx >= 0 }

// Value returns the current value.
func (f *Domain[E]) Value() (E, error) {
	if f.idx < 0 {
		var zero E
		return zero, &domain.NotSetError{Field: f.id}
	}
	return f.def.entries[f.idx].Value, nil
}

// Code returns the external code of the current value.
func (f *Domain[E]) Code() (string, error) {
	if f.idx < 0 {
		return "", &domain.NotSetError{Field: f.id}
	}
	return f.def.entries[f.idx].Code, nil
}

// Label returns the human-readable text of the current value.
func (f *Domain[E]) Label() (string, error) {
	if f.idx < 0 {
		return "", &domain.NotSetError{Field: f.id}
	}
	return f.def.entries[f.idx].Label, nil
}

// SetByCode sets the value from its external code.
// On an unknown code the field is left unchanged.
func (f *Domain[E]) SetByCode(code string) error {
	i, ok := f.def.byCode[code]
	if !ok {
		return &domain.DomainError{Domain: f.def.name, Code: code}
	}
	f.idx = i
	return nil
}

// Set sets the value directly.
func (f *Domain[E]) Set(v E) error {
	i, ok := f.def.byValue[v]
	if !ok {
		return &domain.DomainError{Domain: f.def.name, Code: fmt.Sprint(v)}
	}
	f.idx = i
	return nil
}

// Reset clears the value. Literals cannot be reset.
func (f *Domain[E]) Reset() {
	if !f.literal {
		f.idx = -1
	}
}

// Render shows the label when set; otherwise it emits a choice widget and becomes the
// pending target.
func (f *Domain[E]) Render(p *Pass) error {
	if f.idx >= 0 {
		p.sink.Text(f.def.entries[f.idx].Label)
		return nil
	}
	if p.Displaying() {
		return nil
	}
	opts := f.def.Options()
	p.sink.Choice(f.id, opts)
	p.expose(domain.Target{Field: f.id, Widget: domain.OpChoice, Options: opts}, f)
	return nil
}

func (f *Domain[E]) bind(id string) { f.id = id }

func (f *Domain[E]) sync() error { return nil }

func (f *Domain[E]) dump(values map[string]string) {
	if f.literal || f.idx < 0 {
		return
	}
	values[f.id] = f.def.entries[f.idx].Code
}

func (f *Domain[E]) load(values map[string]string) error {
	if f.literal {
		return nil
	}
	code, ok := values[f.id]
	if !ok {
		return nil
	}
	if err := f.SetByCode(code); err != nil {
		return fmt.Errorf("restore %s: %w", f.id, err)
	}
	return nil
}

func (f *Domain[E]) validate(path string) []error {
	if f.def == nil {
		return []error{invalid(path, "domain field has no definition")}
	}
	return nil
}
