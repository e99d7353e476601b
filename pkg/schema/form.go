package schema

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Form drives one record through traversal passes and input application.
// It is not safe for concurrent use; hosts serialise access per record.
type Form struct {
	root     *Struct
	pending  *pending
	rendered bool
}

// NewForm wraps a record.
func NewForm(root *Struct) *Form {
	return &Form{root: root}
}

// Root returns the record.
func (f *Form) Root() *Struct { return f.root }

// Render runs a traversal pass into sink and returns the pending target, nil when
// every reachable scalar field is set. A nil sink discards the output.
func (f *Form) Render(sink Sink) (*domain.Target, error) {
	p := newPass(sink)
	f.pending = nil
	if err := f.root.Render(p); err != nil {
		f.rendered = false
		return nil, err
	}
	f.rendered = true
	f.pending = p.target
	return f.Pending(), nil
}

// Pending returns the target exposed by the last pass, if it is still awaiting input.
func (f *Form) Pending() *domain.Target {
	if f.pending == nil {
		return nil
	}
	t := f.pending.target
	return &t
}

// Complete reports whether the last pass found nothing left to ask.
func (f *Form) Complete() bool {
	return f.rendered && f.pending == nil
}

// Apply sets the pending field from raw. Any other field is rejected with a
// StaleTargetError and a value outside the field's domain with a DomainError; in both
// cases the record is unchanged. A target accepts one value per pass.
//
// Unions keyed on the applied field are synchronised before Apply returns, so a
// changed selector already holds a fresh variant.
func (f *Form) Apply(field, raw string) error {
	if f.pending == nil {
		return &domain.StaleTargetError{Field: field}
	}
	if f.pending.target.Field != field {
		return &domain.StaleTargetError{Pending: f.pending.target.Field, Field: field}
	}
	if err := f.pending.in.SetByCode(raw); err != nil {
		return err
	}
	f.pending = nil
	f.rendered = false
	return f.root.sync()
}

// Values returns the codes of every set input field keyed by field ID.
// Variants discarded by a selector change are not included.
func (f *Form) Values() map[string]string {
	values := make(map[string]string)
	f.root.dump(values)
	return values
}

// Load restores values captured by Values into a fresh record and runs a silent pass
// so the form is ready for Apply.
func (f *Form) Load(values map[string]string) error {
	if err := f.root.load(values); err != nil {
		return err
	}
	_, err := f.Render(Discard)
	return err
}
