package schema

import (
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Field is the capability shared by every entity the traversal engine can walk:
// domains, text entries, structures and unions. The set of kinds is closed.
type Field interface {
	// ID returns the dot path of the field from the record root.
	ID() string
	// Render writes the field to the pass sink. An unset scalar field registers
	// itself as the pending target.
	Render(p *Pass) error

	bind(id string)
	dump(values map[string]string)
	load(values map[string]string) error
	// sync builds the variant of every union whose selector is set.
	sync() error
	validate(path string) []error
}

// Sink receives the display primitives of a traversal pass.
type Sink interface {
	OpenGroup(description string)
	CloseGroup()
	OpenList()
	CloseList()
	OpenItem()
	CloseItem()
	Text(text string)
	Choice(field string, options []domain.Option)
	Entry(field string)
}

// Discard is a Sink that drops every primitive.
var Discard Sink = discard{}

type discard struct{}

func (discard) OpenGroup(string) {}

func (discard) CloseGroup() {}

func (discard) OpenList() {}

func (discard) CloseList() {}

func (discard) OpenItem() {}

func (discard) CloseItem() {}

func (discard) Text(string) {}

func (discard) Choice(string, []domain.Option) {}

func (discard) Entry(string) {}

// setter is implemented by scalar leaves that accept submitted codes.
type setter interface {
	SetByCode(code string) error
}

type pending struct {
	target domain.Target
	in     setter
}

// Pass is the transient state of one traversal.
// At most one target is registered; once it is, enclosing structures stop visiting slots.
type Pass struct {
	sink    Sink
	target  *pending
	display int
}

func newPass(sink Sink) *Pass {
	if sink == nil {
		sink = Discard
	}
	return &Pass{sink: sink}
}

// Sink returns the output of the pass.
func (p *Pass) Sink() Sink { return p.sink }

// Halted reports whether a pending target has been registered.
func (p *Pass) Halted() bool { return p.target != nil }

// Displaying reports whether the pass is rendering repeated elements, where unset
// fields are shown but never exposed.
func (p *Pass) Displaying() bool { return p.display > 0 }

func (p *Pass) expose(t domain.Target, in setter) {
	if p.target != nil || p.display > 0 {
		return
	}
	p.target = &pending{target: t, in: in}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, ".[]")
}
