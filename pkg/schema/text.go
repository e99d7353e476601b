package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/arbor/pkg/domain"
)

// Text is a free-form scalar field.
type Text struct {
	id     string
	value  string
	set    bool
	maxLen int
}

// NewText creates an unset text field.
func NewText() *Text { return &Text{} }

// WithMaxLength limits the value to n characters. Zero means unlimited.
func (t *Text) WithMaxLength(n int) *Text {
	t.maxLen = n
	return t
}

func (t *Text) ID() string { return t.id }

func (t *Text) IsSet() bool { return t.set }

// MaxLength returns the character limit, zero when unlimited.
func (t *Text) MaxLength() int { return t.maxLen }

// Value returns the current text.
func (t *Text) Value() (string, error) {
	if !t.set {
		return "", &domain.NotSetError{Field: t.id}
	}
	return t.value, nil
}

// SetByCode stores the trimmed input. Blank or oversized input is rejected.
func (t *Text) SetByCode(raw string) error {
	v := strings.TrimSpace(raw)
	if v == "" {
		return &domain.DomainError{Domain: "Text", Code: raw, Reason: "empty value"}
	}
	if t.maxLen > 0 && utf8.RuneCountInString(v) > t.maxLen {
		return &domain.DomainError{Domain: "Text", Code: raw, Reason: fmt.Sprintf("longer than %d characters", t.maxLen)}
	}
	t.value = v
	t.set = true
	return nil
}

// Reset clears the value.
func (t *Text) Reset() {
	t.value = ""
	t.set = false
}

func (t *Text) Render(p *Pass) error {
	if t.set {
		p.sink.Text(t.value)
		return nil
	}
	if p.Displaying() {
		return nil
	}
	p.sink.Entry(t.id)
	p.expose(domain.Target{Field: t.id, Widget: domain.OpEntry}, t)
	return nil
}

func (t *Text) bind(id string) { t.id = id }

func (t *Text) sync() error { return nil }

func (t *Text) dump(values map[string]string) {
	if t.set {
		values[t.id] = t.value
	}
}

func (t *Text) load(values map[string]string) error {
	v, ok := values[t.id]
	if !ok {
		return nil
	}
	if err := t.SetByCode(v); err != nil {
		return fmt.Errorf("restore %s: %w", t.id, err)
	}
	return nil
}

func (t *Text) validate(path string) []error {
	if t.maxLen < 0 {
		return []error{invalid(path, "negative maximum length")}
	}
	return nil
}
