package schema_test

import (
	"errors"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/aretw0/arbor/pkg/schema"
)

func TestDomain_SetByCode(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
		want    Gender
	}{
		{"M", false, Male},
		{"F", false, Female},
		{"m", true, 0},
		{"", true, 0},
		{"Male", true, 0},
	}

	for _, tt := range tests {
		f := genderDef.New()
		err := f.SetByCode(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetByCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			var de *domain.DomainError
			if !errors.As(err, &de) {
				t.Errorf("SetByCode(%q) error type = %T, want *DomainError", tt.code, err)
			} else if de.Domain != "Gender" || de.Code != tt.code {
				t.Errorf("DomainError = %+v", de)
			}
			if f.IsSet() {
				t.Errorf("SetByCode(%q) left the field set after failure", tt.code)
			}
			continue
		}
		if v, _ := f.Value(); v != tt.want {
			t.Errorf("Value() = %v, want %v", v, tt.want)
		}
	}
}

func TestDomain_FailedSetKeepsValue(t *testing.T) {
	f := genderDef.New()
	if err := f.SetByCode("F"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetByCode("X"); err == nil {
		t.Fatal("expected error for unknown code")
	}
	if code, _ := f.Code(); code != "F" {
		t.Errorf("Code() = %q after failed set, want %q", code, "F")
	}
	if label, _ := f.Label(); label != "Female" {
		t.Errorf("Label() = %q, want %q", label, "Female")
	}
}

func TestDomain_NotSet(t *testing.T) {
	f := genderDef.New()
	var ns *domain.NotSetError

	if _, err := f.Code(); !errors.As(err, &ns) {
		t.Errorf("Code() error = %v, want NotSetError", err)
	}
	if _, err := f.Label(); !errors.As(err, &ns) {
		t.Errorf("Label() error = %v, want NotSetError", err)
	}
	if _, err := f.Value(); !errors.As(err, &ns) {
		t.Errorf("Value() error = %v, want NotSetError", err)
	}
}

func TestDomain_SetAndReset(t *testing.T) {
	f := genderDef.New()
	if err := f.Set(Female); err != nil {
		t.Fatal(err)
	}
	if err := f.Set(Gender(7)); err == nil {
		t.Error("Set of an undeclared value should fail")
	}
	if code, _ := f.Code(); code != "F" {
		t.Errorf("Code() = %q, want F", code)
	}
	f.Reset()
	if f.IsSet() {
		t.Error("Reset() should clear the value")
	}
}

func TestDomainDef_Lookup(t *testing.T) {
	v, err := genderDef.Lookup("F")
	if err != nil || v != Female {
		t.Errorf("Lookup(F) = %v, %v", v, err)
	}
	if _, err := genderDef.Lookup("Q"); err == nil {
		t.Error("Lookup(Q) should fail")
	}
}

func TestNewDomainDef_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []schema.Entry[int]
	}{
		{"no entries", nil},
		{"empty code", []schema.Entry[int]{{Value: 1, Code: "", Label: "One"}}},
		{"duplicate code", []schema.Entry[int]{{Value: 1, Code: "a", Label: "A"}, {Value: 2, Code: "a", Label: "B"}}},
		{"duplicate value", []schema.Entry[int]{{Value: 1, Code: "a", Label: "A"}, {Value: 1, Code: "b", Label: "B"}}},
	}

	for _, tt := range tests {
		if _, err := schema.NewDomainDef("D", tt.entries...); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if _, err := schema.NewDomainDef[int]("", schema.Entry[int]{Value: 1, Code: "a"}); err == nil {
		t.Error("empty name: expected error")
	}
}

func TestDomainDef_OptionsOrder(t *testing.T) {
	opts := sizeDef.Options()
	want := []string{"S", "M", "L"}
	if len(opts) != len(want) {
		t.Fatalf("Options() len = %d, want %d", len(opts), len(want))
	}
	for i, code := range want {
		if opts[i].Code != code {
			t.Errorf("Options()[%d].Code = %q, want %q", i, opts[i].Code, code)
		}
	}
}

func TestDomain_Literal(t *testing.T) {
	lit := genderDef.Literal(Female)
	lit.Reset()
	if !lit.IsSet() {
		t.Fatal("literal should stay set after Reset")
	}

	rec := render.NewRecorder()
	form := schema.NewForm(schema.NewStruct("L", "Literal", schema.One("g", lit)))
	target, err := form.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if target != nil {
		t.Errorf("literal exposed target %+v", target)
	}
	found := false
	for _, op := range rec.Ops() {
		if op.Kind == domain.OpText && op.Text == "Female" {
			found = true
		}
	}
	if !found {
		t.Errorf("literal label not rendered: %+v", rec.Ops())
	}
	if vals := form.Values(); len(vals) != 0 {
		t.Errorf("literals should not be captured, got %v", vals)
	}
}

func TestDomain_LiteralPanicsOnUndeclared(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Literal of undeclared value should panic")
		}
	}()
	genderDef.Literal(Gender(42))
}

func TestText_SetByCode(t *testing.T) {
	txt := schema.NewText().WithMaxLength(5)

	tests := []struct {
		raw     string
		wantErr bool
		want    string
	}{
		{"   ", true, ""},
		{"", true, ""},
		{"toolong", true, ""},
		{"  Ann ", false, "Ann"},
		{"Zoë", false, "Zoë"},
	}
	for _, tt := range tests {
		err := txt.SetByCode(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetByCode(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			if v, _ := txt.Value(); v != tt.want {
				t.Errorf("Value() = %q, want %q", v, tt.want)
			}
		}
	}

	if v, _ := txt.Value(); v != "Zoë" {
		t.Errorf("failed sets must not overwrite, got %q", v)
	}
	txt.Reset()
	if _, err := txt.Value(); err == nil {
		t.Error("Value() after Reset should fail")
	}
}
