package schema_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/aretw0/arbor/pkg/schema"
)

func op(kind domain.OpKind) domain.Op { return domain.Op{Kind: kind} }

func text(s string) domain.Op { return domain.Op{Kind: domain.OpText, Text: s} }

func group(desc string) domain.Op { return domain.Op{Kind: domain.OpOpenGroup, Text: desc} }

func renderOps(t *testing.T, f *schema.Form) ([]domain.Op, *domain.Target) {
	t.Helper()
	rec := render.NewRecorder()
	target, err := f.Render(rec)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return rec.Ops(), target
}

func TestForm_SignupScenario(t *testing.T) {
	s := newSignup()
	form := schema.NewForm(s.root)

	// Pass 1: only the name is exposed.
	ops, target := renderOps(t, form)
	want := []domain.Op{
		group("Sign up"), op(domain.OpOpenList),
		op(domain.OpOpenItem), {Kind: domain.OpEntry, Field: "name"}, op(domain.OpCloseItem),
		op(domain.OpCloseList), op(domain.OpCloseGroup),
	}
	if !reflect.DeepEqual(ops, want) {
		t.Fatalf("pass 1 ops =\n%+v\nwant\n%+v", ops, want)
	}
	if target == nil || target.Field != "name" || target.Widget != domain.OpEntry {
		t.Fatalf("pass 1 target = %+v, want name entry", target)
	}
	if err := form.Apply("name", "Alice"); err != nil {
		t.Fatalf("Apply(name) error = %v", err)
	}

	// Pass 2: name is shown, gender is asked.
	ops, target = renderOps(t, form)
	options := []domain.Option{{Code: "M", Label: "Male"}, {Code: "F", Label: "Female"}}
	want = []domain.Op{
		group("Sign up"), op(domain.OpOpenList),
		op(domain.OpOpenItem), text("Alice"), op(domain.OpCloseItem),
		op(domain.OpOpenItem), {Kind: domain.OpChoice, Field: "gender", Options: options}, op(domain.OpCloseItem),
		op(domain.OpCloseList), op(domain.OpCloseGroup),
	}
	if !reflect.DeepEqual(ops, want) {
		t.Fatalf("pass 2 ops =\n%+v\nwant\n%+v", ops, want)
	}
	if target == nil || target.Field != "gender" || !reflect.DeepEqual(target.Options, options) {
		t.Fatalf("pass 2 target = %+v", target)
	}
	if err := form.Apply("gender", "F"); err != nil {
		t.Fatalf("Apply(gender) error = %v", err)
	}
	if v := s.kind.Variant(); v == nil || v.Name() != "B" {
		t.Fatalf("variant after Apply = %v, want B", v)
	}

	// Pass 3: descends into the female variant.
	ops, target = renderOps(t, form)
	want = []domain.Op{
		group("Sign up"), op(domain.OpOpenList),
		op(domain.OpOpenItem), text("Alice"), op(domain.OpCloseItem),
		op(domain.OpOpenItem), text("Female"), op(domain.OpCloseItem),
		op(domain.OpOpenItem),
		group("Details B"), op(domain.OpOpenList),
		op(domain.OpOpenItem), {Kind: domain.OpChoice, Field: "kind.size", Options: sizeDef.Options()}, op(domain.OpCloseItem),
		op(domain.OpCloseList), op(domain.OpCloseGroup),
		op(domain.OpCloseItem),
		op(domain.OpCloseList), op(domain.OpCloseGroup),
	}
	if !reflect.DeepEqual(ops, want) {
		t.Fatalf("pass 3 ops =\n%+v\nwant\n%+v", ops, want)
	}
	if target == nil || target.Field != "kind.size" {
		t.Fatalf("pass 3 target = %+v, want kind.size", target)
	}
	if v := s.kind.Variant(); v == nil || v.Name() != "B" {
		t.Fatalf("variant = %v, want B", v)
	}
}

func TestForm_RenderIsPure(t *testing.T) {
	s := newSignup()
	form := schema.NewForm(s.root)
	mustRender(t, form)
	if err := form.Apply("name", "Alice"); err != nil {
		t.Fatal(err)
	}
	mustRender(t, form)
	if err := form.Apply("gender", "M"); err != nil {
		t.Fatal(err)
	}

	ops1, target1 := renderOps(t, form)
	ops2, target2 := renderOps(t, form)
	if !reflect.DeepEqual(ops1, ops2) {
		t.Errorf("repeated passes differ:\n%+v\n%+v", ops1, ops2)
	}
	if !reflect.DeepEqual(target1, target2) {
		t.Errorf("repeated targets differ: %+v vs %+v", target1, target2)
	}
}

func mustRender(t *testing.T, f *schema.Form) *domain.Target {
	t.Helper()
	target, err := f.Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return target
}

// answer picks a valid value for any target.
func answer(target *domain.Target) string {
	if target.Widget == domain.OpChoice {
		return target.Options[len(target.Options)-1].Code
	}
	return "value"
}

func TestForm_Liveness(t *testing.T) {
	for _, gender := range []string{"M", "F"} {
		s := newSignup()
		form := schema.NewForm(s.root)

		var asked []string
		for i := 0; i < 20; i++ {
			target := mustRender(t, form)
			if target == nil {
				break
			}
			asked = append(asked, target.Field)
			value := answer(target)
			if target.Field == "gender" {
				value = gender
			}
			if err := form.Apply(target.Field, value); err != nil {
				t.Fatalf("Apply(%s) error = %v", target.Field, err)
			}
		}

		if !form.Complete() {
			t.Fatalf("gender %s: form never completed, asked %v", gender, asked)
		}
		want := []string{"name", "gender", "kind.size"}
		if gender == "F" {
			want = append(want, "kind.fit")
		}
		if !reflect.DeepEqual(asked, want) {
			t.Errorf("gender %s: asked %v, want %v", gender, asked, want)
		}
	}
}

func TestForm_ApplyStaleTarget(t *testing.T) {
	s := newSignup()
	form := schema.NewForm(s.root)
	var stale *domain.StaleTargetError

	// Nothing rendered yet.
	if err := form.Apply("name", "Alice"); !errors.As(err, &stale) {
		t.Fatalf("Apply before Render error = %v, want StaleTargetError", err)
	}

	mustRender(t, form)
	before := form.Values()
	if err := form.Apply("gender", "F"); !errors.As(err, &stale) {
		t.Fatalf("Apply(gender) error = %v, want StaleTargetError", err)
	}
	if stale.Pending != "name" || stale.Field != "gender" {
		t.Errorf("StaleTargetError = %+v", stale)
	}
	if s.gender.IsSet() || !reflect.DeepEqual(before, form.Values()) {
		t.Error("stale apply changed the record")
	}

	if err := form.Apply("name", "Alice"); err != nil {
		t.Fatal(err)
	}
	// The same answer cannot be replayed before the next pass.
	if err := form.Apply("name", "Mallory"); !errors.As(err, &stale) {
		t.Fatalf("replayed Apply error = %v, want StaleTargetError", err)
	}
	if v, _ := s.name.Value(); v != "Alice" {
		t.Errorf("name = %q, want Alice", v)
	}
}

func TestForm_ApplyDomainErrorKeepsTarget(t *testing.T) {
	s := newSignup()
	form := schema.NewForm(s.root)
	mustRender(t, form)
	_ = form.Apply("name", "Alice")
	mustRender(t, form)

	var de *domain.DomainError
	if err := form.Apply("gender", "X"); !errors.As(err, &de) {
		t.Fatalf("Apply(gender, X) error = %v, want DomainError", err)
	}
	if p := form.Pending(); p == nil || p.Field != "gender" {
		t.Fatalf("pending after rejection = %+v, want gender", p)
	}
	if err := form.Apply("gender", "M"); err != nil {
		t.Fatalf("corrected Apply error = %v", err)
	}
}

func TestForm_ValuesLoadRoundTrip(t *testing.T) {
	s := newSignup()
	form := schema.NewForm(s.root)
	for _, step := range [][2]string{{"name", "Alice"}, {"gender", "F"}, {"kind.size", "L"}} {
		mustRender(t, form)
		if err := form.Apply(step[0], step[1]); err != nil {
			t.Fatalf("Apply(%s) error = %v", step[0], err)
		}
	}
	target := mustRender(t, form)

	values := form.Values()
	want := map[string]string{"name": "Alice", "gender": "F", "kind.size": "L"}
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("Values() = %v, want %v", values, want)
	}

	restored := schema.NewForm(newSignup().root)
	if err := restored.Load(values); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(restored.Values(), values) {
		t.Errorf("restored Values() = %v", restored.Values())
	}
	if p := restored.Pending(); p == nil || p.Field != target.Field {
		t.Errorf("restored pending = %+v, want %s", p, target.Field)
	}
	if err := restored.Apply("kind.fit", "S"); err != nil {
		t.Errorf("Apply after Load error = %v", err)
	}
}

func TestForm_LoadRejectsUnknownCode(t *testing.T) {
	form := schema.NewForm(newSignup().root)
	err := form.Load(map[string]string{"gender": "Z"})
	var de *domain.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("Load() error = %v, want DomainError", err)
	}
}
