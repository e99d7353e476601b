package schema_test

import (
	"errors"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/aretw0/arbor/pkg/schema"
)

func newPhones(min, max int) (*schema.Struct, *schema.Slot) {
	phones := schema.Repeat("phones", min, max, func() schema.Field { return schema.NewText() })
	root := schema.NewStruct("Contact", "Contact",
		schema.One("name", schema.NewText()),
		phones,
	)
	return root, phones
}

func TestSlot_Repeat(t *testing.T) {
	_, phones := newPhones(1, 3)
	if phones.Scalar() {
		t.Fatal("repeated slot reported scalar")
	}
	if phones.Len() != 1 || phones.At(0).ID() != "phones[0]" {
		t.Fatalf("Len() = %d, first ID = %q", phones.Len(), phones.At(0).ID())
	}
	if phones.Field() != nil {
		t.Error("Field() of a repeated slot should be nil")
	}

	for i := 1; i < 3; i++ {
		f, err := phones.Append()
		if err != nil {
			t.Fatalf("Append() #%d error = %v", i, err)
		}
		if want := "phones[" + string(rune('0'+i)) + "]"; f.ID() != want {
			t.Errorf("Append() ID = %q, want %q", f.ID(), want)
		}
	}
	if _, err := phones.Append(); !errors.Is(err, domain.ErrSlotFull) {
		t.Fatalf("Append() beyond max error = %v, want ErrSlotFull", err)
	}
	if phones.Len() != 3 {
		t.Errorf("Len() = %d, want 3", phones.Len())
	}
}

func TestSlot_AppendScalar(t *testing.T) {
	s := schema.One("name", schema.NewText())
	if _, err := s.Append(); err == nil {
		t.Fatal("Append() on a scalar slot should fail")
	}
}

func TestSlot_RepeatedIsDisplayOnly(t *testing.T) {
	root, phones := newPhones(0, schema.Unbounded)
	_, _ = phones.Append()
	second, _ := phones.Append()
	_ = second.(*schema.Text).SetByCode("555-0101")

	form := schema.NewForm(root)
	target, err := form.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if target == nil || target.Field != "name" {
		t.Fatalf("target = %+v, want name", target)
	}
	_ = form.Apply("name", "Alice")

	rec := render.NewRecorder()
	target, err = form.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if target != nil {
		t.Fatalf("unset repeated element became the target: %+v", target)
	}
	var texts []string
	for _, op := range rec.Ops() {
		if op.Kind == domain.OpEntry || op.Kind == domain.OpChoice {
			t.Errorf("repeated slot emitted widget %+v", op)
		}
		if op.Kind == domain.OpText {
			texts = append(texts, op.Text)
		}
	}
	if len(texts) != 2 || texts[1] != "555-0101" {
		t.Errorf("texts = %v", texts)
	}
}

func TestSlot_LoadGrowsCollection(t *testing.T) {
	root, phones := newPhones(0, 5)
	form := schema.NewForm(root)
	err := form.Load(map[string]string{"name": "Alice", "phones[2]": "555-0102", "phones[0]": "555-0100"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if phones.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", phones.Len())
	}
	if phones.At(1).(*schema.Text).IsSet() {
		t.Error("gap element should stay unset")
	}
	if v, _ := phones.At(2).(*schema.Text).Value(); v != "555-0102" {
		t.Errorf("phones[2] = %q", v)
	}
}

func TestSlot_LoadBeyondMax(t *testing.T) {
	root, _ := newPhones(0, 2)
	err := schema.NewForm(root).Load(map[string]string{"phones[4]": "x"})
	if !errors.Is(err, domain.ErrSlotFull) {
		t.Fatalf("Load() error = %v, want ErrSlotFull", err)
	}
}
