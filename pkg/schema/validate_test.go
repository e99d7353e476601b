package schema_test

import (
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/schema"
)

func TestValidate_Signup(t *testing.T) {
	if err := schema.Validate(newSignup().root); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := schema.Validate(nil); err == nil {
		t.Fatal("Validate(nil) should fail")
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		build func() *schema.Struct
		want  string
	}{
		{
			name:  "no slots",
			build: func() *schema.Struct { return schema.NewStruct("Empty", "") },
			want:  "has no slots",
		},
		{
			name: "duplicate slot",
			build: func() *schema.Struct {
				return schema.NewStruct("Dup", "",
					schema.One("a", schema.NewText()),
					schema.One("a", schema.NewText()),
				)
			},
			want: "duplicate slot name",
		},
		{
			name: "dotted slot name",
			build: func() *schema.Struct {
				return schema.NewStruct("Dot", "", schema.One("a.b", schema.NewText()))
			},
			want: "invalid slot name",
		},
		{
			name: "repeated max of one",
			build: func() *schema.Struct {
				return schema.NewStruct("R", "", schema.Repeat("r", 0, 1, func() schema.Field { return schema.NewText() }))
			},
			want: "max > 1",
		},
		{
			name: "repeated min above max",
			build: func() *schema.Struct {
				return schema.NewStruct("R", "", schema.Repeat("r", 4, 3, func() schema.Field { return schema.NewText() }))
			},
			want: "outside the bound",
		},
		{
			name: "repeated without factory",
			build: func() *schema.Struct {
				return schema.NewStruct("R", "", schema.Repeat("r", 0, schema.Unbounded, nil))
			},
			want: "no element factory",
		},
		{
			name: "negative text length",
			build: func() *schema.Struct {
				return schema.NewStruct("T", "", schema.One("t", schema.NewText().WithMaxLength(-1)))
			},
			want: "negative maximum length",
		},
		{
			name: "selector outside record",
			build: func() *schema.Struct {
				u := schema.NewUnion("kind", genderDef.New(), map[Gender]func() *schema.Struct{
					Male: newDetailsA, Female: newDetailsB,
				})
				return schema.NewStruct("U", "", schema.One("kind", u))
			},
			want: "not part of the record",
		},
		{
			name: "uncovered selector code",
			build: func() *schema.Struct {
				g := genderDef.New()
				u := schema.NewUnion("kind", g, map[Gender]func() *schema.Struct{Male: newDetailsA})
				return schema.NewStruct("U", "", schema.One("gender", g), schema.One("kind", u))
			},
			want: `no variant for selector code "F"`,
		},
		{
			name: "invalid variant",
			build: func() *schema.Struct {
				g := genderDef.New()
				u := schema.NewUnion("kind", g, map[Gender]func() *schema.Struct{
					Male:   newDetailsA,
					Female: func() *schema.Struct { return schema.NewStruct("B", "") },
				})
				return schema.NewStruct("U", "", schema.One("gender", g), schema.One("kind", u))
			},
			want: `variant "F"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.build())
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidate_Aggregates(t *testing.T) {
	root := schema.NewStruct("Bad", "",
		schema.One("a", schema.NewText()),
		schema.One("a", schema.NewText().WithMaxLength(-1)),
		schema.Repeat("r", 0, 1, nil),
	)
	errs := schema.ValidationErrors(schema.Validate(root))
	if len(errs) < 3 {
		t.Fatalf("ValidationErrors() = %v, want at least 3", errs)
	}
}
