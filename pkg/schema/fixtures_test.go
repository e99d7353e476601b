package schema_test

import (
	"github.com/aretw0/arbor/pkg/schema"
)

type Gender int

const (
	Male Gender = iota
	Female
)

var genderDef = schema.MustDomainDef("Gender",
	schema.Entry[Gender]{Value: Male, Code: "M", Label: "Male"},
	schema.Entry[Gender]{Value: Female, Code: "F", Label: "Female"},
)

var sizeDef = schema.MustDomainDef("Size",
	schema.Entry[string]{Value: "s", Code: "S", Label: "Small"},
	schema.Entry[string]{Value: "m", Code: "M", Label: "Medium"},
	schema.Entry[string]{Value: "l", Code: "L", Label: "Large"},
)

var fitDef = schema.MustDomainDef("Fit",
	schema.Entry[string]{Value: "regular", Code: "R", Label: "Regular"},
	schema.Entry[string]{Value: "slim", Code: "S", Label: "Slim"},
)

func newDetailsA() *schema.Struct {
	return schema.NewStruct("A", "Details A",
		schema.One("size", sizeDef.New()),
	)
}

func newDetailsB() *schema.Struct {
	return schema.NewStruct("B", "Details B",
		schema.One("size", sizeDef.New()),
		schema.One("fit", fitDef.New()),
	)
}

type signup struct {
	root   *schema.Struct
	name   *schema.Text
	gender *schema.Domain[Gender]
	kind   *schema.Union[Gender]
}

func newSignup() *signup {
	s := &signup{
		name:   schema.NewText(),
		gender: genderDef.New(),
	}
	s.kind = schema.NewUnion("kind", s.gender, map[Gender]func() *schema.Struct{
		Male:   newDetailsA,
		Female: newDetailsB,
	})
	s.root = schema.NewStruct("Signup", "Sign up",
		schema.One("name", s.name),
		schema.One("gender", s.gender),
		schema.One("kind", s.kind),
	)
	return s
}
