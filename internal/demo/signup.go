// Package demo holds the schemas the CLI serves when no schema source is given.
package demo

import (
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/schema"
)

// SignupName is the registry name of the signup schema.
const SignupName = "signup"

type Gender int

const (
	Male Gender = iota
	Female
)

var GenderDomain = schema.MustDomainDef("Gender",
	schema.Entry[Gender]{Value: Male, Code: "M", Label: "Male"},
	schema.Entry[Gender]{Value: Female, Code: "F", Label: "Female"},
)

var SizeDomain = schema.MustDomainDef("Size",
	schema.Entry[string]{Value: "small", Code: "S", Label: "Small"},
	schema.Entry[string]{Value: "medium", Code: "M", Label: "Medium"},
	schema.Entry[string]{Value: "large", Code: "L", Label: "Large"},
)

var FitDomain = schema.MustDomainDef("Fit",
	schema.Entry[string]{Value: "regular", Code: "R", Label: "Regular"},
	schema.Entry[string]{Value: "slim", Code: "S", Label: "Slim"},
)

// Signup is a typed view over the signup record.
type Signup struct {
	Root   *schema.Struct
	Name   *schema.Text
	Gender *schema.Domain[Gender]
	Kind   *schema.Union[Gender]
}

// NewSignup builds an empty signup record: a name, a gender, and details that depend
// on the gender.
func NewSignup() *Signup {
	s := &Signup{
		Name:   schema.NewText().WithMaxLength(80),
		Gender: GenderDomain.New(),
	}
	s.Kind = schema.NewUnion("kind", s.Gender, map[Gender]func() *schema.Struct{
		Male:   newMaleDetails,
		Female: newFemaleDetails,
	})
	s.Root = schema.NewStruct("Signup", "Sign up",
		schema.One("name", s.Name),
		schema.One("gender", s.Gender),
		schema.One("kind", s.Kind),
	)
	return s
}

func newMaleDetails() *schema.Struct {
	return schema.NewStruct("MaleDetails", "Details",
		schema.One("size", SizeDomain.New()),
	)
}

func newFemaleDetails() *schema.Struct {
	return schema.NewStruct("FemaleDetails", "Details",
		schema.One("size", SizeDomain.New()),
		schema.One("fit", FitDomain.New()),
	)
}

// SignupFactory adapts NewSignup to the registry.
func SignupFactory() *schema.Struct {
	return NewSignup().Root
}

// Register adds every demo schema to reg.
func Register(reg *registry.Registry) error {
	return reg.Register(SignupName, SignupFactory)
}
