// Package schema is the reflective schema engine behind arbor forms.
//
// A record is declared once out of four composable kinds:
//
//   - Domain: a closed, named set of (code, label) pairs backed by a Go value.
//   - Slot: a cardinality-bounded holder of one field inside a structure.
//   - Struct: an ordered list of named slots.
//   - Union: a choice among variant structures keyed by a sibling selector domain.
//
// A traversal pass walks the record depth-first in declaration order, writes display
// primitives to a Sink and stops at the first scalar field that still lacks a value,
// registering it as the pending target. Form ties passes to input: Apply only accepts a
// value for the field the previous pass exposed.
//
// Basic usage:
//
//	gender := schema.MustDomainDef("Gender",
//	    schema.Entry[Gender]{Value: Male, Code: "M", Label: "Male"},
//	    schema.Entry[Gender]{Value: Female, Code: "F", Label: "Female"},
//	)
//
//	sel := gender.New()
//	signup := schema.NewStruct("Signup", "Sign up",
//	    schema.One("name", schema.NewText()),
//	    schema.One("gender", sel),
//	    schema.One("kind", schema.NewUnion("kind", sel, map[Gender]func() *schema.Struct{
//	        Male:   newMaleDetails,
//	        Female: newFemaleDetails,
//	    })),
//	)
//
//	form := schema.NewForm(signup)
//	target, err := form.Render(sink)  // exposes "name"
//	err = form.Apply("name", "Alice")
//
// Schemas should be checked once with Validate before they are served.
package schema
