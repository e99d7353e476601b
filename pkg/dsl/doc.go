/*
Package dsl declares schemas whose domains and fields are only known at run time.

A Definition describes a record with string-coded domains. It can be written in YAML,
decoded from a generic map (for example Markdown front matter) or built with the fluent
Builder, and compiles into a Factory producing fresh schema.Struct records.

Example usage:

	factory, err := dsl.New("signup", "Sign up").
		Domain("Gender", domain.Option{Code: "M", Label: "Male"}, domain.Option{Code: "F", Label: "Female"}).
		Domain("Size", domain.Option{Code: "S", Label: "Small"}, domain.Option{Code: "L", Label: "Large"}).
		Fields(func(f *dsl.FieldList) {
			f.Text("name").MaxLength(40)
			f.Choice("gender", "Gender")
			f.Union("kind", "gender").
				Variant("M", "Details A", func(v *dsl.FieldList) { v.Choice("size", "Size") }).
				Variant("F", "Details B", func(v *dsl.FieldList) { v.Choice("size", "Size") })
		}).
		Compile()

The equivalent YAML:

	name: signup
	description: Sign up
	domains:
	  - name: Gender
	    values: [{code: M, label: Male}, {code: F, label: Female}]
	fields:
	  - {name: name, type: text, max_length: 40}
	  - {name: gender, type: domain, domain: Gender}
	  - name: kind
	    type: union
	    selector: gender
	    variants:
	      M: {description: Details A, fields: [{name: size, domain: Size}]}
*/
package dsl
