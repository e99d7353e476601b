package schema

// Validate checks a record declaration once, before it is served: slot names, scalar
// fields, repeated slot bounds and factories, union selectors and variant coverage.
// All failures are returned together as an *AggregateError.
func Validate(root *Struct) error {
	if root == nil {
		return &ValidationError{Reason: "record is nil"}
	}
	if errs := root.validate(""); len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
