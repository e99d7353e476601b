package dsl

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
)

// Field types.
const (
	TypeText   = "text"
	TypeDomain = "domain"
	TypeStruct = "struct"
	TypeUnion  = "union"
)

// Definition is the serialisable form of a schema.
type Definition struct {
	Name        string       `yaml:"name" json:"name" mapstructure:"name"`
	Description string       `yaml:"description" json:"description" mapstructure:"description"`
	Domains     []DomainSpec `yaml:"domains" json:"domains" mapstructure:"domains"`
	Fields      []*FieldDef  `yaml:"fields" json:"fields" mapstructure:"fields"`
}

// DomainSpec declares a string-coded value domain. Codes double as values.
type DomainSpec struct {
	Name   string          `yaml:"name" json:"name" mapstructure:"name"`
	Values []domain.Option `yaml:"values" json:"values" mapstructure:"values"`
}

// FieldDef declares one slot. Setting Max or Min makes it repeated; Max -1 is unbounded,
// as is a Min without a Max.
type FieldDef struct {
	Name        string              `yaml:"name" json:"name" mapstructure:"name"`
	Type        string              `yaml:"type,omitempty" json:"type,omitempty" mapstructure:"type"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	Domain      string              `yaml:"domain,omitempty" json:"domain,omitempty" mapstructure:"domain"`
	Value       string              `yaml:"value,omitempty" json:"value,omitempty" mapstructure:"value"`
	Min         int                 `yaml:"min,omitempty" json:"min,omitempty" mapstructure:"min"`
	Max         int                 `yaml:"max,omitempty" json:"max,omitempty" mapstructure:"max"`
	MaxLength   int                 `yaml:"max_length,omitempty" json:"max_length,omitempty" mapstructure:"max_length"`
	Selector    string              `yaml:"selector,omitempty" json:"selector,omitempty" mapstructure:"selector"`
	Variants    map[string]*Variant `yaml:"variants,omitempty" json:"variants,omitempty" mapstructure:"variants"`
	Fields      []*FieldDef         `yaml:"fields,omitempty" json:"fields,omitempty" mapstructure:"fields"`
}

// Variant is the structure materialised for one selector code.
type Variant struct {
	Description string      `yaml:"description" json:"description" mapstructure:"description"`
	Fields      []*FieldDef `yaml:"fields" json:"fields" mapstructure:"fields"`
}

// Kind resolves the field type, inferring it when Type is empty.
func (f *FieldDef) Kind() string {
	switch {
	case f.Type != "":
		return f.Type
	case f.Selector != "":
		return TypeUnion
	case f.Domain != "":
		return TypeDomain
	case len(f.Fields) > 0:
		return TypeStruct
	default:
		return TypeText
	}
}

// Repeated reports whether the field declares a collection.
func (f *FieldDef) Repeated() bool {
	return f.Max != 0 || f.Min != 0
}

// Bound returns the upper bound of a repeated field.
func (f *FieldDef) Bound() int {
	if f.Max == 0 {
		return schema.Unbounded
	}
	return f.Max
}
