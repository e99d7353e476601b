package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Unbounded is the max of a repeated slot without an upper bound.
const Unbounded = -1

// Slot holds one field of a structure, either a single instance (scalar) or an ordered
// collection of instances (repeated).
type Slot struct {
	name     string
	id       string
	min, max int
	repeated bool
	fields   []Field
	factory  func() Field
}

// One declares a scalar slot holding f.
func One(name string, f Field) *Slot {
	return &Slot{name: name, min: 1, max: 1, fields: []Field{f}}
}

// Repeat declares a repeated slot. max > 1 bounds the collection, Unbounded leaves it open.
// The first min elements are created right away; more are added with Append.
func Repeat(name string, min, max int, factory func() Field) *Slot {
	s := &Slot{name: name, min: min, max: max, repeated: true, factory: factory}
	if factory == nil {
		return s
	}
	for i := 0; i < min; i++ {
		if f := factory(); f != nil {
			s.fields = append(s.fields, f)
		}
	}
	return s
}

func (s *Slot) Name() string { return s.name }

func (s *Slot) ID() string { return s.id }

// Scalar reports whether the slot holds exactly one instance.
func (s *Slot) Scalar() bool { return !s.repeated }

// Bounds returns the cardinality bound (min, max).
func (s *Slot) Bounds() (min, max int) { return s.min, s.max }

func (s *Slot) Len() int { return len(s.fields) }

// At returns the i-th instance.
func (s *Slot) At(i int) Field { return s.fields[i] }

// Field returns the instance of a scalar slot, nil for repeated slots.
func (s *Slot) Field() Field {
	if s.repeated || len(s.fields) == 0 {
		return nil
	}
	return s.fields[0]
}

// Append grows a repeated slot by one default-constructed element.
func (s *Slot) Append() (Field, error) {
	if !s.repeated {
		return nil, fmt.Errorf("slot %s is scalar", s.name)
	}
	if s.max > 0 && len(s.fields) >= s.max {
		return nil, fmt.Errorf("slot %s holds %d: %w", s.name, s.max, domain.ErrSlotFull)
	}
	if s.factory == nil {
		return nil, fmt.Errorf("slot %s has no element factory", s.name)
	}
	f := s.factory()
	if f == nil {
		return nil, fmt.Errorf("slot %s: element factory returned nil", s.name)
	}
	f.bind(s.elemID(len(s.fields)))
	s.fields = append(s.fields, f)
	return f, nil
}

func (s *Slot) elemID(i int) string {
	return s.id + "[" + strconv.Itoa(i) + "]"
}

func (s *Slot) bind(id string) {
	s.id = id
	if !s.repeated {
		if len(s.fields) == 1 && s.fields[0] != nil {
			s.fields[0].bind(id)
		}
		return
	}
	for i, f := range s.fields {
		f.bind(s.elemID(i))
	}
}

// render delegates to the scalar instance, or shows repeated elements without
// exposing any of them.
func (s *Slot) render(p *Pass) error {
	if !s.repeated {
		return s.fields[0].Render(p)
	}
	p.display++
	defer func() { p.display-- }()
	for _, f := range s.fields {
		if err := f.Render(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Slot) dump(values map[string]string) {
	for _, f := range s.fields {
		f.dump(values)
	}
}

func (s *Slot) sync() error {
	for _, f := range s.fields {
		if err := f.sync(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Slot) load(values map[string]string) error {
	if s.repeated {
		want := s.storedLen(values)
		for len(s.fields) < want {
			if _, err := s.Append(); err != nil {
				return fmt.Errorf("restore %s: %w", s.id, err)
			}
		}
	}
	for _, f := range s.fields {
		if err := f.load(values); err != nil {
			return err
		}
	}
	return nil
}

// storedLen returns one past the highest element index present in values.
func (s *Slot) storedLen(values map[string]string) int {
	n := 0
	prefix := s.id + "["
	for k := range values {
		rest, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			continue
		}
		i, err := strconv.Atoi(rest[:end])
		if err != nil || i < 0 {
			continue
		}
		if i+1 > n {
			n = i + 1
		}
	}
	return n
}

func (s *Slot) validate(path string) []error {
	if !s.repeated {
		if len(s.fields) != 1 || s.fields[0] == nil {
			return []error{invalid(path, "scalar slot has no field")}
		}
		return s.fields[0].validate(path)
	}

	var errs []error
	if s.max == 0 || s.max == 1 || s.max < Unbounded {
		errs = append(errs, invalid(path, "repeated slot needs max > 1 or Unbounded, got %d", s.max))
	}
	if s.min < 0 || (s.max > 1 && s.min > s.max) {
		errs = append(errs, invalid(path, "min %d is outside the bound %d", s.min, s.max))
	}
	if s.factory == nil {
		return append(errs, invalid(path, "repeated slot has no element factory"))
	}
	probe := s.factory()
	if probe == nil {
		return append(errs, invalid(path, "element factory returned nil"))
	}
	probe.bind(path + "[]")
	return append(errs, probe.validate(path+"[]")...)
}
