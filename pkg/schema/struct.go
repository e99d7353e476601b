package schema

// Struct is an ordered, named list of slots. Traversal visits slots in declaration order.
type Struct struct {
	name        string
	description string
	id          string
	slots       []*Slot
}

// NewStruct declares a structure and assigns field IDs relative to it.
func NewStruct(name, description string, slots ...*Slot) *Struct {
	s := &Struct{name: name, description: description, slots: slots}
	s.bind("")
	return s
}

func (s *Struct) ID() string { return s.id }

func (s *Struct) Name() string { return s.name }

func (s *Struct) Description() string { return s.description }

// Slots returns the slots in declaration order.
func (s *Struct) Slots() []*Slot { return s.slots }

// Slot returns the slot with the given name, or nil.
func (s *Struct) Slot(name string) *Slot {
	for _, sl := range s.slots {
		if sl.name == name {
			return sl
		}
	}
	return nil
}

// Field returns the instance of the named scalar slot, or nil.
func (s *Struct) Field(name string) Field {
	if sl := s.Slot(name); sl != nil {
		return sl.Field()
	}
	return nil
}

// Render emits the group and its list of items, stopping after the item that
// registered the pending target.
func (s *Struct) Render(p *Pass) error {
	p.sink.OpenGroup(s.description)
	p.sink.OpenList()
	for _, sl := range s.slots {
		p.sink.OpenItem()
		err := sl.render(p)
		p.sink.CloseItem()
		if err != nil {
			return err
		}
		if p.Halted() {
			break
		}
	}
	p.sink.CloseList()
	p.sink.CloseGroup()
	return nil
}

func (s *Struct) bind(id string) {
	s.id = id
	for _, sl := range s.slots {
		if sl != nil {
			sl.bind(join(id, sl.name))
		}
	}
}

func (s *Struct) dump(values map[string]string) {
	for _, sl := range s.slots {
		sl.dump(values)
	}
}

func (s *Struct) sync() error {
	for _, sl := range s.slots {
		if err := sl.sync(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Struct) load(values map[string]string) error {
	for _, sl := range s.slots {
		if err := sl.load(values); err != nil {
			return err
		}
	}
	return nil
}

func (s *Struct) validate(path string) []error {
	var errs []error
	if len(s.slots) == 0 {
		errs = append(errs, invalid(path, "structure %s has no slots", s.name))
	}
	seen := make(map[string]bool, len(s.slots))
	for i, sl := range s.slots {
		if sl == nil {
			errs = append(errs, invalid(path, "slot %d is nil", i))
			continue
		}
		key := join(path, sl.name)
		if !validName(sl.name) {
			errs = append(errs, invalid(key, "invalid slot name %q", sl.name))
		}
		if seen[sl.name] {
			errs = append(errs, invalid(key, "duplicate slot name"))
		}
		seen[sl.name] = true
		errs = append(errs, sl.validate(key)...)
	}
	return errs
}
