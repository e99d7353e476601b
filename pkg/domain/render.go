package domain

// OpKind names a display primitive of the render output contract.
type OpKind string

const (
	OpOpenGroup  OpKind = "open_group"
	OpCloseGroup OpKind = "close_group"
	OpOpenList   OpKind = "open_list"
	OpCloseList  OpKind = "close_list"
	OpOpenItem   OpKind = "open_item"
	OpCloseItem  OpKind = "close_item"
	OpText       OpKind = "text"
	OpChoice     OpKind = "choice" // Enumerated choice widget
	OpEntry      OpKind = "entry"  // Free text entry widget
)

// Option is one (code, label) pair offered by a choice widget.
type Option struct {
	Code  string `json:"code" yaml:"code" mapstructure:"code"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Op is a single display primitive.
// Text carries the group description or paragraph text; Field and Options are set for widgets.
type Op struct {
	Kind    OpKind   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Field   string   `json:"field,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// Target identifies the field a traversal pass left awaiting input.
type Target struct {
	Field   string   `json:"field"`
	Widget  OpKind   `json:"widget"`
	Options []Option `json:"options,omitempty"`
}
