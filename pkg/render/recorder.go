package render

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Recorder collects primitives in emission order.
type Recorder struct {
	ops []domain.Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OpenGroup(description string) {
	r.ops = append(r.ops, domain.Op{Kind: domain.OpOpenGroup, Text: description})
}

func (r *Recorder) CloseGroup() { r.add(domain.OpCloseGroup) }

func (r *Recorder) OpenList() { r.add(domain.OpOpenList) }

func (r *Recorder) CloseList() { r.add(domain.OpCloseList) }

func (r *Recorder) OpenItem() { r.add(domain.OpOpenItem) }

func (r *Recorder) CloseItem() { r.add(domain.OpCloseItem) }

func (r *Recorder) Text(text string) {
	r.ops = append(r.ops, domain.Op{Kind: domain.OpText, Text: text})
}

func (r *Recorder) Choice(field string, options []domain.Option) {
	opts := append([]domain.Option(nil), options...)
	r.ops = append(r.ops, domain.Op{Kind: domain.OpChoice, Field: field, Options: opts})
}

func (r *Recorder) Entry(field string) {
	r.ops = append(r.ops, domain.Op{Kind: domain.OpEntry, Field: field})
}

func (r *Recorder) add(kind domain.OpKind) {
	r.ops = append(r.ops, domain.Op{Kind: kind})
}

// Ops returns the recorded primitives.
func (r *Recorder) Ops() []domain.Op {
	return r.ops
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}
