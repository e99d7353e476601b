package domain

import "time"

// SessionStatus tells whether a form still has fields to collect.
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"   // At least one field is pending
	StatusComplete SessionStatus = "complete" // Last pass exposed no target
)

// State is the persisted snapshot of a form session.
// The live record is rebuilt from Schema and Values on every request.
type State struct {
	SessionID string `json:"session_id"`

	// Schema is the registry name of the record type.
	Schema string `json:"schema"`

	// Values maps field IDs to their submitted codes.
	Values map[string]string `json:"values"`

	// Pending is the field ID exposed by the last pass, empty when complete.
	Pending string `json:"pending,omitempty"`

	Status SessionStatus `json:"status"`

	// History lists the field IDs applied so far, in order.
	History []string `json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates an empty active session for the given schema.
func NewState(sessionID, schema string) *State {
	now := time.Now().UTC()
	return &State{
		SessionID: sessionID,
		Schema:    schema,
		Values:    make(map[string]string),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Values = make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		cp.Values[k] = v
	}
	if s.History != nil {
		cp.History = append([]string(nil), s.History...)
	}
	return &cp
}
