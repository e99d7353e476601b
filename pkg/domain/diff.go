package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Pending is set when the exposed field changed. An empty string means nothing is pending.
	Pending *string `json:"pending,omitempty"`

	Status *SessionStatus `json:"status,omitempty"`

	// Values contains only changed, added or deleted fields.
	// For deletions, the field is present with a nil value.
	Values map[string]*string `json:"values,omitempty"`

	// Applied contains field IDs appended to the history.
	Applied []string `json:"applied,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.Pending != newState.Pending {
		pending := newState.Pending
		diff.Pending = &pending
	}
	if oldState == nil || oldState.Status != newState.Status {
		status := newState.Status
		diff.Status = &status
	}

	diff.Values = diffValues(oldState, newState)
	diff.Applied = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffValues(old *State, new *State) map[string]*string {
	delta := make(map[string]*string)

	for k, v := range new.Values {
		if old != nil {
			if prev, ok := old.Values[k]; ok && prev == v {
				continue
			}
		}
		val := v
		delta[k] = &val
	}

	if old != nil {
		for k := range old.Values {
			if _, ok := new.Values[k]; !ok {
				delta[k] = nil
			}
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffHistory assumes append-only history.
func diffHistory(old *State, new *State) []string {
	if len(new.History) == 0 {
		return nil
	}
	if old == nil {
		return append([]string(nil), new.History...)
	}
	if len(new.History) > len(old.History) {
		return append([]string(nil), new.History[len(old.History):]...)
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Pending == nil &&
		d.Status == nil &&
		len(d.Values) == 0 &&
		len(d.Applied) == 0
}
