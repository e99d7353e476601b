package domain

// Response is what a host returns for one request against a session: the primitives of
// the pass it just ran and the target awaiting input.
type Response struct {
	SessionID string            `json:"session_id"`
	Schema    string            `json:"schema"`
	Ops       []Op              `json:"ops"`
	Target    *Target           `json:"target,omitempty"`
	Complete  bool              `json:"complete"`
	Notice    string            `json:"notice,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
}
