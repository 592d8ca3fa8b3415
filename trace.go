package opts

import (
	"encoding/json"
)

// Trace records how a single option name was resolved: which registry was
// selected, how the name matched the table and whether a value was stored.
type Trace struct {
	Query       string   `json:"query"`
	Scope       string   `json:"scope"`
	Global      bool     `json:"global,omitempty"`
	Target      string   `json:"target,omitempty"`
	Status      string   `json:"status"`
	Canonical   string   `json:"canonical,omitempty"`
	Candidates  []string `json:"candidates,omitempty"`
	UserDefined bool     `json:"user_defined,omitempty"`
	Found       bool     `json:"found"`
	Line        string   `json:"line,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
