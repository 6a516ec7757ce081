package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StringSet is a set of strings that survives a JSON round trip. It marshals
// as a tagged object so that a restored snapshot keeps set semantics instead
// of decaying into a plain array.
type StringSet map[string]struct{}

// NewStringSet returns an empty set.
func NewStringSet() StringSet {
	return StringSet{}
}

// Add inserts v into the set.
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Members returns the members in sorted order.
func (s StringSet) Members() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

type stringSetWire struct {
	Kind    string   `json:"$kind"`
	Members []string `json:"members"`
}

// MarshalJSON encodes the set as {"$kind":"set","members":[...]} with sorted
// members so encodings are deterministic.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(stringSetWire{Kind: "set", Members: s.Members()})
}

// UnmarshalJSON decodes the tagged object form.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var wire stringSetWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Kind != "set" {
		return fmt.Errorf("expected $kind \"set\", got %q", wire.Kind)
	}
	out := NewStringSet()
	for _, m := range wire.Members {
		out.Add(m)
	}
	*s = out
	return nil
}
