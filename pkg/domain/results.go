package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Results is the insertion-ordered store a run writes into.
// Values are int, string or []string.
type Results struct {
	names  []string
	values map[string]any
}

// NewResults creates an empty store.
func NewResults() *Results {
	return &Results{values: make(map[string]any)}
}

// Get returns the value stored under name.
func (r *Results) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the entry names in insertion order.
func (r *Results) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of entries.
func (r *Results) Len() int {
	return len(r.names)
}

// Clone returns a deep copy; list values are copied too.
func (r *Results) Clone() *Results {
	out := &Results{
		names:  r.Names(),
		values: make(map[string]any, len(r.values)),
	}
	for name, v := range r.values {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out.values[name] = v
	}
	return out
}

// Set stores value under name, bypassing any conflict policy.
func (r *Results) Set(name string, value any) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Write stores value under name. The first write stores the value verbatim;
// later writes are merged according to policy.
func (r *Results) Write(name string, value any, policy ConflictPolicy) error {
	existing, ok := r.values[name]
	if !ok {
		r.Set(name, value)
		return nil
	}
	merged, keep, err := policy.Merge(existing, value)
	if err != nil {
		return fmt.Errorf("%s '%s': %w", policy, name, err)
	}
	if keep {
		r.values[name] = merged
	}
	return nil
}

// Lookup returns the value under name or a LookupError.
func (r *Results) Lookup(name string) (any, error) {
	v, ok := r.values[name]
	if !ok {
		return nil, &LookupError{Kind: TagField, Name: name}
	}
	return v, nil
}

// Each calls fn for every entry in insertion order.
func (r *Results) Each(fn func(name string, value any)) {
	for _, name := range r.names {
		fn(name, r.values[name])
	}
}

// Entry is a single name/value pair, used for serialization.
type Entry struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Entries returns the store as an ordered slice.
func (r *Results) Entries() []Entry {
	out := make([]Entry, 0, len(r.names))
	r.Each(func(name string, value any) {
		out = append(out, Entry{Name: name, Value: value})
	})
	return out
}

// MarshalJSON encodes the store as an ordered array of entries.
func (r *Results) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries())
}

// UnmarshalJSON restores a store encoded by MarshalJSON.
// JSON numbers become int and arrays become []string.
func (r *Results) UnmarshalJSON(data []byte) error {
	var raw []struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Results{values: make(map[string]any, len(raw))}
	for _, e := range raw {
		v, err := decodeValue(e.Value)
		if err != nil {
			return fmt.Errorf("entry '%s': %w", e.Name, err)
		}
		r.Set(e.Name, v)
	}
	return nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case '[':
		var list []string
		err := json.Unmarshal(trimmed, &list)
		return list, err
	case '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return nil, err
	}
	i, err := n.Int64()
	if err != nil {
		return nil, err
	}
	return int(i), nil
}

// Stringify renders a stored value the way conflict policies and comparisons see it:
// integers in base 10, strings verbatim, sequences as "[a, b]".
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case []string:
		return "[" + strings.Join(t, ", ") + "]"
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// ParseInt parses a stored value or literal as an integer.
func ParseInt(attr string, v any) (int, error) {
	if i, ok := v.(int); ok {
		return i, nil
	}
	s := Stringify(v)
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &NumberError{Attr: attr, Value: s, Err: err}
	}
	return i, nil
}
