package domain

import "strings"

// ConflictPolicy is the rule applied when a name that already holds a value is written again.
type ConflictPolicy string

const (
	ConflictOverwrite ConflictPolicy = "overwrite"
	ConflictAdd       ConflictPolicy = "add"
	ConflictAppend    ConflictPolicy = "append"
	ConflictStack     ConflictPolicy = "stack"
	ConflictList      ConflictPolicy = "list"
	ConflictSkip      ConflictPolicy = "skip"

	DefaultConflict = ConflictOverwrite
)

// StackSeparator joins values written with the stack policy.
const StackSeparator = "\n\t"

// ParseConflictPolicy normalizes a policy name. An empty name yields the default.
func ParseConflictPolicy(name string) ConflictPolicy {
	if name == "" {
		return DefaultConflict
	}
	return ConflictPolicy(strings.ToLower(strings.TrimSpace(name)))
}

// Known reports whether p is one of the defined policies.
func (p ConflictPolicy) Known() bool {
	switch p {
	case ConflictOverwrite, ConflictAdd, ConflictAppend, ConflictStack, ConflictList, ConflictSkip:
		return true
	}
	return false
}

// Merge combines the existing and incoming values.
// keep is false when the store must be left untouched.
// Unknown policies leave the existing value in place.
func (p ConflictPolicy) Merge(existing, incoming any) (merged any, keep bool, err error) {
	switch p {
	case ConflictOverwrite:
		return incoming, true, nil
	case ConflictAdd:
		a, err := ParseInt(string(p), existing)
		if err != nil {
			return nil, false, err
		}
		b, err := ParseInt(string(p), incoming)
		if err != nil {
			return nil, false, err
		}
		return a + b, true, nil
	case ConflictAppend:
		return Stringify(existing) + Stringify(incoming), true, nil
	case ConflictStack:
		return Stringify(existing) + StackSeparator + Stringify(incoming), true, nil
	case ConflictList:
		if list, ok := existing.([]string); ok {
			next := make([]string, len(list), len(list)+1)
			copy(next, list)
			return append(next, Stringify(incoming)), true, nil
		}
		return []string{Stringify(existing), Stringify(incoming)}, true, nil
	default:
		return nil, false, nil
	}
}
