package runner

import (
	"strconv"
	"strings"

	"github.com/aretw0/cyoa/pkg/ports"
)

// InvalidInputMessage is printed before a choice prompt is repeated.
const InvalidInputMessage = "Invalid input"

// Match resolves a raw line against options.
// It returns the zero-based index of the chosen option, or ports.NoAnswer when the
// line selects nothing and the prompt must be repeated.
//
// Resolution order: empty line with a default, a 1-based number, then a
// case-insensitive prefix that is unique or matches one option exactly.
// An empty line without a default is a prefix of every option.
func Match(line string, options []string, def int) int {
	if line == "" && def >= 0 && def < len(options) {
		return def
	}
	if isDigits(line) {
		if n, err := strconv.Atoi(line); err == nil && n > 0 && n <= len(options) {
			return n - 1
		}
	}

	lower := strings.ToLower(line)
	var candidates []int
	for i, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), lower) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	for _, i := range candidates {
		if strings.EqualFold(options[i], line) {
			return i
		}
	}
	return ports.NoAnswer
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// trimLine strips the line terminator only; the rest of the line is kept verbatim.
func trimLine(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
