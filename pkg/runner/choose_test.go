package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	colors := []string{"Red", "Green", "Blue"}
	yesNo := []string{"Yes", "No"}

	tests := []struct {
		name    string
		line    string
		options []string
		def     int
		want    int
	}{
		{"empty with default", "", yesNo, 0, 0},
		{"empty picks the only option", "", []string{"Only"}, NoAnswer, 0},
		{"empty is ambiguous among options", "", colors, NoAnswer, NoAnswer},
		{"empty matches an empty option", "", []string{"Red", ""}, NoAnswer, 1},
		{"number", "2", colors, NoAnswer, 1},
		{"number out of range", "4", colors, NoAnswer, NoAnswer},
		{"zero", "0", colors, NoAnswer, NoAnswer},
		{"unique prefix", "y", yesNo, 0, 0},
		{"prefix is case insensitive", "gR", colors, NoAnswer, 1},
		{"full word", "blue", colors, NoAnswer, 2},
		{"no match", "purple", colors, NoAnswer, NoAnswer},
		{"ambiguous prefix", "b", []string{"Blue", "Black"}, NoAnswer, NoAnswer},
		{"exact match among candidates", "an", []string{"an", "and"}, NoAnswer, 0},
		{"numeric option text", "10", []string{"10", "100"}, NoAnswer, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.line, tt.options, tt.def))
		})
	}
}
