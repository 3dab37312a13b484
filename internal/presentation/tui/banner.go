package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the CYOA banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   ______  ______  ___ ", "#34d399"},
		{"  / ___\\ \\/ / __ \\/   |", "#2dd4bf"},
		{" / /__  \\  / /_/ / /| |", "#22d3ee"},
		{" \\___/  /_/\\____/_/ |_|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// NewPromptStyler colors the first line of a prompt and leaves option lines plain.
func NewPromptStyler() func(string) (string, error) {
	p := termenv.ColorProfile()
	return func(prompt string) (string, error) {
		head, rest, found := strings.Cut(prompt, "\n")
		styled := termenv.String(head).Foreground(p.Color("#fbbf24")).Bold().String()
		if !found {
			return styled, nil
		}
		return styled + "\n" + rest, nil
	}
}

// SystemMessage styles a meta-message (errors, notices) for the console.
func SystemMessage(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String(msg).Foreground(p.Color("#f87171")).String()
}
