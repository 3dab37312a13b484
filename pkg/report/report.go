// Package report renders a finished result store for people and programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/cyoa/pkg/domain"
)

// DefaultSeparator joins list values in text and markdown output.
const DefaultSeparator = ", "

// Format selects an output flavour.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. An empty name yields FormatText.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or markdown)", name)
	}
}

// Options tune rendering.
type Options struct {
	// Separator joins list values; empty means DefaultSeparator.
	Separator string
	// Markdown post-processes markdown output (e.g. terminal rendering). Optional.
	Markdown func(string) (string, error)
}

// Write renders results in the given format.
func Write(w io.Writer, format Format, results *domain.Results, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, results)
	case FormatMarkdown:
		md := Markdown(results, opts.Separator)
		if opts.Markdown != nil {
			rendered, err := opts.Markdown(md)
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			md = rendered
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		return Text(w, results, opts.Separator)
	}
}

// Text prints "Results:" then one "name: value" line per entry, in insertion order.
func Text(w io.Writer, results *domain.Results, sep string) error {
	var b strings.Builder
	b.WriteString("Results:\n")
	for _, e := range entries(results) {
		fmt.Fprintf(&b, "%s: %s\n", e.Name, Value(e.Value, sep))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes the entries as an ordered array of {"name", "value"} objects.
func JSON(w io.Writer, results *domain.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = domain.NewResults()
	}
	return enc.Encode(results)
}

// Markdown renders the entries as a two-column table.
func Markdown(results *domain.Results, sep string) string {
	var b strings.Builder
	b.WriteString("## Results\n\n")
	list := entries(results)
	if len(list) == 0 {
		b.WriteString("_No results._\n")
		return b.String()
	}
	b.WriteString("| Name | Value |\n|---|---|\n")
	for _, e := range list {
		fmt.Fprintf(&b, "| %s | %s |\n", cell(e.Name), cell(Value(e.Value, sep)))
	}
	return b.String()
}

// Value formats a stored value; lists are joined with sep.
func Value(v any, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	if list, ok := v.([]string); ok {
		return strings.Join(list, sep)
	}
	return domain.Stringify(v)
}

func entries(results *domain.Results) []domain.Entry {
	if results == nil {
		return nil
	}
	return results.Entries()
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\t", " ")

func cell(s string) string {
	return cellReplacer.Replace(s)
}
