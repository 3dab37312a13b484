package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.Results {
	r := domain.NewResults()
	r.Set("hero", "Ada")
	r.Set("gold", 60)
	r.Set("loot", []string{"gold", "gem"})
	r.Set("log", "a\n\tb")
	return r
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, sample(), ""))
	assert.Equal(t, "Results:\nhero: Ada\ngold: 60\nloot: gold, gem\nlog: a\n\tb\n", buf.String())

	buf.Reset()
	require.NoError(t, report.Text(&buf, sample(), " | "))
	assert.Contains(t, buf.String(), "loot: gold | gem\n")

	buf.Reset()
	require.NoError(t, report.Text(&buf, nil, ""))
	assert.Equal(t, "Results:\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.JSON(&buf, sample()))

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "hero", entries[0]["name"])
	assert.Equal(t, float64(60), entries[1]["value"])
}

func TestMarkdown(t *testing.T) {
	md := report.Markdown(sample(), "")
	assert.Contains(t, md, "| Name | Value |")
	assert.Contains(t, md, "| loot | gold, gem |")
	assert.Contains(t, md, "| log | a<br> b |")

	assert.Contains(t, report.Markdown(domain.NewResults(), ""), "_No results._")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, report.FormatMarkdown, sample(), report.Options{
		Markdown: func(s string) (string, error) { return strings.ToUpper(s), nil },
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "## RESULTS")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]report.Format{
		"":         report.FormatText,
		"JSON":     report.FormatJSON,
		"md":       report.FormatMarkdown,
		"markdown": report.FormatMarkdown,
	} {
		got, err := report.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := report.ParseFormat("xml")
	assert.Error(t, err)
}
