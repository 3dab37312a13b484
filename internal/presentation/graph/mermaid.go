package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/cyoa/pkg/domain"
)

// GraphOverlay highlights the nodes that produced results in a run.
type GraphOverlay struct {
	// Written lists result names; nodes whose name attribute appears here are styled as visited.
	Written []string
}

// GenerateMermaid produces a Mermaid flowchart of the document tree.
// It applies semantic styling:
// - Question: [/Parallelogram/]
// - Random: {{Hexagon}}
// - Equal/Greater: {Rhombus}
// - Macro: [[Subroutine]]
// - Repeat: ((Circle))
// - Option: ([Stadium])
// - Default: [Rectangle]
// Macro loads are drawn as dotted edges to the fragment bound last under that identifier.
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	g := &walker{
		sb:    &sb,
		ids:   make(map[*domain.Node]string),
		saves: make(map[string]string),
	}
	g.visit(root)

	for _, l := range g.loads {
		target, ok := g.saves[l.macro]
		if !ok {
			fmt.Fprintf(&sb, "    %s -. \"load %s (unbound)\" .-> %s\n", l.from, escape(l.macro), l.from)
			continue
		}
		fmt.Fprintf(&sb, "    %s -. load .-> %s\n", l.from, target)
	}

	if overlay != nil && len(overlay.Written) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, n := range g.order {
			name, ok := n.Attr(domain.AttrName)
			if ok && slices.Contains(overlay.Written, name) && n.Kind() != domain.KindField {
				fmt.Fprintf(&sb, "    class %s visited;\n", g.ids[n])
			}
		}
	}
	return sb.String()
}

type load struct {
	from  string
	macro string
}

type walker struct {
	sb    *strings.Builder
	ids   map[*domain.Node]string
	order []*domain.Node
	saves map[string]string
	loads []load
}

func (g *walker) visit(n *domain.Node) string {
	id := fmt.Sprintf("n%d", len(g.order))
	g.ids[n] = id
	g.order = append(g.order, n)

	opener, closer := shape(n.Kind())
	fmt.Fprintf(g.sb, "    %s%s\"%s\"%s\n", id, opener, escape(label(n)), closer)

	if n.Kind() == domain.KindMacro {
		if save, ok := n.Attr(domain.AttrSave); ok {
			g.saves[save] = id
		}
		if l, ok := n.Attr(domain.AttrLoad); ok {
			g.loads = append(g.loads, load{from: id, macro: l})
		}
	}

	for _, child := range n.Children {
		childID := g.visit(child)
		fmt.Fprintf(g.sb, "    %s --> %s\n", id, childID)
	}
	return id
}

func shape(k domain.Kind) (string, string) {
	switch k {
	case domain.KindQuestion:
		return "[/", "/]"
	case domain.KindRandom:
		return "{{", "}}"
	case domain.KindEqual, domain.KindGreater:
		return "{", "}"
	case domain.KindMacro:
		return "[[", "]]"
	case domain.KindRepeat:
		return "((", "))"
	case domain.KindOption:
		return "([", "])"
	default:
		return "[", "]"
	}
}

func label(n *domain.Node) string {
	name := n.AttrOr(domain.AttrName, "")
	switch n.Kind() {
	case domain.KindQuestion:
		return fmt.Sprintf("%s (%s)%s", n.AttrOr(domain.AttrText, domain.MissingText),
			strings.ToLower(n.AttrOr(domain.AttrType, domain.DefaultQuestionType)), arrow(name))
	case domain.KindRandom:
		kind := strings.ToLower(n.AttrOr(domain.AttrType, domain.DefaultRandomType))
		if kind == domain.RandomRange {
			kind = fmt.Sprintf("%s %s..%s",
				kind, n.AttrOr(domain.AttrMin, fmt.Sprint(domain.DefaultRangeMin)), n.AttrOr(domain.AttrMax, fmt.Sprint(domain.DefaultRangeMax)))
		}
		return "random " + kind + arrow(name)
	case domain.KindConstant:
		value := n.AttrOr(domain.AttrValue, domain.MissingValue)
		if name == "" {
			return value
		}
		return fmt.Sprintf("%s = %s", name, value)
	case domain.KindRepeat:
		return "repeat x" + n.AttrOr(domain.AttrNumber, fmt.Sprint(domain.DefaultRepeat))
	case domain.KindMacro:
		var parts []string
		if v, ok := n.Attr(domain.AttrSave); ok {
			parts = append(parts, "save "+v)
		}
		if v, ok := n.Attr(domain.AttrLoad); ok {
			parts = append(parts, "load "+v)
		}
		return "macro " + strings.Join(parts, ", ")
	case domain.KindOption:
		value := n.AttrOr(domain.AttrValue, domain.MissingValue)
		if w, ok := n.Attr(domain.AttrWeight); ok {
			return fmt.Sprintf("%s (w=%s)", value, w)
		}
		return value
	case domain.KindField:
		return "field " + name
	default:
		return n.Tag
	}
}

func arrow(name string) string {
	if name == "" {
		return ""
	}
	return " -> " + name
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
