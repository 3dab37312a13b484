// Package validator checks a document tree before it is evaluated.
// It reports problems the evaluator would only hit at run time, or would silently ignore.
package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/cyoa/pkg/domain"
)

// Severity grades an Issue.
type Severity int

const (
	// Warning marks nodes the evaluator skips or handles in a surprising way.
	Warning Severity = iota
	// Error marks nodes that abort evaluation when reached.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is a single finding, located by its document path.
type Issue struct {
	Path     string
	Severity Severity
	Reason   string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Issues []Issue
}

func (e *AggregateError) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "found %d errors:", len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue.Error())
	}
	return b.String()
}

// ValidateDocument walks the tree in evaluation order and returns every issue found.
func ValidateDocument(root *domain.Node) []Issue {
	if root == nil {
		return nil
	}
	v := &validator{
		saved:    make(map[string]*domain.Node),
		visiting: make(map[string]bool),
	}
	v.children(root, "")
	return v.issues
}

// Err returns an AggregateError holding the Error-severity issues, or nil when there are none.
func Err(issues []Issue) error {
	var errs []Issue
	for _, issue := range issues {
		if issue.Severity == Error {
			errs = append(errs, issue)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Issues: errs}
}

type validator struct {
	issues   []Issue
	saved    map[string]*domain.Node
	visiting map[string]bool
}

func (v *validator) report(path string, sev Severity, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Severity: sev, Reason: fmt.Sprintf(format, args...)})
}

func (v *validator) children(parent *domain.Node, path string) {
	for i, child := range parent.Children {
		v.node(child, fmt.Sprintf("%s/%s[%d]", path, child.Tag, i))
	}
}

func (v *validator) node(n *domain.Node, path string) {
	switch n.Kind() {
	case domain.KindQuestion:
		v.question(n, path)
	case domain.KindRandom:
		v.random(n, path)
	case domain.KindConstant:
		v.conflict(n, path)
	case domain.KindRepeat:
		v.integer(n, path, domain.AttrNumber)
		v.children(n, path)
	case domain.KindEqual, domain.KindGreater:
		v.comparison(n, path)
	case domain.KindMacro:
		v.macro(n, path)
	case domain.KindOption, domain.KindField, domain.KindDo, domain.KindElse:
		v.report(path, Warning, "<%s> is ignored outside its parent", n.Tag)
	}
}

func (v *validator) question(n *domain.Node, path string) {
	v.conflict(n, path)
	typ := strings.ToLower(n.AttrOr(domain.AttrType, domain.DefaultQuestionType))
	switch typ {
	case domain.QuestionSelect:
		if len(v.options(n, path)) == 0 {
			v.report(path, Warning, "select question has no options and is skipped")
		}
	case domain.QuestionYesNo, domain.QuestionInput:
	default:
		v.report(path, Warning, "unknown question type %q; the question is skipped", typ)
		return
	}
	// Answers branch into the child at the answer's position.
	for i, child := range n.Children {
		v.children(child, fmt.Sprintf("%s/%s[%d]", path, child.Tag, i))
	}
}

func (v *validator) random(n *domain.Node, path string) {
	v.conflict(n, path)
	typ := strings.ToLower(n.AttrOr(domain.AttrType, domain.DefaultRandomType))
	switch typ {
	case domain.RandomRange:
		lo, okLo := v.integer(n, path, domain.AttrMin)
		hi, okHi := v.integer(n, path, domain.AttrMax)
		if !n.Has(domain.AttrMin) {
			lo = domain.DefaultRangeMin
		}
		if !n.Has(domain.AttrMax) {
			hi = domain.DefaultRangeMax
		}
		if okLo && okHi && hi < lo {
			v.report(path, Error, "max %d is below min %d", hi, lo)
		}
	case domain.RandomList:
		v.weights(n, path)
	default:
		v.report(path, Warning, "unknown random type %q; nothing is drawn", typ)
	}
}

func (v *validator) weights(n *domain.Node, path string) {
	opts := v.options(n, path)
	if len(opts) == 0 {
		v.report(path, Warning, "random list has no options and is skipped")
		return
	}
	total, valid := 0, true
	for _, opt := range opts {
		w, ok := v.integer(opt.node, opt.path, domain.AttrWeight)
		if !opt.node.Has(domain.AttrWeight) {
			w = domain.DefaultWeight
		}
		if !ok {
			valid = false
			continue
		}
		if w < 0 {
			v.report(opt.path, Error, "weight %d is negative", w)
			valid = false
		}
		total += w
		v.children(opt.node, opt.path)
	}
	if valid && total <= 0 {
		v.report(path, Error, "option weights add up to %d", total)
	}
}

func (v *validator) comparison(n *domain.Node, path string) {
	operands := 0
	for i, child := range n.Children {
		childPath := fmt.Sprintf("%s/%s[%d]", path, child.Tag, i)
		switch child.Kind() {
		case domain.KindField:
			operands++
			if !child.Has(domain.AttrName) {
				v.report(childPath, Error, "<field> needs a name")
			}
		case domain.KindConstant:
			operands++
			if n.Kind() == domain.KindGreater {
				v.integer(child, childPath, domain.AttrValue)
			}
		case domain.KindMacro:
			operands += len(v.fragments(child, childPath, domain.KindField, domain.KindConstant))
		case domain.KindDo, domain.KindElse:
			v.children(child, childPath)
		}
	}
	if operands == 0 {
		v.report(path, Warning, "<%s> has no operands and always takes the do branch", n.Tag)
	}
}

func (v *validator) macro(n *domain.Node, path string) {
	fragment := v.resolve(n, path)
	if fragment == nil {
		return
	}
	id := n.AttrOr(domain.AttrLoad, "")
	v.visiting[id] = true
	v.children(fragment, path+"/macro:"+id)
	delete(v.visiting, id)
}

// resolve binds a save or returns the fragment a load refers to.
// It returns nil for saves and for loads that cannot be resolved.
func (v *validator) resolve(n *domain.Node, path string) *domain.Node {
	if id, ok := n.Attr(domain.AttrSave); ok {
		v.saved[id] = n
		return nil
	}
	id, ok := n.Attr(domain.AttrLoad)
	if !ok {
		v.report(path, Warning, "<macro> has neither save nor load")
		return nil
	}
	fragment, ok := v.saved[id]
	if !ok {
		v.report(path, Error, "macro %q is loaded before it is saved", id)
		return nil
	}
	if v.visiting[id] {
		v.report(path, Error, "macro %q loads itself", id)
		return nil
	}
	return fragment
}

func (v *validator) conflict(n *domain.Node, path string) {
	raw, ok := n.Attr(domain.AttrConflict)
	if !ok {
		return
	}
	if !domain.ParseConflictPolicy(raw).Known() {
		v.report(path, Warning, "unknown conflict policy %q; repeated writes are dropped", raw)
	}
}

// integer checks an optional integer attribute. Absent attributes are valid.
func (v *validator) integer(n *domain.Node, path, attr string) (int, bool) {
	raw, ok := n.Attr(attr)
	if !ok {
		return 0, true
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		v.report(path, Error, "%s %q is not an integer", attr, raw)
		return 0, false
	}
	return i, true
}

type located struct {
	node *domain.Node
	path string
}

func (v *validator) options(n *domain.Node, path string) []located {
	return v.fragments(n, path, domain.KindOption)
}

// fragments mirrors how the evaluator collects operands and options:
// direct children of the wanted kinds, with macro loads spliced in place.
func (v *validator) fragments(n *domain.Node, path string, wanted ...domain.Kind) []located {
	if n.Kind() == domain.KindMacro {
		fragment := v.resolve(n, path)
		if fragment == nil {
			return nil
		}
		id := n.AttrOr(domain.AttrLoad, "")
		v.visiting[id] = true
		defer delete(v.visiting, id)
		return v.fragments(fragment, path+"/macro:"+id, wanted...)
	}

	var out []located
	for i, child := range n.Children {
		childPath := fmt.Sprintf("%s/%s[%d]", path, child.Tag, i)
		if slices.Contains(wanted, child.Kind()) {
			out = append(out, located{node: child, path: childPath})
			continue
		}
		if child.Kind() == domain.KindMacro {
			out = append(out, v.fragments(child, childPath, wanted...)...)
		}
	}
	return out
}
