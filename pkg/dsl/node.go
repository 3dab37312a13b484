package dsl

import (
	"fmt"
	"strconv"

	"github.com/aretw0/cyoa/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
// Misuse (e.g. a weight on a constant) is recorded and reported by Build.
type NodeBuilder struct {
	node     *domain.Node
	children []*NodeBuilder
	errs     []error
}

func newNode(tag string, attrs map[string]string, children ...*NodeBuilder) *NodeBuilder {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &NodeBuilder{
		node:     &domain.Node{Tag: tag, Attrs: attrs},
		children: children,
	}
}

// Element creates a node with an arbitrary tag. Unknown tags are skipped by the evaluator
// but their attributes and children are kept.
func Element(tag string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(tag, nil, children...)
}

// Constant writes value under name.
func Constant(name string, value any) *NodeBuilder {
	return newNode(domain.TagConstant, map[string]string{
		domain.AttrName:  name,
		domain.AttrValue: fmt.Sprint(value),
	})
}

// Value is a nameless constant, used as an operand of Equal and Greater.
func Value(value any) *NodeBuilder {
	return newNode(domain.TagConstant, map[string]string{domain.AttrValue: fmt.Sprint(value)})
}

// Field reads a stored result, used as an operand of Equal and Greater.
func Field(name string) *NodeBuilder {
	return newNode(domain.TagField, map[string]string{domain.AttrName: name})
}

// Option is a choice of a select question or a weighted random list.
func Option(value string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagOption, map[string]string{domain.AttrValue: value}, children...)
}

// Question asks a select question. The answer is stored under name and the
// option at the answer's position is evaluated.
func Question(name, text string, options ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagQuestion, map[string]string{
		domain.AttrName: name,
		domain.AttrText: text,
	}, options...)
}

// YesNo asks a yes/no question. The first child runs on yes, the second on no.
func YesNo(name, text string, branches ...*NodeBuilder) *NodeBuilder {
	return Question(name, text, branches...).Type(domain.QuestionYesNo)
}

// Input asks for free text and stores it verbatim.
func Input(name, text string) *NodeBuilder {
	return Question(name, text).Type(domain.QuestionInput)
}

// Random draws one option by weight and stores its value under name.
func Random(name string, options ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagRandom, map[string]string{domain.AttrName: name}, options...)
}

// Range draws a uniform integer in [lo, hi].
func Range(name string, lo, hi int) *NodeBuilder {
	return newNode(domain.TagRandom, map[string]string{
		domain.AttrName: name,
		domain.AttrType: domain.RandomRange,
		domain.AttrMin:  strconv.Itoa(lo),
		domain.AttrMax:  strconv.Itoa(hi),
	})
}

// Repeat evaluates its children n times.
func Repeat(n int, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagRepeat, map[string]string{domain.AttrNumber: strconv.Itoa(n)}, children...)
}

// Equal takes the do branch when all operands are equal.
func Equal(operands ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagEqual, nil, operands...)
}

// Greater takes the do branch when the first operand is greater than all others.
func Greater(operands ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagGreater, nil, operands...)
}

// SaveMacro binds children under id for later loads.
func SaveMacro(id string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.TagMacro, map[string]string{domain.AttrSave: id}, children...)
}

// LoadMacro evaluates the fragment bound most recently under id.
func LoadMacro(id string) *NodeBuilder {
	return newNode(domain.TagMacro, map[string]string{domain.AttrLoad: id})
}

// Attr sets an arbitrary attribute.
func (n *NodeBuilder) Attr(key, value string) *NodeBuilder {
	n.node.Attrs[key] = value
	return n
}

// Conflict sets the policy applied when the name already holds a value.
func (n *NodeBuilder) Conflict(policy domain.ConflictPolicy) *NodeBuilder {
	if !n.writes() {
		n.fail("conflict policy on <%s>, which does not write", n.node.Tag)
		return n
	}
	return n.Attr(domain.AttrConflict, string(policy))
}

// Type sets the question or random type.
func (n *NodeBuilder) Type(typ string) *NodeBuilder {
	switch n.node.Kind() {
	case domain.KindQuestion, domain.KindRandom:
		return n.Attr(domain.AttrType, typ)
	}
	n.fail("type on <%s>", n.node.Tag)
	return n
}

// Weight sets the relative likelihood of an option.
func (n *NodeBuilder) Weight(w int) *NodeBuilder {
	if n.node.Kind() != domain.KindOption {
		n.fail("weight on <%s>, want <option>", n.node.Tag)
		return n
	}
	if w < 0 {
		n.fail("negative weight %d", w)
	}
	return n.Attr(domain.AttrWeight, strconv.Itoa(w))
}

// Do appends the branch taken when a comparison holds.
func (n *NodeBuilder) Do(children ...*NodeBuilder) *NodeBuilder {
	return n.branch(domain.TagDo, children)
}

// Else appends the branch taken when a comparison fails.
func (n *NodeBuilder) Else(children ...*NodeBuilder) *NodeBuilder {
	return n.branch(domain.TagElse, children)
}

func (n *NodeBuilder) branch(tag string, children []*NodeBuilder) *NodeBuilder {
	switch n.node.Kind() {
	case domain.KindEqual, domain.KindGreater:
		n.children = append(n.children, newNode(tag, nil, children...))
	default:
		n.fail("<%s> branch on <%s>, want <equal> or <greater>", tag, n.node.Tag)
	}
	return n
}

func (n *NodeBuilder) writes() bool {
	switch n.node.Kind() {
	case domain.KindConstant, domain.KindQuestion, domain.KindRandom:
		return true
	}
	return false
}

func (n *NodeBuilder) fail(format string, args ...any) {
	n.errs = append(n.errs, fmt.Errorf(format, args...))
}

// Build returns the underlying domain.Node with its children attached.
func (n *NodeBuilder) Build() *domain.Node {
	out := *n.node
	out.Attrs = make(map[string]string, len(n.node.Attrs))
	for k, v := range n.node.Attrs {
		out.Attrs[k] = v
	}
	if len(out.Attrs) == 0 {
		out.Attrs = nil
	}
	out.Children = nil
	for _, child := range n.children {
		out.Children = append(out.Children, child.Build())
	}
	return &out
}

func (n *NodeBuilder) collect(errs []error) []error {
	errs = append(errs, n.errs...)
	for _, child := range n.children {
		errs = child.collect(errs)
	}
	return errs
}
