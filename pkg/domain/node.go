package domain

import "strings"

// Kind is the closed set of node variants understood by the evaluator.
// Tags are mapped to a Kind once, at the boundary where the tree is consumed.
type Kind int

const (
	// KindIgnored marks any tag the evaluator does not know. Such nodes are skipped.
	KindIgnored Kind = iota
	KindQuestion
	KindRandom
	KindConstant
	KindRepeat
	KindEqual
	KindGreater
	KindMacro

	// Structural kinds, consumed by their parent's handler only.
	KindOption
	KindField
	KindDo
	KindElse
)

// Tag names as they appear in documents.
const (
	TagQuestion = "question"
	TagRandom   = "random"
	TagConstant = "constant"
	TagRepeat   = "repeat"
	TagEqual    = "equal"
	TagGreater  = "greater"
	TagMacro    = "macro"
	TagOption   = "option"
	TagField    = "field"
	TagDo       = "do"
	TagElse     = "else"
)

var kindsByTag = map[string]Kind{
	TagQuestion: KindQuestion,
	TagRandom:   KindRandom,
	TagConstant: KindConstant,
	TagRepeat:   KindRepeat,
	TagEqual:    KindEqual,
	TagGreater:  KindGreater,
	TagMacro:    KindMacro,
	TagOption:   KindOption,
	TagField:    KindField,
	TagDo:       KindDo,
	TagElse:     KindElse,
}

// ParseKind maps a tag name to its Kind. Matching is case-insensitive.
func ParseKind(tag string) Kind {
	if k, ok := kindsByTag[strings.ToLower(tag)]; ok {
		return k
	}
	return KindIgnored
}

func (k Kind) String() string {
	for tag, kind := range kindsByTag {
		if kind == k {
			return tag
		}
	}
	return "ignored"
}

// Node represents one element of a parsed document.
// Nodes are never mutated by the evaluator.
type Node struct {
	Tag      string            `json:"tag" yaml:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewNode builds a node. It is mostly useful in tests and programmatic documents.
func NewNode(tag string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// Kind returns the variant of this node.
func (n *Node) Kind() Kind {
	return ParseKind(n.Tag)
}

// Attr returns the attribute value and whether it was present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// AttrOr returns the attribute value or fallback when absent.
func (n *Node) AttrOr(key, fallback string) string {
	if v, ok := n.Attrs[key]; ok {
		return v
	}
	return fallback
}

// Has reports whether the attribute is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Attrs[key]
	return ok
}
