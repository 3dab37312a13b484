// Package yamldoc loads documents written as YAML trees.
//
// Each node is a mapping with a tag, optional attrs and optional children:
//
//	tag: story
//	children:
//	  - tag: constant
//	    attrs: {name: gold, value: 10}
//
// A top-level sequence is wrapped in a synthetic "document" root.
package yamldoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/cyoa/pkg/domain"
	"gopkg.in/yaml.v3"
)

// RootTag names the synthetic root of a top-level sequence.
const RootTag = "document"

// Loader implements ports.DocumentLoader over a YAML source.
type Loader struct {
	open func() (io.ReadCloser, error)
}

// NewLoader reads the document from r on the first Load.
func NewLoader(r io.Reader) *Loader {
	return &Loader{open: func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}}
}

// NewFileLoader reads the document at path on every Load.
func NewFileLoader(path string) *Loader {
	return &Loader{open: func() (io.ReadCloser, error) {
		return os.Open(path)
	}}
}

// Load parses the document and returns its root node.
func (l *Loader) Load(ctx context.Context) (*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := l.open()
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer rc.Close()
	return Decode(rc)
}

// Parse decodes an in-memory document.
func Parse(data []byte) (*domain.Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single YAML document from r.
func Decode(r io.Reader) (*domain.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyDocument
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	top := doc.Content[0]
	if top.Kind == yaml.SequenceNode {
		var children []rawNode
		if err := top.Decode(&children); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		root := domain.NewNode(RootTag, nil)
		for _, c := range children {
			root.Children = append(root.Children, c.toDomain())
		}
		return root, nil
	}

	var raw rawNode
	if err := top.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if raw.Tag == "" {
		return nil, fmt.Errorf("parse yaml: root node at line %d has no tag", top.Line)
	}
	return raw.toDomain(), nil
}

// rawNode mirrors domain.Node but accepts any scalar as an attribute value.
type rawNode struct {
	Tag      string         `yaml:"tag"`
	Attrs    map[string]any `yaml:"attrs"`
	Children []rawNode      `yaml:"children"`
}

func (n rawNode) toDomain() *domain.Node {
	var attrs map[string]string
	if len(n.Attrs) > 0 {
		attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			if v == nil {
				attrs[k] = ""
				continue
			}
			attrs[k] = fmt.Sprint(v)
		}
	}
	node := &domain.Node{Tag: n.Tag, Attrs: attrs}
	for _, c := range n.Children {
		node.Children = append(node.Children, c.toDomain())
	}
	return node
}
