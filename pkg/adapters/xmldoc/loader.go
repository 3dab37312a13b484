// Package xmldoc loads documents written in the XML tree markup.
package xmldoc

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/cyoa/pkg/domain"
)

// Loader implements ports.DocumentLoader over an XML source.
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

// Load parses the document and returns its root element.
func (l *Loader) Load(ctx context.Context) (*domain.Node, error) {
	rc, err := l.open()
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer rc.Close()
	return Decode(ctx, rc)
}

// Parse decodes an in-memory document.
func Parse(data []byte) (*domain.Node, error) {
	return Decode(context.Background(), bytes.NewReader(data))
}

// Decode builds the node tree from the first element of r.
// Character data, comments and processing instructions are dropped; namespaces are ignored.
func Decode(ctx context.Context, r io.Reader) (*domain.Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *domain.Node
		stack []*domain.Node
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := newNode(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements (<%s> after <%s>)", node.Tag, root.Tag)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, domain.ErrEmptyDocument
	}
	return root, nil
}

func newNode(start xml.StartElement) *domain.Node {
	var attrs map[string]string
	if len(start.Attr) > 0 {
		attrs = make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
				continue
			}
			attrs[a.Name.Local] = a.Value
		}
	}
	return &domain.Node{Tag: start.Name.Local, Attrs: attrs}
}
