package figma

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is the IR produced by one extraction run. It owns its node tree
// outright: no node is shared or referenced twice. The document is immutable
// once written out.
type Document struct {
	PageTitle      string  `json:"pageTitle"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
	FullHeight     float64 `json:"fullHeight"`
	Root           *Node   `json:"rootNode"`
}

// ErrNoRoot is returned when a document has no root node. This is the only
// fatal input condition: the materializer refuses to touch the target scene.
var ErrNoRoot = errors.New("document has no root node")

// Validate checks the document for structural problems which would make
// materialization impossible. Per-node styling problems are not validated
// here, they degrade locally during materialization.
func (d *Document) Validate() error {
	if d == nil || d.Root == nil {
		return ErrNoRoot
	}
	var err error
	d.Root.Walk(func(n *Node) bool {
		switch n.Type {
		case NodeFrame, NodeText, NodeSVG, NodeImage:
			return true
		default:
			err = fmt.Errorf("node %q has unknown type %q", n.Name, n.Type)
			return false
		}
	})
	return err
}

// CountNodes returns the total number of nodes in the document tree.
func (d *Document) CountNodes() int {
	if d == nil || d.Root == nil {
		return 0
	}
	return d.Root.Count()
}

// WriteTo serializes the document as indented UTF-8 JSON, implementing
// io.WriterTo. This is the wire format shared with the materializer.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("unable to encode document: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadDocument parses a JSON document and validates its structure.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
