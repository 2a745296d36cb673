// Package snapshot defines the rendered-document snapshot the extractor
// consumes. The headless-browser layer is an external collaborator: it walks
// the live page, reads computed styles and box geometry, and dumps this tree
// as JSON. The package also carries a crude static-HTML builder for offline
// runs and tests.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"html2figma/css"
)

// TextTag marks a text run in the element tree.
const TextTag = "#text"

// Rect is an absolute bounding box in page coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pseudo is the computed state of a ::before or ::after pseudo-element.
type Pseudo struct {
	Content string    `json:"content"`
	Style   css.Style `json:"style,omitempty"`
}

// Element is one node of the rendered document: either a real element or a
// text run (Tag == TextTag). Style is the computed-style snapshot taken at
// capture time; parsers never look anything up beyond it.
type Element struct {
	Tag     string            `json:"tag"`
	ID      string            `json:"id,omitempty"`
	Classes []string          `json:"classes,omitempty"`
	Text    string            `json:"text,omitempty"`
	Attr    map[string]string `json:"attr,omitempty"`
	SVG     string            `json:"svg,omitempty"`
	Style   css.Style         `json:"style,omitempty"`
	Rect    Rect              `json:"rect"`
	Before  *Pseudo           `json:"before,omitempty"`
	After   *Pseudo           `json:"after,omitempty"`

	Children []*Element `json:"children,omitempty"`
}

// IsText reports whether the element is a text run.
func (e *Element) IsText() bool { return e.Tag == TextTag }

// GetAttr returns an attribute recorded at capture time.
func (e *Element) GetAttr(name string) string {
	return e.Attr[name]
}

// RenderedText concatenates the rendered text of the element's subtree in
// document order.
func (e *Element) RenderedText() string {
	var b strings.Builder
	var walk func(*Element)
	walk = func(el *Element) {
		if el.IsText() {
			b.WriteString(el.Text)
			return
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(e)
	return strings.TrimSpace(b.String())
}

// Name derives a human-readable node name from tag, id and classes. Names
// are not unique, they only help navigating the produced layer tree.
func (e *Element) Name() string {
	if e.IsText() {
		return "text"
	}
	var b strings.Builder
	b.WriteString(e.Tag)
	if e.ID != "" {
		b.WriteByte('#')
		b.WriteString(e.ID)
	}
	for _, c := range e.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}

// Page is a complete capture of one rendered document.
type Page struct {
	Title          string   `json:"title"`
	ViewportWidth  float64  `json:"viewportWidth"`
	ViewportHeight float64  `json:"viewportHeight"`
	FullHeight     float64  `json:"fullHeight"`
	Root           *Element `json:"root"`
}

// ReadPage decodes a captured page from JSON produced by the browser driver.
func ReadPage(r io.Reader) (*Page, error) {
	var p Page
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("unable to decode snapshot: %w", err)
	}
	if p.Root == nil {
		return nil, fmt.Errorf("snapshot has no root element")
	}
	return &p, nil
}

// WriteTo serializes the page as indented JSON, implementing io.WriterTo.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("unable to encode snapshot: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}
