package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"html2figma/css"
)

// FromHTML builds a snapshot from static HTML without a browser. Only inline
// style attributes are honored and geometry is approximated by naive vertical
// block stacking: good enough for fixtures and offline smoke runs, not a
// layout engine. Real captures come from the headless driver.
func FromHTML(r io.Reader, viewportW, viewportH float64) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}

	body := findElement(root, "body")
	if body == nil {
		return nil, fmt.Errorf("document has no body")
	}

	el := buildElement(body)
	layout(el, 0, 0, viewportW)

	page := &Page{
		Title:          strings.TrimSpace(titleOf(root)),
		ViewportWidth:  viewportW,
		ViewportHeight: viewportH,
		FullHeight:     max(el.Rect.Height, viewportH),
		Root:           el,
	}
	return page, nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func titleOf(root *html.Node) string {
	if t := findElement(root, "title"); t != nil && t.FirstChild != nil {
		return t.FirstChild.Data
	}
	return ""
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// buildElement converts an html.Node subtree into a snapshot element tree.
// Whitespace-only text runs are dropped the way a renderer collapses them.
func buildElement(n *html.Node) *Element {
	el := &Element{
		Tag:   strings.ToLower(n.Data),
		ID:    attrValue(n, "id"),
		Style: parseInlineStyle(attrValue(n, "style")),
	}
	if cls := strings.Fields(attrValue(n, "class")); len(cls) > 0 {
		el.Classes = cls
	}
	for _, name := range [...]string{"src", "alt", "poster"} {
		if v := attrValue(n, name); v != "" {
			if el.Attr == nil {
				el.Attr = make(map[string]string)
			}
			el.Attr[name] = v
		}
	}

	if el.Tag == "svg" {
		var buf bytes.Buffer
		if err := html.Render(&buf, n); err == nil {
			el.SVG = buf.String()
		}
		return el
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			el.Children = append(el.Children, &Element{Tag: TextTag, Text: c.Data})
		case html.ElementNode:
			switch strings.ToLower(c.Data) {
			case "script", "style", "head", "noscript", "template":
				continue
			}
			el.Children = append(el.Children, buildElement(c))
		}
	}
	return el
}

// parseInlineStyle splits a style attribute into a computed-style snapshot.
// No cascading, no shorthand expansion beyond what the parsers understand.
func parseInlineStyle(style string) css.Style {
	if strings.TrimSpace(style) == "" {
		return nil
	}
	st := make(css.Style)
	for _, decl := range strings.Split(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		st[name] = strings.TrimSpace(value)
	}
	return st
}

// layout assigns block-stacked rectangles: every element spans the parent
// width unless an explicit pixel width is set, children stack vertically.
func layout(el *Element, x, y, parentWidth float64) float64 {
	if el.IsText() {
		el.Rect = Rect{X: x, Y: y, Width: parentWidth, Height: 18}
		return el.Rect.Height
	}

	width := el.Style.PxOr("width", parentWidth)
	childY := y
	for _, c := range el.Children {
		childY += layout(c, x, childY, width)
	}

	height := childY - y
	if h, ok := el.Style.Px("height"); ok {
		height = h
	}
	if fs, ok := el.Style.Px("font-size"); ok && height < fs {
		height = fs * 1.5
	}
	el.Rect = Rect{X: x, Y: y, Width: width, Height: height}
	return height
}
