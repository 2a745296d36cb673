// Package extract walks a rendered-document snapshot and produces the IR
// document: a single depth-first pass which gates invisible elements,
// classifies the rest into typed nodes and parses their computed styles into
// structured paints and effects.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"html2figma/css"
	"html2figma/figma"
	"html2figma/snapshot"
)

// inlineTags is the allow-list of formatting tags which keep an element a
// text candidate. An element whose children are all text runs or these tags
// becomes one TEXT node instead of a frame.
var inlineTags = map[string]bool{
	"span": true, "strong": true, "em": true, "b": true, "i": true,
	"a": true, "code": true, "small": true, "sub": true, "sup": true,
	"mark": true, "u": true, "s": true, "br": true,
}

// cssURLRe extracts the url() reference from a computed background-image
// value.
var cssURLRe = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"']*))\s*\)`)

// Extractor converts snapshots to IR documents.
type Extractor struct {
	log *zap.Logger
}

// New creates an extractor.
func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log.Named("extract")}
}

// Document converts a captured page into an IR document. It fails only when
// the page has no visible root; per-element style problems degrade to "no
// paint" locally.
func (e *Extractor) Document(page *snapshot.Page) (*figma.Document, error) {
	if page == nil || page.Root == nil {
		return nil, fmt.Errorf("snapshot has no root element")
	}

	root := e.element(page.Root, nil)
	if root == nil {
		return nil, fmt.Errorf("root element %q is not visible", page.Root.Name())
	}

	doc := &figma.Document{
		PageTitle:      page.Title,
		ViewportWidth:  page.ViewportWidth,
		ViewportHeight: page.ViewportHeight,
		FullHeight:     page.FullHeight,
		Root:           root,
	}
	e.log.Debug("Extraction finished",
		zap.String("title", doc.PageTitle), zap.Int("nodes", doc.CountNodes()))
	return doc, nil
}

// element converts one snapshot element (and, for frames, its subtree) into
// an IR node. It returns nil for pruned elements: invisible ones and bare
// text runs, which contribute to their parent's TEXT decision instead.
func (e *Extractor) element(el, parent *snapshot.Element) *figma.Node {
	if el.IsText() {
		return nil
	}
	if !visible(el) {
		e.log.Debug("Pruning invisible element", zap.String("name", el.Name()))
		return nil
	}

	n := &figma.Node{Name: el.Name()}
	e.geometry(n, el, parent)

	switch {
	case el.Tag == "svg":
		n.Type = figma.NodeSVG
		n.SVGContent = NormalizeSVG(el.SVG, e.log)

	case el.Tag == "img":
		n.Type = figma.NodeImage
		n.ImageURL = el.GetAttr("src")
		if alt := strings.TrimSpace(el.GetAttr("alt")); alt != "" {
			n.Name = n.Name + " " + alt
		}

	case el.Tag == "video" && el.GetAttr("poster") != "":
		n.Type = figma.NodeImage
		n.ImageURL = el.GetAttr("poster")

	case isTextElement(el):
		n.Type = figma.NodeText
		e.captureText(n, el)

	default:
		n.Type = figma.NodeFrame
		e.captureFrame(n, el)
		for _, c := range el.Children {
			if child := e.element(c, el); child != nil {
				n.Children = append(n.Children, child)
			}
		}
		e.appendPseudo(n, el)
	}

	if op := parseOpacity(el.Style.Get("opacity")); op < 1 {
		n.Opacity = &op
	}
	return n
}

// visible implements the visibility gate: display:none, visibility:hidden
// and zero-area elements are pruned together with their subtrees.
func visible(el *snapshot.Element) bool {
	if strings.EqualFold(el.Style.Get("display"), "none") {
		return false
	}
	if strings.EqualFold(el.Style.Get("visibility"), "hidden") {
		return false
	}
	if el.Rect.Width == 0 && el.Rect.Height == 0 {
		return false
	}
	return true
}

// geometry records the offset relative to the parent's origin and the
// clamped size. The root node keeps document coordinates.
func (e *Extractor) geometry(n *figma.Node, el, parent *snapshot.Element) {
	n.X, n.Y = el.Rect.X, el.Rect.Y
	if parent != nil {
		n.X -= parent.Rect.X
		n.Y -= parent.Rect.Y
	}
	n.Width = figma.ClampSize(el.Rect.Width)
	n.Height = figma.ClampSize(el.Rect.Height)
}

// isTextElement reports whether every child is a text run or an allow-listed
// inline tag and the element renders non-empty text.
func isTextElement(el *snapshot.Element) bool {
	for _, c := range el.Children {
		if c.IsText() {
			continue
		}
		if !inlineTags[c.Tag] {
			return false
		}
	}
	return el.RenderedText() != ""
}

// backgroundPaints parses background-color and background-image into a fill
// stack (solid below gradient) and reports the literal image URL when the
// value was not a gradient - a parsed gradient and a literal image cannot
// both come out of one background-image value.
func backgroundPaints(st css.Style) (fills []figma.Paint, imageURL string) {
	if c := css.ParseColor(st.Get("background-color")); c != nil {
		fills = append(fills, figma.SolidPaint(*c))
	}
	bgImage := st.Get("background-image")
	if g := css.ParseGradient(bgImage); g != nil {
		fills = append(fills, *g)
	} else if m := cssURLRe.FindStringSubmatch(bgImage); m != nil {
		if imageURL = m[1]; imageURL == "" {
			imageURL = m[2]
		}
	}
	return fills, imageURL
}

// captureFrame records container styling: fill stack, border aggregate,
// corner radii and shadows.
func (e *Extractor) captureFrame(n *figma.Node, el *snapshot.Element) {
	n.Fills, n.BackgroundImageURL = backgroundPaints(el.Style)
	applyBorder(n, el.Style)
	applyRadii(n, el.Style)
	n.Effects = css.ParseBoxShadow(el.Style.Get("box-shadow"))
}

// captureText records typography plus the optional container styling a text
// element may carry (buttons et al. have both text color and a background).
func (e *Extractor) captureText(n *figma.Node, el *snapshot.Element) {
	st := el.Style
	n.Characters = el.RenderedText()

	if c := css.ParseColor(st.Get("color")); c != nil {
		n.Fills = []figma.Paint{figma.SolidPaint(*c)}
	}
	n.FontSize = st.PxOr("font-size", 16)
	n.FontFamily = css.ParseFontFamily(st.Get("font-family"))
	italic := strings.Contains(strings.ToLower(st.Get("font-style")), "italic") ||
		strings.Contains(strings.ToLower(st.Get("font-style")), "oblique")
	n.FigmaFontStyle = css.FontStyleName(css.ParseFontWeight(st.Get("font-weight")), italic)
	n.LineHeight = css.ParseLineHeight(st.Get("line-height"))
	n.LetterSpacing = css.ParseLetterSpacing(st.Get("letter-spacing"))
	n.TextAlignHorizontal = css.ParseTextAlign(st.Get("text-align"))
	n.TextDecoration = css.ParseTextDecoration(textDecorationValue(st))

	n.BackgroundFills, _ = backgroundPaints(st)
	applyBorder(n, st)
	applyRadii(n, st)
	n.Effects = css.ParseBoxShadow(st.Get("box-shadow"))
}

func textDecorationValue(st css.Style) string {
	if v := st.Get("text-decoration-line"); v != "" {
		return v
	}
	return st.Get("text-decoration")
}

func applyBorder(n *figma.Node, st css.Style) {
	if b := css.ParseBorders(st); b != nil {
		n.Strokes = []figma.Paint{figma.SolidPaint(b.Color)}
		n.StrokeWeight = b.Weight
		n.StrokeAlign = figma.StrokeAlignInside
	}
}

func applyRadii(n *figma.Node, st css.Style) {
	r := css.ParseCornerRadii(st)
	n.TopLeftRadius = r.TopLeft
	n.TopRightRadius = r.TopRight
	n.BottomRightRadius = r.BottomRight
	n.BottomLeftRadius = r.BottomLeft
}

// appendPseudo synthesizes TEXT nodes for ::before/::after pseudo-elements
// with real generated content. They are appended to the children sequence,
// positioned at the parent's origin with heuristic sizing.
func (e *Extractor) appendPseudo(n *figma.Node, el *snapshot.Element) {
	for _, p := range [...]struct {
		pseudo *snapshot.Pseudo
		suffix string
	}{
		{el.Before, "::before"},
		{el.After, "::after"},
	} {
		if p.pseudo == nil {
			continue
		}
		content := pseudoContent(p.pseudo.Content)
		if content == "" {
			continue
		}

		st := p.pseudo.Style
		fontSize := st.PxOr("font-size", el.Style.PxOr("font-size", 16))
		child := &figma.Node{
			Type:       figma.NodeText,
			Name:       el.Name() + p.suffix,
			Characters: content,
			FontSize:   fontSize,
			FontFamily: css.ParseFontFamily(st.Get("font-family")),
			Width:      figma.ClampSize(st.PxOr("width", n.Width)),
			Height:     figma.ClampSize(st.PxOr("height", fontSize*1.5)),
		}
		if child.FontFamily == "" {
			child.FontFamily = css.ParseFontFamily(el.Style.Get("font-family"))
		}
		child.FigmaFontStyle = css.FontStyleName(css.ParseFontWeight(st.Get("font-weight")), false)
		if c := css.ParseColor(st.Get("color")); c != nil {
			child.Fills = []figma.Paint{figma.SolidPaint(*c)}
		}
		n.Children = append(n.Children, child)
	}
}

// pseudoContent unwraps a computed content value. Empty strings and the
// none/normal keywords produce no node.
func pseudoContent(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "", "none", "normal", `""`, "''":
		return ""
	}
	return strings.Trim(v, `"'`)
}

func parseOpacity(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 1
	}
	var op float64
	if _, err := fmt.Sscanf(v, "%g", &op); err != nil {
		return 1
	}
	if op < 0 {
		return 0
	}
	if op > 1 {
		return 1
	}
	return op
}
