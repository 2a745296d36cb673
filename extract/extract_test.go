package extract_test

import (
	"encoding/json"
	"strings"
	"testing"

	"html2figma/css"
	"html2figma/extract"
	"html2figma/figma"
	"html2figma/snapshot"
)

func textRun(s string) *snapshot.Element {
	return &snapshot.Element{Tag: snapshot.TextTag, Text: s}
}

func page(root *snapshot.Element) *snapshot.Page {
	return &snapshot.Page{
		Title:          "Test",
		ViewportWidth:  1280,
		ViewportHeight: 800,
		FullHeight:     1600,
		Root:           root,
	}
}

func extractDoc(t *testing.T, p *snapshot.Page) *figma.Document {
	t.Helper()
	doc, err := extract.New(nil).Document(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestDocumentClassification(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 1600},
		Children: []*snapshot.Element{
			{
				Tag:      "p",
				Rect:     snapshot.Rect{X: 10, Y: 20, Width: 400, Height: 24},
				Style:    css.Style{"color": "rgb(0, 0, 0)", "font-size": "18px"},
				Children: []*snapshot.Element{textRun("Hello "), {Tag: "strong", Children: []*snapshot.Element{textRun("world")}}},
			},
			{
				Tag:  "img",
				Rect: snapshot.Rect{Y: 60, Width: 100, Height: 100},
				Attr: map[string]string{"src": "https://example.com/a.png", "alt": "logo"},
			},
			{
				Tag:  "svg",
				Rect: snapshot.Rect{Y: 180, Width: 24, Height: 24},
				SVG:  `<svg viewBox="0 0 24 24"><circle cx="12" cy="12" r="10"/></svg>`,
			},
			{
				Tag:      "div",
				Rect:     snapshot.Rect{Y: 220, Width: 300, Height: 80},
				Style:    css.Style{"background-color": "rgb(255, 0, 0)"},
				Children: []*snapshot.Element{{Tag: "div", Rect: snapshot.Rect{Y: 220, Width: 300, Height: 40}}},
			},
		},
	}

	doc := extractDoc(t, page(root))
	if doc.Root.Type != figma.NodeFrame {
		t.Fatalf("root type = %q, want FRAME", doc.Root.Type)
	}
	if len(doc.Root.Children) != 4 {
		t.Fatalf("root has %d children, want 4", len(doc.Root.Children))
	}

	text := doc.Root.Children[0]
	if text.Type != figma.NodeText {
		t.Errorf("p classified as %q, want TEXT", text.Type)
	}
	if text.Characters != "Hello world" {
		t.Errorf("characters = %q, want %q", text.Characters, "Hello world")
	}
	if text.FontSize != 18 {
		t.Errorf("fontSize = %g, want 18", text.FontSize)
	}

	img := doc.Root.Children[1]
	if img.Type != figma.NodeImage {
		t.Errorf("img classified as %q, want IMAGE", img.Type)
	}
	if img.ImageURL != "https://example.com/a.png" {
		t.Errorf("imageUrl = %q", img.ImageURL)
	}
	if !strings.Contains(img.Name, "logo") {
		t.Errorf("img name %q does not carry alt text", img.Name)
	}

	svg := doc.Root.Children[2]
	if svg.Type != figma.NodeSVG {
		t.Errorf("svg classified as %q, want SVG", svg.Type)
	}
	if !strings.Contains(svg.SVGContent, "http://www.w3.org/2000/svg") {
		t.Errorf("svg markup not normalized: %q", svg.SVGContent)
	}

	frame := doc.Root.Children[3]
	if frame.Type != figma.NodeFrame {
		t.Errorf("div classified as %q, want FRAME", frame.Type)
	}
	if len(frame.Fills) != 1 || frame.Fills[0].Color == nil || frame.Fills[0].Color.R != 1 {
		t.Errorf("frame fills = %+v, want solid red", frame.Fills)
	}
}

func TestDocumentVisibilityGate(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{Tag: "div", ID: "hidden", Rect: snapshot.Rect{Width: 100, Height: 100}, Style: css.Style{"display": "none"}},
			{Tag: "div", ID: "invis", Rect: snapshot.Rect{Width: 100, Height: 100}, Style: css.Style{"visibility": "hidden"}},
			{Tag: "div", ID: "zero", Rect: snapshot.Rect{Width: 0, Height: 0}},
			{Tag: "div", ID: "hairline", Rect: snapshot.Rect{Width: 120, Height: 0}},
			{Tag: "div", ID: "kept", Rect: snapshot.Rect{Width: 100, Height: 100}},
		},
	}

	doc := extractDoc(t, page(root))
	if len(doc.Root.Children) != 2 {
		t.Fatalf("root has %d children, want 2 (hairline and kept)", len(doc.Root.Children))
	}
	// zero in one dimension only survives with the size clamped
	if hr := doc.Root.Children[0]; hr.Height != 1 {
		t.Errorf("hairline height = %g, want clamped 1", hr.Height)
	}
	if kept := doc.Root.Children[1]; !strings.Contains(kept.Name, "kept") {
		t.Errorf("survivor is %q, want div#kept", kept.Name)
	}
}

func TestDocumentInvisibleRoot(t *testing.T) {
	root := &snapshot.Element{Tag: "body", Style: css.Style{"display": "none"}}
	if _, err := extract.New(nil).Document(page(root)); err == nil {
		t.Fatal("expected an error for an invisible root")
	}
}

func TestDocumentRelativeGeometry(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{X: 0, Y: 0, Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{
				Tag:  "div",
				Rect: snapshot.Rect{X: 100, Y: 200, Width: 400, Height: 300},
				Children: []*snapshot.Element{
					{Tag: "div", Rect: snapshot.Rect{X: 130, Y: 250, Width: 100, Height: 50}},
				},
			},
		},
	}

	doc := extractDoc(t, page(root))
	outer := doc.Root.Children[0]
	if outer.X != 100 || outer.Y != 200 {
		t.Errorf("outer at (%g,%g), want (100,200)", outer.X, outer.Y)
	}
	inner := outer.Children[0]
	if inner.X != 30 || inner.Y != 50 {
		t.Errorf("inner at (%g,%g), want parent-relative (30,50)", inner.X, inner.Y)
	}
}

func TestDocumentTextStyling(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{
				Tag:  "a",
				Rect: snapshot.Rect{Width: 120, Height: 20},
				Style: css.Style{
					"color":                "rgb(0, 0, 255)",
					"font-size":            "14px",
					"font-family":          `"Fira Sans", sans-serif`,
					"font-style":           "italic",
					"font-weight":          "700",
					"line-height":          "21px",
					"letter-spacing":       "0.5px",
					"text-align":           "center",
					"text-decoration-line": "underline",
				},
				Children: []*snapshot.Element{textRun("link")},
			},
			{
				Tag:  "div",
				Rect: snapshot.Rect{Y: 40, Width: 1280, Height: 200},
				Style: css.Style{
					"background-color": "rgb(240, 240, 240)",
				},
			},
		},
	}

	doc := extractDoc(t, page(root))
	if len(doc.Root.Children) < 2 {
		t.Fatalf("expected 2 children under body, got %d", len(doc.Root.Children))
	}
	n := doc.Root.Children[0]
	if n.Type != figma.NodeText {
		t.Fatalf("a classified as %q, want TEXT", n.Type)
	}
	if n.FontFamily != "Fira Sans" {
		t.Errorf("fontFamily = %q, want Fira Sans", n.FontFamily)
	}
	if n.FigmaFontStyle != "Bold Italic" {
		t.Errorf("figmaFontStyle = %q, want Bold Italic", n.FigmaFontStyle)
	}
	if n.LineHeight == nil || n.LineHeight.Unit != "PIXELS" || n.LineHeight.Value != 21 {
		t.Errorf("lineHeight = %+v, want 21px", n.LineHeight)
	}
	if n.LetterSpacing != 0.5 {
		t.Errorf("letterSpacing = %g, want 0.5", n.LetterSpacing)
	}
	if n.TextAlignHorizontal != figma.TextAlignCenter {
		t.Errorf("textAlign = %q, want CENTER", n.TextAlignHorizontal)
	}
	if n.TextDecoration != figma.DecorationUnderline {
		t.Errorf("textDecoration = %q, want UNDERLINE", n.TextDecoration)
	}
	if len(n.Fills) != 1 || n.Fills[0].Color == nil || n.Fills[0].Color.B != 1 {
		t.Errorf("fills = %+v, want solid blue", n.Fills)
	}
}

func TestDocumentButtonKeepsBackground(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{
				Tag:  "button",
				Rect: snapshot.Rect{Width: 120, Height: 40},
				Style: css.Style{
					"color":                  "rgb(255, 255, 255)",
					"background-color":       "rgb(0, 100, 200)",
					"border-top-left-radius": "8px",
				},
				Children: []*snapshot.Element{textRun("Submit")},
			},
		},
	}

	doc := extractDoc(t, page(root))
	n := doc.Root.Children[0]
	if n.Type != figma.NodeText {
		t.Fatalf("button classified as %q, want TEXT", n.Type)
	}
	if len(n.BackgroundFills) != 1 {
		t.Fatalf("backgroundFills = %+v, want the button background", n.BackgroundFills)
	}
	if len(n.Fills) != 1 || n.Fills[0].Color == nil || n.Fills[0].Color.R != 1 {
		t.Errorf("fills = %+v, want white text color", n.Fills)
	}
	if !n.NeedsTextContainer() {
		t.Error("button must require a text container")
	}
}

func TestDocumentGradientBackground(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{
				Tag:  "div",
				Rect: snapshot.Rect{Width: 400, Height: 200},
				Style: css.Style{
					"background-color": "rgb(255, 255, 255)",
					"background-image": "linear-gradient(90deg, rgb(255, 0, 0), rgb(0, 0, 255))",
				},
			},
			{
				Tag:  "div",
				Rect: snapshot.Rect{Y: 200, Width: 400, Height: 200},
				Style: css.Style{
					"background-image": `url("https://example.com/bg.png")`,
				},
			},
		},
	}

	doc := extractDoc(t, page(root))

	grad := doc.Root.Children[0]
	if len(grad.Fills) != 2 {
		t.Fatalf("fills = %+v, want solid below gradient", grad.Fills)
	}
	if grad.Fills[0].Type != figma.PaintSolid || grad.Fills[1].Type != figma.PaintGradientLinear {
		t.Errorf("fill stack order = %q, %q", grad.Fills[0].Type, grad.Fills[1].Type)
	}
	if grad.BackgroundImageURL != "" {
		t.Errorf("gradient background kept image URL %q", grad.BackgroundImageURL)
	}

	img := doc.Root.Children[1]
	if img.BackgroundImageURL != "https://example.com/bg.png" {
		t.Errorf("backgroundImageUrl = %q", img.BackgroundImageURL)
	}
}

func TestDocumentPseudoElements(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{
				Tag:    "div",
				Rect:   snapshot.Rect{Width: 200, Height: 50},
				Before: &snapshot.Pseudo{Content: `"* "`, Style: css.Style{"color": "rgb(255, 0, 0)", "font-size": "12px"}},
				After:  &snapshot.Pseudo{Content: "none"},
				Children: []*snapshot.Element{
					{Tag: "div", Rect: snapshot.Rect{Width: 200, Height: 50}},
				},
			},
		},
	}

	doc := extractDoc(t, page(root))
	div := doc.Root.Children[0]
	if len(div.Children) != 2 {
		t.Fatalf("div has %d children, want real child plus ::before", len(div.Children))
	}

	pseudo := div.Children[1]
	if pseudo.Type != figma.NodeText || pseudo.Characters != "* " {
		t.Errorf("pseudo node = %+v", pseudo)
	}
	if !strings.HasSuffix(pseudo.Name, "::before") {
		t.Errorf("pseudo name = %q", pseudo.Name)
	}
	if pseudo.FontSize != 12 {
		t.Errorf("pseudo fontSize = %g, want 12", pseudo.FontSize)
	}
}

func TestDocumentOpacity(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{Tag: "div", Rect: snapshot.Rect{Width: 10, Height: 10}, Style: css.Style{"opacity": "0.35"}},
			{Tag: "div", Rect: snapshot.Rect{Width: 10, Height: 10}, Style: css.Style{"opacity": "1"}},
			{Tag: "div", Rect: snapshot.Rect{Width: 10, Height: 10}, Style: css.Style{"opacity": "0"}},
		},
	}

	doc := extractDoc(t, page(root))
	if op := doc.Root.Children[0].Opacity; op == nil || *op != 0.35 {
		t.Errorf("opacity = %v, want 0.35", op)
	}
	// fully opaque is recorded as absent
	if op := doc.Root.Children[1].Opacity; op != nil {
		t.Errorf("opaque node carries opacity %g", *op)
	}
	// fully transparent must survive the wire: zero is a value, not absence
	if op := doc.Root.Children[2].Opacity; op == nil || *op != 0 {
		t.Errorf("opacity = %v, want 0", op)
	}
	data, err := json.Marshal(doc.Root.Children[2])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"opacity":0`) {
		t.Errorf("transparent node serialized without opacity: %s", data)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	root := &snapshot.Element{
		Tag:  "body",
		Rect: snapshot.Rect{Width: 1280, Height: 800},
		Children: []*snapshot.Element{
			{
				Tag:      "p",
				Rect:     snapshot.Rect{Width: 100, Height: 20},
				Children: []*snapshot.Element{textRun("hi")},
			},
		},
	}

	doc := extractDoc(t, page(root))

	var buf strings.Builder
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := figma.ReadDocument(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.CountNodes() != doc.CountNodes() {
		t.Errorf("round trip changed node count: %d -> %d", doc.CountNodes(), back.CountNodes())
	}
	if back.Root.Children[0].Characters != "hi" {
		t.Errorf("round trip lost characters")
	}
}
