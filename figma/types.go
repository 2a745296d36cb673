// Package figma defines the intermediate representation produced by the
// extractor and consumed by the materializer: a typed scene tree with paints,
// effects and text styling close to the Figma node model. The JSON encoding of
// Document is the only contract between the two sides and must stay stable.
package figma

// NodeType discriminates scene-tree nodes.
type NodeType string

const (
	NodeFrame NodeType = "FRAME"
	NodeText  NodeType = "TEXT"
	NodeSVG   NodeType = "SVG"
	NodeImage NodeType = "IMAGE"
)

// PaintType discriminates fill/stroke primitives.
type PaintType string

const (
	PaintSolid          PaintType = "SOLID"
	PaintGradientLinear PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial PaintType = "GRADIENT_RADIAL"
)

// EffectType discriminates shadow primitives.
type EffectType string

const (
	EffectDropShadow  EffectType = "DROP_SHADOW"
	EffectInnerShadow EffectType = "INNER_SHADOW"
)

// Stroke alignment values. CSS borders are drawn inside the element box, so
// the extractor always emits StrokeAlignInside.
const (
	StrokeAlignInside  = "INSIDE"
	StrokeAlignOutside = "OUTSIDE"
	StrokeAlignCenter  = "CENTER"
)

// Horizontal text alignment values.
const (
	TextAlignLeft      = "LEFT"
	TextAlignCenter    = "CENTER"
	TextAlignRight     = "RIGHT"
	TextAlignJustified = "JUSTIFIED"
)

// Text decoration values.
const (
	DecorationNone          = "NONE"
	DecorationUnderline     = "UNDERLINE"
	DecorationStrikethrough = "STRIKETHROUGH"
)

// Color is an RGBA color with channels on the 0-1 scale.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Vector is a 2D point. Gradient handle positions are expressed in the unit
// square of the node being painted.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GradientStop is a single color stop. Position is always within [0,1];
// monotonicity across stops is the producer's responsibility.
type GradientStop struct {
	Color    Color   `json:"color"`
	Position float64 `json:"position"`
}

// Paint is a tagged union over PaintType: solid paints use Color and Opacity,
// gradient paints use GradientStops and GradientHandlePositions (start, end,
// width-axis).
type Paint struct {
	Type                    PaintType      `json:"type"`
	Color                   *Color         `json:"color,omitempty"`
	Opacity                 float64        `json:"opacity,omitempty"`
	GradientStops           []GradientStop `json:"gradientStops,omitempty"`
	GradientHandlePositions []Vector       `json:"gradientHandlePositions,omitempty"`
}

// SolidPaint is a convenience constructor for an opaque-channel solid paint.
func SolidPaint(c Color) Paint {
	opacity := c.A
	c.A = 1
	return Paint{Type: PaintSolid, Color: &c, Opacity: opacity}
}

// Effect is a drop or inner shadow.
type Effect struct {
	Type    EffectType `json:"type"`
	Color   Color      `json:"color"`
	Offset  Vector     `json:"offset"`
	Radius  float64    `json:"radius"`
	Spread  float64    `json:"spread,omitempty"`
	Visible bool       `json:"visible"`
}

// LineHeight is either automatic or a pixel value.
type LineHeight struct {
	Unit  string  `json:"unit"` // "AUTO" or "PIXELS"
	Value float64 `json:"value,omitempty"`
}

// LineHeightAuto marks line-height resolved from the font metrics.
func LineHeightAuto() *LineHeight { return &LineHeight{Unit: "AUTO"} }

// LineHeightPx marks an explicit pixel line-height.
func LineHeightPx(px float64) *LineHeight {
	return &LineHeight{Unit: "PIXELS", Value: px}
}

// FontName identifies a font the way Figma does: family plus named style
// ("Inter" / "Bold Italic").
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Node is the central IR entity, a tagged union over Type. Offsets are
// relative to the immediate parent's origin; the root node keeps document
// coordinates. Width and height are never below 1.
type Node struct {
	Type NodeType `json:"type"`
	Name string   `json:"name"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Opacity is nil when fully opaque. A pointer keeps opacity zero on the
	// wire, omitempty would swallow it.
	Opacity *float64 `json:"opacity,omitempty"`

	Fills        []Paint `json:"fills,omitempty"`
	Strokes      []Paint `json:"strokes,omitempty"`
	StrokeWeight float64 `json:"strokeWeight,omitempty"`
	StrokeAlign  string  `json:"strokeAlign,omitempty"`

	TopLeftRadius     float64 `json:"topLeftRadius,omitempty"`
	TopRightRadius    float64 `json:"topRightRadius,omitempty"`
	BottomRightRadius float64 `json:"bottomRightRadius,omitempty"`
	BottomLeftRadius  float64 `json:"bottomLeftRadius,omitempty"`

	Effects []Effect `json:"effects,omitempty"`

	// Children is meaningful for FRAME nodes only; order is DOM order and
	// defines paint order in the materialized scene.
	Children []*Node `json:"children,omitempty"`

	// TEXT fields.
	Characters          string      `json:"characters,omitempty"`
	FontSize            float64     `json:"fontSize,omitempty"`
	FontFamily          string      `json:"fontFamily,omitempty"`
	FigmaFontStyle      string      `json:"figmaFontStyle,omitempty"`
	LineHeight          *LineHeight `json:"lineHeight,omitempty"`
	LetterSpacing       float64     `json:"letterSpacing,omitempty"`
	TextAlignHorizontal string      `json:"textAlignHorizontal,omitempty"`
	TextDecoration      string      `json:"textDecoration,omitempty"`
	// BackgroundFills paints the container behind the text, distinct from
	// the text-color Fills. Buttons and badges produce both.
	BackgroundFills []Paint `json:"backgroundFills,omitempty"`

	// SVG fields. Markup is opaque to the IR.
	SVGContent string `json:"svgContent,omitempty"`

	// IMAGE fields. Base64 payload takes precedence over the URL.
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty"`

	// FRAME background image that could not be expressed as a gradient.
	// The base64 payload is filled in by extraction-time asset inlining
	// and, like ImageBase64, takes precedence over the URL.
	BackgroundImageURL    string `json:"backgroundImageUrl,omitempty"`
	BackgroundImageBase64 string `json:"backgroundImageBase64,omitempty"`
}

// HasCornerRadius reports whether any corner radius is set.
func (n *Node) HasCornerRadius() bool {
	return n.TopLeftRadius > 0 || n.TopRightRadius > 0 ||
		n.BottomRightRadius > 0 || n.BottomLeftRadius > 0
}

// NeedsTextContainer reports whether a TEXT node carries container-only
// properties (background, border, corner radius or shadow) and therefore has
// to be wrapped into a frame when materialized.
func (n *Node) NeedsTextContainer() bool {
	if n.Type != NodeText {
		return false
	}
	return len(n.BackgroundFills) > 0 || len(n.Strokes) > 0 ||
		n.HasCornerRadius() || len(n.Effects) > 0
}

// Walk visits n and its descendants depth-first in child order. It stops early
// when fn returns false for a node, skipping that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool { total++; return true })
	return total
}
