// Package canvas defines the node-construction capability surface of the
// host design tool. The materializer only ever talks to these interfaces; an
// implementation may proxy a real Figma plugin bridge or, like the in-memory
// one shipped here, record the scene for dry runs and tests.
package canvas

import (
	"context"
	"errors"

	"html2figma/figma"
)

// ErrFontUnavailable is returned by ResolveFont when the host environment
// cannot load the requested family/style combination.
var ErrFontUnavailable = errors.New("font unavailable")

// ImageRef is an opaque handle to image bytes registered with the host tool.
type ImageRef string

// Node is a constructed scene node. Setters mutate the node in place; a node
// is expected to be fully styled before it is attached to a parent.
type Node interface {
	SetName(name string)
	Move(x, y float64)
	Resize(w, h float64)
	SetOpacity(opacity float64)
	SetFills(fills []figma.Paint)
	SetStrokes(strokes []figma.Paint, weight float64, align string)
	SetCornerRadii(topLeft, topRight, bottomRight, bottomLeft float64)
	SetEffects(effects []figma.Effect)
}

// Container is a node that can hold children.
type Container interface {
	Node
	SetClipsContent(clip bool)
}

// Text is a text primitive. SetCharacters fails unless a font has been
// resolved and set first.
type Text interface {
	Node
	SetFont(font figma.FontName)
	SetCharacters(chars string) error
	SetFontSize(size float64)
	SetLineHeight(lh *figma.LineHeight)
	SetLetterSpacing(spacing float64)
	SetTextAlignHorizontal(align string)
	SetTextDecoration(deco string)
}

// Rectangle is a plain rectangle, used for raster images and placeholders.
type Rectangle interface {
	Node
	SetImage(img ImageRef)
}

// API is the construction surface. Creation never fails except for vector
// markup, which the host must parse; resolution calls may suspend awaiting
// the host environment and respect the context.
type API interface {
	CreateContainer() Container
	CreateText() Text
	CreateRectangle() Rectangle
	CreateVectorFromMarkup(markup string) (Node, error)

	ResolveFont(ctx context.Context, font figma.FontName) error
	DecodeImageBytes(ctx context.Context, data []byte) (ImageRef, error)
	ResolveImageFromURL(ctx context.Context, url string) (ImageRef, error)

	// AttachChild links a fully styled child to its parent. The parent link
	// of a node is established exactly once.
	AttachChild(parent Container, child Node) error
}
