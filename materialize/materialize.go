// Package materialize reconstructs the host-tool scene tree from an IR
// document. Construction is a single-threaded pre-order walk: every node is
// fully sized, styled and positioned before it is attached to its parent and
// before any of its children are built, so a concurrent observer of the host
// tool never sees a half-styled layer.
package materialize

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"html2figma/canvas"
	"html2figma/figma"
)

// Placeholder fills flag recoverable per-node failures in the produced
// scene: neutral gray for missing images, loud magenta for vector markup the
// host could not parse.
var (
	imagePlaceholderFill  = figma.SolidPaint(figma.Color{R: 0.8, G: 0.8, B: 0.8, A: 1})
	vectorPlaceholderFill = figma.SolidPaint(figma.Color{R: 1, G: 0, B: 1, A: 1})
)

// Materializer drives scene construction against a canvas API.
type Materializer struct {
	api      canvas.API
	log      *zap.Logger
	progress Progress
}

// Option adjusts a Materializer.
type Option func(*Materializer)

// WithProgress installs a completion observer.
func WithProgress(p Progress) Option {
	return func(m *Materializer) {
		if p != nil {
			m.progress = p
		}
	}
}

// New creates a materializer on top of the given canvas.
func New(api canvas.API, log *zap.Logger, opts ...Option) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Materializer{
		api:      api,
		log:      log.Named("materialize"),
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result summarizes one materialization run.
type Result struct {
	// Root is the constructed root container, sized to the viewport.
	Root canvas.Container
	// Visited counts IR nodes processed; always equals the document's node
	// count on success.
	Visited int
	// Layers counts constructed scene nodes. Text wrappers make it exceed
	// Visited.
	Layers int
	// Problems aggregates per-node recoverable failures that were degraded
	// to placeholders. Never fatal.
	Problems error
}

// run carries the mutable traversal state of one Document call.
type run struct {
	total    int
	visited  int
	layers   int
	problems error
}

// Document builds the whole scene. The only fatal condition is a missing or
// structurally invalid document, checked before any canvas mutation; every
// per-node failure degrades to a visible placeholder and the walk continues.
func (m *Materializer) Document(ctx context.Context, doc *figma.Document) (*Result, error) {
	if err := doc.Validate(); err != nil {
		m.progress.Progress(0, 0)
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	r := &run{total: doc.CountNodes()}
	m.log.Info("Materializing document",
		zap.String("title", doc.PageTitle), zap.Int("nodes", r.total))

	rootHeight := max(doc.FullHeight, doc.ViewportHeight)
	root, err := m.node(ctx, r, doc.Root, nil, &rootSize{
		w: figma.ClampSize(doc.ViewportWidth),
		h: figma.ClampSize(rootHeight),
	})
	if err != nil {
		return nil, err
	}
	rootContainer, ok := root.(canvas.Container)
	if !ok {
		// Root of a well-formed capture is always a frame; tolerate exotic
		// hand-written documents by wrapping.
		wrap := m.api.CreateContainer()
		wrap.Resize(figma.ClampSize(doc.ViewportWidth), figma.ClampSize(rootHeight))
		wrap.SetFills([]figma.Paint{})
		wrap.SetName(doc.PageTitle)
		r.layers++
		if err := m.api.AttachChild(wrap, root); err != nil {
			return nil, fmt.Errorf("unable to attach root node: %w", err)
		}
		rootContainer = wrap
	}

	m.progress.Progress(r.visited, r.total)
	m.log.Info("Materialization finished",
		zap.Int("visited", r.visited), zap.Int("layers", r.layers),
		zap.Int("problems", len(multierr.Errors(r.problems))))

	return &Result{
		Root:     rootContainer,
		Visited:  r.visited,
		Layers:   r.layers,
		Problems: r.problems,
	}, nil
}

// rootSize overrides the constructed size of the document root, which spans
// the viewport instead of its own captured box.
type rootSize struct{ w, h float64 }

// node constructs one IR node (and, for frames, its subtree). The returned
// scene node is fully styled and already attached to parent when parent is
// not nil.
func (m *Materializer) node(ctx context.Context, r *run, n *figma.Node, parent canvas.Container, root *rootSize) (canvas.Node, error) {
	r.visited++

	w, h := figma.ClampSize(n.Width), figma.ClampSize(n.Height)
	if root != nil {
		w, h = root.w, root.h
	}

	var (
		built       canvas.Node
		isContainer bool
	)
	// Builders may replace the layer name on degraded paths; the source node
	// is never written to.
	name := n.Name
	switch n.Type {
	case figma.NodeFrame:
		built = m.buildContainer(n, w, h)
		isContainer = true
	case figma.NodeText:
		built = m.buildText(ctx, r, n, w, h)
		_, isContainer = built.(canvas.Container)
	case figma.NodeSVG:
		built, name = m.buildVector(r, n, w, h)
	case figma.NodeImage:
		built, name = m.buildImage(ctx, r, n, w, h)
	default:
		// Validate guarantees this cannot happen.
		return nil, fmt.Errorf("unhandled node type %q", n.Type)
	}
	r.layers++

	// Uniform post-construction: offset, opacity, name - then attach, so the
	// parent never holds a half-styled child.
	built.Move(n.X, n.Y)
	if n.Opacity != nil && *n.Opacity < 1 {
		built.SetOpacity(*n.Opacity)
	}
	built.SetName(name)
	if parent != nil {
		if err := m.api.AttachChild(parent, built); err != nil {
			return nil, fmt.Errorf("unable to attach %q: %w", n.Name, err)
		}
	}

	m.progress.Progress(r.visited, r.total)

	if isContainer && n.Type == figma.NodeFrame {
		container := built.(canvas.Container)
		m.attachBackdrop(ctx, r, n, container, w, h)
		for _, c := range n.Children {
			if _, err := m.node(ctx, r, c, container, nil); err != nil {
				return nil, err
			}
		}
	}
	return built, nil
}

// attachBackdrop turns a frame's raster background image into a rectangle
// child placed before the frame's own children, so it paints behind them.
// Backdrop failures are logged and skipped; unlike content images there is
// nothing useful a placeholder could show.
func (m *Materializer) attachBackdrop(ctx context.Context, r *run, n *figma.Node, parent canvas.Container, w, h float64) {
	if n.BackgroundImageBase64 == "" && n.BackgroundImageURL == "" {
		return
	}

	var (
		ref canvas.ImageRef
		err error
	)
	if n.BackgroundImageBase64 != "" {
		var data []byte
		if data, err = base64.StdEncoding.DecodeString(n.BackgroundImageBase64); err == nil {
			ref, err = m.api.DecodeImageBytes(ctx, data)
		}
	} else {
		ref, err = m.api.ResolveImageFromURL(ctx, n.BackgroundImageURL)
	}
	if err != nil {
		r.problems = multierr.Append(r.problems, fmt.Errorf("backdrop of %q: %w", n.Name, err))
		m.log.Warn("Unable to resolve frame background image",
			zap.String("name", n.Name), zap.Error(err))
		return
	}

	rect := m.api.CreateRectangle()
	rect.Resize(w, h)
	rect.Move(0, 0)
	rect.SetImage(ref)
	rect.SetName("background")
	if err := m.api.AttachChild(parent, rect); err != nil {
		r.problems = multierr.Append(r.problems, fmt.Errorf("attach backdrop of %q: %w", n.Name, err))
		return
	}
	r.layers++
}

// applyContainerStyling writes the shared container surface: fills (an empty
// list means fully transparent, not "no fill property"), strokes, corner
// radii when defined, and effects.
func applyContainerStyling(c canvas.Container, fills []figma.Paint, n *figma.Node) {
	sanitized := figma.SanitizePaints(fills)
	if sanitized == nil {
		sanitized = []figma.Paint{}
	}
	c.SetFills(sanitized)

	if len(n.Strokes) > 0 {
		align := n.StrokeAlign
		if align == "" {
			align = figma.StrokeAlignInside
		}
		c.SetStrokes(figma.SanitizePaints(n.Strokes), n.StrokeWeight, align)
	}
	if n.HasCornerRadius() {
		c.SetCornerRadii(n.TopLeftRadius, n.TopRightRadius, n.BottomRightRadius, n.BottomLeftRadius)
	}
	if len(n.Effects) > 0 {
		c.SetEffects(figma.SanitizeEffects(n.Effects))
	}
}

func (m *Materializer) buildContainer(n *figma.Node, w, h float64) canvas.Container {
	c := m.api.CreateContainer()
	c.Resize(w, h)
	c.SetClipsContent(true)
	applyContainerStyling(c, n.Fills, n)
	return c
}

// buildText constructs a text primitive, wrapped into a container when the
// IR node carries surface properties a text layer cannot bear.
func (m *Materializer) buildText(ctx context.Context, r *run, n *figma.Node, w, h float64) canvas.Node {
	if !n.NeedsTextContainer() {
		return m.buildTextPrimitive(ctx, r, n, w, h)
	}

	// The wrapper takes the background fill set, not the text color.
	wrapper := m.api.CreateContainer()
	wrapper.Resize(w, h)
	wrapper.SetClipsContent(false)
	applyContainerStyling(wrapper, n.BackgroundFills, n)

	text := m.buildTextPrimitive(ctx, r, n, w, h)
	r.layers++
	text.Move(0, 0)
	text.SetName("text")
	if err := m.api.AttachChild(wrapper, text); err != nil {
		r.problems = multierr.Append(r.problems, fmt.Errorf("attach text %q: %w", n.Name, err))
	}
	return wrapper
}

func (m *Materializer) buildTextPrimitive(ctx context.Context, r *run, n *figma.Node, w, h float64) canvas.Text {
	t := m.api.CreateText()

	font := m.resolveFont(ctx, n.FontFamily, n.FigmaFontStyle)
	t.SetFont(font)
	if err := t.SetCharacters(n.Characters); err != nil {
		r.problems = multierr.Append(r.problems, fmt.Errorf("set characters on %q: %w", n.Name, err))
	}

	if n.FontSize > 0 {
		t.SetFontSize(n.FontSize)
	}
	if n.LineHeight != nil {
		t.SetLineHeight(n.LineHeight)
	}
	if n.LetterSpacing != 0 {
		t.SetLetterSpacing(n.LetterSpacing)
	}
	if n.TextAlignHorizontal != "" {
		t.SetTextAlignHorizontal(n.TextAlignHorizontal)
	}
	if n.TextDecoration != "" && n.TextDecoration != figma.DecorationNone {
		t.SetTextDecoration(n.TextDecoration)
	}
	if fills := figma.SanitizePaints(n.Fills); fills != nil {
		t.SetFills(fills)
	}
	// Fixed sizing: the captured box is authoritative, no autoresize.
	t.Resize(w, h)
	return t
}

// buildVector parses captured markup into a native vector node. Bad markup
// degrades to a loud placeholder rectangle so the failure is visually
// discoverable instead of silently dropped.
func (m *Materializer) buildVector(r *run, n *figma.Node, w, h float64) (canvas.Node, string) {
	if n.SVGContent != "" {
		v, err := m.api.CreateVectorFromMarkup(n.SVGContent)
		if err == nil {
			v.Resize(w, h)
			return v, n.Name
		}
		r.problems = multierr.Append(r.problems, fmt.Errorf("vector %q: %w", n.Name, err))
		m.log.Warn("Unable to parse vector markup, using placeholder",
			zap.String("name", n.Name), zap.Error(err))
	}

	rect := m.api.CreateRectangle()
	rect.Resize(w, h)
	rect.SetFills([]figma.Paint{vectorPlaceholderFill})
	return rect, n.Name + " (vector failed)"
}

// buildImage binds image bytes to a rectangle. Base64 payload wins over the
// URL; every failure path ends in a neutral placeholder, image problems are
// never fatal to the conversion.
func (m *Materializer) buildImage(ctx context.Context, r *run, n *figma.Node, w, h float64) (canvas.Node, string) {
	rect := m.api.CreateRectangle()
	rect.Resize(w, h)

	ref, err := m.resolveImage(ctx, n)
	if err != nil {
		r.problems = multierr.Append(r.problems, fmt.Errorf("image %q: %w", n.Name, err))
		m.log.Warn("Unable to resolve image, using placeholder",
			zap.String("name", n.Name), zap.Error(err))
		rect.SetFills([]figma.Paint{imagePlaceholderFill})
		return rect, n.Name + " (image failed)"
	}
	rect.SetImage(ref)
	return rect, n.Name
}

func (m *Materializer) resolveImage(ctx context.Context, n *figma.Node) (canvas.ImageRef, error) {
	switch {
	case n.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(n.ImageBase64)
		if err != nil {
			return "", fmt.Errorf("undecodable base64 payload: %w", err)
		}
		return m.api.DecodeImageBytes(ctx, data)
	case n.ImageURL != "":
		return m.api.ResolveImageFromURL(ctx, n.ImageURL)
	default:
		return "", fmt.Errorf("no image source")
	}
}
