package canvas

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"html2figma/figma"
	"html2figma/utils/images"
)

// NodeKind tells scene nodes apart in dumps and tests.
type NodeKind string

const (
	KindContainer NodeKind = "container"
	KindText      NodeKind = "text"
	KindVector    NodeKind = "vector"
	KindRectangle NodeKind = "rectangle"
)

// SceneNode is the concrete node of the in-memory scene. All canvas node
// interfaces are implemented on it.
type SceneNode struct {
	GUID    string
	Kind    NodeKind
	Name    string
	X, Y    float64
	W, H    float64
	Opacity float64

	Fills        []figma.Paint
	Strokes      []figma.Paint
	StrokeWeight float64
	StrokeAlign  string
	Radii        [4]float64
	Effects      []figma.Effect
	ClipsContent bool

	Font          figma.FontName
	fontResolved  bool
	Characters    string
	FontSize      float64
	LineHeight    *figma.LineHeight
	LetterSpacing float64
	TextAlign     string
	TextDeco      string

	Markup string
	Image  ImageRef

	Parent   *SceneNode
	Children []*SceneNode
}

func (n *SceneNode) SetName(name string)   { n.Name = name }
func (n *SceneNode) Move(x, y float64)     { n.X, n.Y = x, y }
func (n *SceneNode) Resize(w, h float64)   { n.W, n.H = w, h }
func (n *SceneNode) SetOpacity(op float64) { n.Opacity = op }

func (n *SceneNode) SetFills(fills []figma.Paint) { n.Fills = fills }

func (n *SceneNode) SetStrokes(strokes []figma.Paint, weight float64, align string) {
	n.Strokes, n.StrokeWeight, n.StrokeAlign = strokes, weight, align
}

func (n *SceneNode) SetCornerRadii(tl, tr, br, bl float64) {
	n.Radii = [4]float64{tl, tr, br, bl}
}

func (n *SceneNode) SetEffects(effects []figma.Effect) { n.Effects = effects }
func (n *SceneNode) SetClipsContent(clip bool)         { n.ClipsContent = clip }

func (n *SceneNode) SetFont(font figma.FontName) {
	n.Font = font
	n.fontResolved = true
}

func (n *SceneNode) SetCharacters(chars string) error {
	if !n.fontResolved {
		return fmt.Errorf("cannot set characters before a font is set")
	}
	n.Characters = chars
	return nil
}

func (n *SceneNode) SetFontSize(size float64)            { n.FontSize = size }
func (n *SceneNode) SetLineHeight(lh *figma.LineHeight)  { n.LineHeight = lh }
func (n *SceneNode) SetLetterSpacing(spacing float64)    { n.LetterSpacing = spacing }
func (n *SceneNode) SetTextAlignHorizontal(align string) { n.TextAlign = align }
func (n *SceneNode) SetTextDecoration(deco string)       { n.TextDeco = deco }
func (n *SceneNode) SetImage(img ImageRef)               { n.Image = img }

// Count returns the number of nodes in the subtree rooted at n.
func (n *SceneNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Memory is an in-process canvas implementation. It records every created
// node, keeps decoded image bytes by content hash and resolves fonts against
// a configurable catalog. Single-threaded, like the host plugin environment
// it stands in for.
type Memory struct {
	log    *zap.Logger
	client *http.Client

	fonts   map[figma.FontName]bool
	images  map[ImageRef][]byte
	created []*SceneNode
}

// defaultFontCatalog is what a stock host environment can resolve. Tests
// extend it through AddFont.
var defaultFontCatalog = []figma.FontName{
	{Family: "Inter", Style: "Thin"},
	{Family: "Inter", Style: "Light"},
	{Family: "Inter", Style: "Regular"},
	{Family: "Inter", Style: "Regular Italic"},
	{Family: "Inter", Style: "Medium"},
	{Family: "Inter", Style: "SemiBold"},
	{Family: "Inter", Style: "Bold"},
	{Family: "Inter", Style: "Bold Italic"},
	{Family: "Inter", Style: "Black"},
}

// NewMemory creates an empty in-memory canvas.
func NewMemory(log *zap.Logger) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Memory{
		log:    log.Named("canvas"),
		client: &http.Client{Timeout: 30 * time.Second},
		fonts:  make(map[figma.FontName]bool),
		images: make(map[ImageRef][]byte),
	}
	for _, f := range defaultFontCatalog {
		m.fonts[f] = true
	}
	return m
}

// AddFont registers a resolvable font.
func (m *Memory) AddFont(font figma.FontName) { m.fonts[font] = true }

// CreatedCount returns how many scene nodes have been constructed.
func (m *Memory) CreatedCount() int { return len(m.created) }

// ImageBytes returns the bytes behind an image handle.
func (m *Memory) ImageBytes(ref ImageRef) ([]byte, bool) {
	data, ok := m.images[ref]
	return data, ok
}

func (m *Memory) newNode(kind NodeKind) *SceneNode {
	n := &SceneNode{GUID: uuid.NewString(), Kind: kind, Opacity: 1}
	m.created = append(m.created, n)
	return n
}

func (m *Memory) CreateContainer() Container { return m.newNode(KindContainer) }
func (m *Memory) CreateText() Text           { return m.newNode(KindText) }
func (m *Memory) CreateRectangle() Rectangle { return m.newNode(KindRectangle) }

// CreateVectorFromMarkup parses the markup the way the host tool would and
// fails on anything oksvg cannot digest.
func (m *Memory) CreateVectorFromMarkup(markup string) (Node, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, fmt.Errorf("empty vector markup")
	}
	w, h, err := images.ProbeSVG(markup)
	if err != nil {
		return nil, err
	}
	n := m.newNode(KindVector)
	n.Markup = markup
	n.W, n.H = w, h
	return n, nil
}

// ResolveFont checks the font catalog.
func (m *Memory) ResolveFont(_ context.Context, font figma.FontName) error {
	if !m.fonts[font] {
		return fmt.Errorf("%w: %s %s", ErrFontUnavailable, font.Family, font.Style)
	}
	return nil
}

// DecodeImageBytes verifies the payload decodes as an image and registers it
// under its content hash. SVG payloads are rasterized first, the host tool
// has no vector image fills.
func (m *Memory) DecodeImageBytes(_ context.Context, data []byte) (ImageRef, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}

	if looksLikeSVG(data) {
		img, err := images.RasterizeSVG(data, 0, 0)
		if err != nil {
			return "", fmt.Errorf("unable to rasterize SVG image: %w", err)
		}
		data = encodePNG(img)
	} else {
		kind, _ := filetype.Match(data)
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return "", fmt.Errorf("undecodable image payload (%s): %w", kind.Extension, err)
		}
	}

	sum := sha256.Sum256(data)
	ref := ImageRef(hex.EncodeToString(sum[:16]))
	m.images[ref] = data
	return ref, nil
}

// ResolveImageFromURL fetches image bytes and registers them. The IR
// normally arrives with inlined base64 payloads; this path covers documents
// produced without asset inlining.
func (m *Memory) ResolveImageFromURL(ctx context.Context, url string) (ImageRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return m.DecodeImageBytes(ctx, data)
}

// AttachChild links child under parent. Reattachment is a programming error
// on the materializer side and is reported, not silently retargeted.
func (m *Memory) AttachChild(parent Container, child Node) error {
	p, ok := parent.(*SceneNode)
	if !ok {
		return fmt.Errorf("foreign parent node")
	}
	c, ok := child.(*SceneNode)
	if !ok {
		return fmt.Errorf("foreign child node")
	}
	if c.Parent != nil {
		return fmt.Errorf("node %q is already attached", c.Name)
	}
	c.Parent = p
	p.Children = append(p.Children, c)
	return nil
}

func looksLikeSVG(data []byte) bool {
	head := bytes.TrimSpace(data)
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<svg")) || bytes.Contains(head, []byte("<svg"))
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	// Encoding a freshly rasterized RGBA never fails in practice.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
