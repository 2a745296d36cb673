package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"html2figma/figma"
)

// maxImageBytes caps a single fetched asset. Pages occasionally reference
// absurdly large originals; embedding those into the IR makes the document
// useless.
const maxImageBytes = 32 << 20

// Inliner resolves image URLs referenced by IR nodes into inline base64
// payloads. Resolution is best effort: nodes whose bytes cannot be fetched
// keep only their URL.
type Inliner struct {
	client *http.Client
	log    *zap.Logger

	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// MaxEdge downscales rasters whose longer edge exceeds it; zero keeps
	// originals.
	MaxEdge int
	// AuthToken, when set, is sent as a bearer token with every fetch.
	// Needed for assets behind authenticated CDNs.
	AuthToken string
}

// NewInliner creates an inliner with bounded per-request timeouts.
func NewInliner(log *zap.Logger) *Inliner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inliner{
		client:      &http.Client{Timeout: 30 * time.Second},
		log:         log.Named("assets"),
		MaxAttempts: 3,
		MaxEdge:     4096,
	}
}

// InlineImages walks the document and embeds image bytes for every node with
// an imageUrl or backgroundImageUrl. Returns how many references resolved
// and how many were left URL-only.
func (in *Inliner) InlineImages(ctx context.Context, doc *figma.Document) (resolved, failed int) {
	if doc == nil || doc.Root == nil {
		return 0, 0
	}
	doc.Root.Walk(func(n *figma.Node) bool {
		if n.ImageBase64 == "" && n.ImageURL != "" {
			if data, ok := in.resolve(ctx, n.ImageURL); ok {
				n.ImageBase64 = data
				resolved++
			} else {
				failed++
			}
		}
		if n.BackgroundImageBase64 == "" && n.BackgroundImageURL != "" {
			if data, ok := in.resolve(ctx, n.BackgroundImageURL); ok {
				n.BackgroundImageBase64 = data
				resolved++
			} else {
				failed++
			}
		}
		return true
	})
	in.log.Info("Image inlining finished", zap.Int("resolved", resolved), zap.Int("failed", failed))
	return resolved, failed
}

// resolve turns one URL into a base64 payload.
func (in *Inliner) resolve(ctx context.Context, url string) (string, bool) {
	data, err := in.fetch(ctx, url)
	if err != nil {
		in.log.Warn("Unable to resolve image, keeping URL only", zap.String("url", url), zap.Error(err))
		return "", false
	}
	data = in.downscale(data)
	return base64.StdEncoding.EncodeToString(data), true
}

// fetch loads image bytes from data:, http: and https: URLs with bounded
// retries on transient errors.
func (in *Inliner) fetch(ctx context.Context, url string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(url, "data:"); ok {
		_, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL")
		}
		if strings.Contains(rest[:len(rest)-len(payload)], "base64") {
			return base64.StdEncoding.DecodeString(payload)
		}
		return []byte(payload), nil
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported URL scheme")
	}

	attempts := max(in.MaxAttempts, 1)
	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		data, err := in.get(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (in *Inliner) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if in.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+in.AuthToken)
	}
	resp, err := in.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}

// downscale re-encodes oversized JPEG and PNG rasters so the embedded
// payload stays reasonable. Anything else (SVG, GIF, WebP, undecodable
// bytes) passes through untouched.
func (in *Inliner) downscale(data []byte) []byte {
	if in.MaxEdge <= 0 {
		return data
	}
	kind, err := filetype.Match(data)
	if err != nil || (kind.Extension != "jpg" && kind.Extension != "png") {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	bounds := img.Bounds()
	if bounds.Dx() <= in.MaxEdge && bounds.Dy() <= in.MaxEdge {
		return data
	}

	fitted := imaging.Fit(img, in.MaxEdge, in.MaxEdge, imaging.Lanczos)
	var buf bytes.Buffer
	if kind.Extension == "png" {
		err = png.Encode(&buf, fitted)
	} else {
		err = jpeg.Encode(&buf, fitted, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return data
	}
	in.log.Debug("Downscaled oversized image",
		zap.Int("width", bounds.Dx()), zap.Int("height", bounds.Dy()), zap.Int("max_edge", in.MaxEdge))
	return buf.Bytes()
}
