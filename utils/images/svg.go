// Package images holds raster helpers for vector and bitmap assets shared by
// the canvas and the extractor.
package images

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const defaultSVGSize = 512 // fallback when the viewBox carries no size

// maxRasterDim is the maximum pixel dimension (width or height) allowed when
// rasterizing an SVG. Malicious or broken markup with an enormous viewBox
// would otherwise allocate gigabytes for the RGBA buffer.
var maxRasterDim = 8192

// checkSVGRoot rejects markup whose document element is not <svg>. oksvg
// silently ignores elements it does not know, so arbitrary XML would
// otherwise parse into an empty icon.
func checkSVGRoot(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return errors.New("no elements found")
		}
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "svg" {
				return fmt.Errorf("root element is <%s>, not <svg>", start.Name.Local)
			}
			return nil
		}
	}
}

// ProbeSVG parses SVG markup and returns its intrinsic viewBox size. An
// error means the markup is not usable as a vector source.
func ProbeSVG(markup string) (w, h float64, err error) {
	if err := checkSVGRoot([]byte(markup)); err != nil {
		return 0, 0, fmt.Errorf("unable to parse SVG: %w", err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(markup)))
	if err != nil {
		return 0, 0, fmt.Errorf("unable to parse SVG: %w", err)
	}
	w, h = icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 {
		w = defaultSVGSize
	}
	if h <= 0 {
		h = defaultSVGSize
	}
	return w, h, nil
}

// RasterizeSVG renders SVG markup into an RGBA image over a transparent
// background.
//
// Rules:
//   - if targetW == 0 && targetH == 0: use the viewBox size (with fallback)
//   - if only one of targetW/targetH is > 0: scale by it keeping aspect ratio
//   - if both are > 0: fit into that box keeping aspect ratio
func RasterizeSVG(svgData []byte, targetW, targetH int) (image.Image, error) {
	if err := checkSVGRoot(svgData); err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 {
		intrW = defaultSVGSize
	}
	if intrH <= 0 {
		intrH = defaultSVGSize
	}

	w, h := intrW, intrH
	switch {
	case targetW <= 0 && targetH <= 0:
		// Keep intrinsic size.
	case targetW > 0 && targetH <= 0:
		w = targetW
		h = int(math.Round(float64(w) * float64(intrH) / float64(intrW)))
	case targetH > 0 && targetW <= 0:
		h = targetH
		w = int(math.Round(float64(h) * float64(intrW) / float64(intrH)))
	default:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	}
	w = max(w, 1)
	h = max(h, 1)

	// Clamp to maxRasterDim preserving aspect ratio to prevent OOM.
	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
