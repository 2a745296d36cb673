package images

import (
	"image/color"
	"testing"
)

const rectSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50" fill="#ff0000"/></svg>`

func TestProbeSVG(t *testing.T) {
	w, h, err := ProbeSVG(rectSVG)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %vx%v", w, h)
	}

	if _, _, err := ProbeSVG("<p>hello</p>"); err == nil {
		t.Error("non-SVG markup accepted")
	}
}

func TestProbeSVG_NoViewBox(t *testing.T) {
	w, h, err := ProbeSVG(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if w != defaultSVGSize || h != defaultSVGSize {
		t.Errorf("expected fallback size, got %vx%v", w, h)
	}
}

func TestRasterizeSVG(t *testing.T) {
	cases := []struct {
		name         string
		targetW      int
		targetH      int
		wantW, wantH int
	}{
		{"intrinsic size", 0, 0, 100, 50},
		{"width only keeps aspect", 200, 0, 200, 100},
		{"height only keeps aspect", 0, 100, 200, 100},
		{"fit into box", 300, 100, 200, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := RasterizeSVG([]byte(rectSVG), tc.targetW, tc.targetH)
			if err != nil {
				t.Fatalf("rasterize failed: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tc.wantW, tc.wantH, b.Dx(), b.Dy())
			}
			r, _, _, a := img.At(b.Dx()/2, b.Dy()/2).RGBA()
			if r == 0 || a == 0 {
				t.Errorf("fill not rendered at center: %v", color.RGBAModel.Convert(img.At(b.Dx()/2, b.Dy()/2)))
			}
		})
	}
}

func TestRasterizeSVG_ClampsHugeViewBox(t *testing.T) {
	huge := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100000 50000"><rect width="100000" height="50000" fill="#000"/></svg>`
	img, err := RasterizeSVG([]byte(huge), 0, 0)
	if err != nil {
		t.Fatalf("rasterize failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > maxRasterDim || b.Dy() > maxRasterDim {
		t.Errorf("dimensions not clamped: %dx%d", b.Dx(), b.Dy())
	}
}
