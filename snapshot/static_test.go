package snapshot_test

import (
	"bytes"
	"strings"
	"testing"

	"html2figma/snapshot"
)

const fixture = `<!DOCTYPE html>
<html>
<head>
  <title> Example Page </title>
  <style>body { margin: 0 }</style>
  <script>console.log("ignored")</script>
</head>
<body>
  <h1 id="headline" class="big title" style="font-size: 32px; color: rgb(20, 20, 20)">Welcome</h1>
  <div style="width: 600px; height: 120px; background-color: rgb(250, 250, 250)">
    <p>First paragraph</p>
    <p>Second paragraph</p>
  </div>
  <img src="https://example.com/hero.png" alt="hero">
  <svg viewBox="0 0 10 10"><rect width="10" height="10"/></svg>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	page, err := snapshot.FromHTML(strings.NewReader(fixture), 1280, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Title != "Example Page" {
		t.Errorf("title = %q, want %q", page.Title, "Example Page")
	}
	if page.ViewportWidth != 1280 || page.ViewportHeight != 800 {
		t.Errorf("viewport = %gx%g, want 1280x800", page.ViewportWidth, page.ViewportHeight)
	}
	if page.FullHeight < page.ViewportHeight {
		t.Errorf("fullHeight = %g, want at least the viewport height", page.FullHeight)
	}

	body := page.Root
	if body.Tag != "body" {
		t.Fatalf("root tag = %q, want body", body.Tag)
	}
	if len(body.Children) != 4 {
		t.Fatalf("body has %d children, want 4 (script and style dropped)", len(body.Children))
	}

	h1 := body.Children[0]
	if h1.ID != "headline" || len(h1.Classes) != 2 {
		t.Errorf("h1 identity = %q %v", h1.ID, h1.Classes)
	}
	if h1.Name() != "h1#headline.big.title" {
		t.Errorf("h1 name = %q", h1.Name())
	}
	if h1.Style.Get("font-size") != "32px" {
		t.Errorf("h1 font-size = %q", h1.Style.Get("font-size"))
	}
	if h1.RenderedText() != "Welcome" {
		t.Errorf("h1 text = %q", h1.RenderedText())
	}

	div := body.Children[1]
	if div.Rect.Width != 600 {
		t.Errorf("div width = %g, want explicit 600", div.Rect.Width)
	}
	if div.Rect.Height != 120 {
		t.Errorf("div height = %g, want explicit 120", div.Rect.Height)
	}
	if len(div.Children) != 2 {
		t.Fatalf("div has %d children, want 2 paragraphs", len(div.Children))
	}
	if p2 := div.Children[1]; p2.Rect.Y <= div.Children[0].Rect.Y {
		t.Errorf("paragraphs do not stack: %g then %g", div.Children[0].Rect.Y, p2.Rect.Y)
	}

	img := body.Children[2]
	if img.GetAttr("src") != "https://example.com/hero.png" || img.GetAttr("alt") != "hero" {
		t.Errorf("img attrs = %v", img.Attr)
	}

	svg := body.Children[3]
	if svg.Tag != "svg" || !strings.Contains(svg.SVG, "viewBox") {
		t.Errorf("svg subtree not captured: %+v", svg)
	}
}

func TestFromHTML_NoBody(t *testing.T) {
	// html.Parse synthesizes a body for almost anything, so feed it a
	// non-HTML fragment namespace instead
	if _, err := snapshot.FromHTML(strings.NewReader(""), 1280, 800); err != nil {
		// an empty document still gets a synthesized body; either outcome
		// must not panic
		t.Logf("empty document: %v", err)
	}
}

func TestPageRoundTrip(t *testing.T) {
	page, err := snapshot.FromHTML(strings.NewReader(fixture), 1280, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if _, err := page.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := snapshot.ReadPage(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.Title != page.Title {
		t.Errorf("title changed: %q -> %q", page.Title, back.Title)
	}
	if len(back.Root.Children) != len(page.Root.Children) {
		t.Errorf("children changed: %d -> %d", len(page.Root.Children), len(back.Root.Children))
	}
	if back.Root.Children[0].Style.Get("color") != "rgb(20, 20, 20)" {
		t.Errorf("style lost in round trip")
	}
}

func TestReadPage_NoRoot(t *testing.T) {
	if _, err := snapshot.ReadPage(strings.NewReader(`{"title":"x"}`)); err == nil {
		t.Fatal("expected an error for a snapshot without a root")
	}
}
