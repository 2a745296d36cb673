package css_test

import (
	"testing"

	"html2figma/css"
	"html2figma/figma"
)

func TestFontStyleName(t *testing.T) {
	tests := []struct {
		weight float64
		italic bool
		want   string
	}{
		{100, false, "Thin"},
		{200, false, "ExtraLight"},
		{300, false, "Light"},
		{400, false, "Regular"},
		{500, false, "Medium"},
		{600, false, "SemiBold"},
		{700, false, "Bold"},
		{800, false, "ExtraBold"},
		{900, false, "Black"},
		{400, true, "Regular Italic"},
		{700, true, "Bold Italic"},
	}
	for _, tc := range tests {
		if got := css.FontStyleName(tc.weight, tc.italic); got != tc.want {
			t.Errorf("FontStyleName(%v, %v) = %q, expected %q", tc.weight, tc.italic, got, tc.want)
		}
	}
}

func TestParseFontWeight(t *testing.T) {
	if w := css.ParseFontWeight("bold"); w != 700 {
		t.Errorf("bold should be 700, got %v", w)
	}
	if w := css.ParseFontWeight("normal"); w != 400 {
		t.Errorf("normal should be 400, got %v", w)
	}
	if w := css.ParseFontWeight("550"); w != 550 {
		t.Errorf("numeric weight lost, got %v", w)
	}
}

func TestParseFontFamily(t *testing.T) {
	if f := css.ParseFontFamily(`"Helvetica Neue", Arial, sans-serif`); f != "Helvetica Neue" {
		t.Errorf("expected first family unquoted, got %q", f)
	}
	if f := css.ParseFontFamily("Roboto"); f != "Roboto" {
		t.Errorf("expected Roboto, got %q", f)
	}
}

func TestParseLineHeight(t *testing.T) {
	lh := css.ParseLineHeight("normal")
	if lh.Unit != "AUTO" {
		t.Errorf("normal should map to AUTO, got %+v", lh)
	}
	lh = css.ParseLineHeight("24px")
	if lh.Unit != "PIXELS" || lh.Value != 24 {
		t.Errorf("expected 24 pixels, got %+v", lh)
	}
}

func TestParseTextAlign(t *testing.T) {
	// start/end map to left/right, not direction-aware.
	tests := map[string]string{
		"start":   figma.TextAlignLeft,
		"left":    figma.TextAlignLeft,
		"end":     figma.TextAlignRight,
		"right":   figma.TextAlignRight,
		"center":  figma.TextAlignCenter,
		"justify": figma.TextAlignJustified,
		"":        figma.TextAlignLeft,
	}
	for input, want := range tests {
		if got := css.ParseTextAlign(input); got != want {
			t.Errorf("ParseTextAlign(%q) = %q, expected %q", input, got, want)
		}
	}
}

func TestParseTextDecoration(t *testing.T) {
	// Underline wins when both are present in the computed value.
	if d := css.ParseTextDecoration("underline line-through solid rgb(0, 0, 0)"); d != figma.DecorationUnderline {
		t.Errorf("expected UNDERLINE, got %s", d)
	}
	if d := css.ParseTextDecoration("line-through"); d != figma.DecorationStrikethrough {
		t.Errorf("expected STRIKETHROUGH, got %s", d)
	}
	if d := css.ParseTextDecoration("none solid rgb(0, 0, 0)"); d != figma.DecorationNone {
		t.Errorf("expected NONE, got %s", d)
	}
}
