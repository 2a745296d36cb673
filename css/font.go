package css

import (
	"strconv"
	"strings"

	"html2figma/figma"
)

// FontStyleName maps a numeric font weight and italic flag to the named
// style buckets Figma fonts ship with.
func FontStyleName(weight float64, italic bool) string {
	var name string
	switch {
	case weight <= 100:
		name = "Thin"
	case weight <= 200:
		name = "ExtraLight"
	case weight <= 300:
		name = "Light"
	case weight <= 400:
		name = "Regular"
	case weight <= 500:
		name = "Medium"
	case weight <= 600:
		name = "SemiBold"
	case weight <= 700:
		name = "Bold"
	case weight <= 800:
		name = "ExtraBold"
	default:
		name = "Black"
	}
	if italic {
		name += " Italic"
	}
	return name
}

// ParseFontWeight resolves a computed font-weight value. Keywords map to
// their numeric equivalents; anything unparseable reads as 400.
func ParseFontWeight(value string) float64 {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "", "normal":
		return 400
	case "bold":
		return 700
	case "lighter":
		return 300
	case "bolder":
		return 700
	}
	if w, err := strconv.ParseFloat(value, 64); err == nil {
		return w
	}
	return 400
}

// ParseFontFamily returns the first family of a comma-separated font-family
// list with surrounding quotes stripped.
func ParseFontFamily(value string) string {
	families := splitTopLevel(value, ',')
	if len(families) == 0 {
		return ""
	}
	return strings.Trim(families[0], `"'`)
}

// ParseLineHeight maps the keyword "normal" to automatic line height and a
// pixel value to an explicit one. Anything else reads as automatic.
func ParseLineHeight(value string) *figma.LineHeight {
	if px, ok := ParsePx(value); ok {
		return figma.LineHeightPx(px)
	}
	return figma.LineHeightAuto()
}

// ParseLetterSpacing returns pixel letter spacing, zero for "normal".
func ParseLetterSpacing(value string) float64 {
	if px, ok := ParsePx(value); ok {
		return px
	}
	return 0
}

// ParseTextAlign maps computed text-align to a horizontal alignment. The
// "start"/"end" values map to left/right without considering direction.
func ParseTextAlign(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "center":
		return figma.TextAlignCenter
	case "right", "end":
		return figma.TextAlignRight
	case "justify":
		return figma.TextAlignJustified
	default:
		return figma.TextAlignLeft
	}
}

// ParseTextDecoration maps a computed text-decoration(-line) value.
// Underline wins over line-through when both are present.
func ParseTextDecoration(value string) string {
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "underline"):
		return figma.DecorationUnderline
	case strings.Contains(lower, "line-through"):
		return figma.DecorationStrikethrough
	default:
		return figma.DecorationNone
	}
}
