package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"html2figma/figma"
)

// ParseColor parses rgb()/rgba() functional notation into an RGBA color on
// the 0-1 scale. It returns nil for "transparent", fully transparent black
// and anything it does not recognize - the caller treats nil as "no paint",
// not as an error. Computed styles always serialize colors this way, other
// notations show up only in hand-written fixtures.
func ParseColor(value string) *figma.Color {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "transparent") {
		return nil
	}

	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "rgb(") && !strings.HasPrefix(lower, "rgba(") {
		return nil
	}

	// Tokenize the function arguments. Both legacy comma syntax and the
	// modern space/slash syntax produce the same number/percentage stream.
	var comps []component

	l := css.NewLexer(parse.NewInput(strings.NewReader(value)))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return colorFromComponents(comps)
		case css.NumberToken:
			f, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return nil
			}
			comps = append(comps, component{value: f})
		case css.PercentageToken:
			f, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil {
				return nil
			}
			comps = append(comps, component{value: f, percent: true})
		}
	}
}

// component is one numeric argument of a color function.
type component struct {
	value   float64
	percent bool
}

// colorFromComponents normalizes parsed rgb components to the 0-1 scale.
// Channels use the 0-255 integer scale (or percentages), alpha defaults to 1.
func colorFromComponents(comps []component) *figma.Color {
	if len(comps) < 3 {
		return nil
	}

	channel := func(c component) float64 {
		v := c.value
		if c.percent {
			v = v / 100 * 255
		}
		return clamp01(v / 255)
	}

	col := figma.Color{
		R: channel(comps[0]),
		G: channel(comps[1]),
		B: channel(comps[2]),
		A: 1,
	}
	if len(comps) >= 4 {
		a := comps[3].value
		if comps[3].percent {
			a /= 100
		}
		col.A = clamp01(a)
	}

	// Fully transparent black means "nothing painted".
	if col.A == 0 && col.R == 0 && col.G == 0 && col.B == 0 {
		return nil
	}
	return &col
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// basicColors covers the CSS basic color keywords plus a few common extras.
// Needed only for gradient stops in hand-written styles; computed values are
// always functional rgb notation.
var basicColors = map[string]figma.Color{
	"black":   {R: 0, G: 0, B: 0, A: 1},
	"silver":  {R: 0.75, G: 0.75, B: 0.75, A: 1},
	"gray":    {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"grey":    {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"white":   {R: 1, G: 1, B: 1, A: 1},
	"maroon":  {R: 0.5, G: 0, B: 0, A: 1},
	"red":     {R: 1, G: 0, B: 0, A: 1},
	"purple":  {R: 0.5, G: 0, B: 0.5, A: 1},
	"fuchsia": {R: 1, G: 0, B: 1, A: 1},
	"green":   {R: 0, G: 0.5, B: 0, A: 1},
	"lime":    {R: 0, G: 1, B: 0, A: 1},
	"olive":   {R: 0.5, G: 0.5, B: 0, A: 1},
	"yellow":  {R: 1, G: 1, B: 0, A: 1},
	"navy":    {R: 0, G: 0, B: 0.5, A: 1},
	"blue":    {R: 0, G: 0, B: 1, A: 1},
	"teal":    {R: 0, G: 0.5, B: 0.5, A: 1},
	"aqua":    {R: 0, G: 1, B: 1, A: 1},
	"orange":  {R: 1, G: 0.647, B: 0, A: 1},
}

// parseStopColor resolves a gradient stop color: functional rgb notation
// first, then hex, then basic keywords.
func parseStopColor(value string) *figma.Color {
	if c := ParseColor(value); c != nil {
		return c
	}
	value = strings.TrimSpace(strings.ToLower(value))
	if c, ok := basicColors[value]; ok {
		return &c
	}
	if h, ok := strings.CutPrefix(value, "#"); ok {
		return parseHexColor(h)
	}
	return nil
}

// parseHexColor parses 3-, 4-, 6- and 8-digit hex colors (without the '#').
func parseHexColor(h string) *figma.Color {
	expand := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	}
	switch len(h) {
	case 3, 4:
		h = expand(h)
	case 6, 8:
	default:
		return nil
	}

	digits := make([]float64, 0, 4)
	for i := 0; i+2 <= len(h); i += 2 {
		v, err := strconv.ParseUint(h[i:i+2], 16, 16)
		if err != nil {
			return nil
		}
		digits = append(digits, float64(v)/255)
	}
	col := figma.Color{R: digits[0], G: digits[1], B: digits[2], A: 1}
	if len(digits) == 4 {
		col.A = digits[3]
	}
	if col.A == 0 && col.R == 0 && col.G == 0 && col.B == 0 {
		return nil
	}
	return &col
}
