package css

import (
	"math"
	"strconv"
	"strings"

	"html2figma/figma"
)

// directionAngles maps CSS direction keywords to gradient angles in degrees.
// 0deg points up, angles grow clockwise, matching the CSS convention.
var directionAngles = map[string]float64{
	"to top":          0,
	"to top right":    45,
	"to right top":    45,
	"to right":        90,
	"to bottom right": 135,
	"to right bottom": 135,
	"to bottom":       180,
	"to bottom left":  225,
	"to left bottom":  225,
	"to left":         270,
	"to top left":     315,
	"to left top":     315,
}

// ParseGradient parses a computed background-image value into a gradient
// paint. Only linear-gradient() and radial-gradient() are supported; the
// first supported function found wins. Unsupported functions (conic, image
// url()) and gradients with fewer than two resolvable stops yield nil.
func ParseGradient(value string) *figma.Paint {
	if args, ok := gradientArgs(value, "linear-gradient("); ok {
		return parseLinearGradient(args)
	}
	if args, ok := gradientArgs(value, "radial-gradient("); ok {
		return parseRadialGradient(args)
	}
	return nil
}

// gradientArgs locates fn inside value and returns its balanced argument
// list. The computed background-image may stack several layers; searching by
// substring picks the first gradient layer regardless of position.
func gradientArgs(value, fn string) (string, bool) {
	lower := strings.ToLower(value)
	idx := strings.Index(lower, fn)
	if idx < 0 {
		return "", false
	}
	// Reject "repeating-linear-gradient" and similar prefixed functions.
	if idx > 0 && lower[idx-1] == '-' {
		return "", false
	}
	return balancedArg(value, idx+len(fn)-1)
}

func parseLinearGradient(args string) *figma.Paint {
	tokens := splitTopLevel(args, ',')
	if len(tokens) == 0 {
		return nil
	}

	angle := 180.0 // CSS default: top to bottom
	if deg, ok := parseDirection(tokens[0]); ok {
		angle = deg
		tokens = tokens[1:]
	}

	stops := parseStops(tokens)
	if len(stops) < 2 {
		return nil
	}
	return &figma.Paint{
		Type:                    figma.PaintGradientLinear,
		GradientStops:           stops,
		GradientHandlePositions: linearHandles(angle),
	}
}

func parseRadialGradient(args string) *figma.Paint {
	tokens := splitTopLevel(args, ',')
	if len(tokens) == 0 {
		return nil
	}

	// The first token is shape/size/position metadata ("circle at center")
	// unless it already looks like a color.
	if !looksLikeColor(tokens[0]) {
		tokens = tokens[1:]
	}

	stops := parseStops(tokens)
	if len(stops) < 2 {
		return nil
	}
	return &figma.Paint{
		Type:          figma.PaintGradientRadial,
		GradientStops: stops,
		// Canonical square: center, right-mid, bottom-mid. Ellipse and
		// size keywords are not modeled.
		GradientHandlePositions: []figma.Vector{
			{X: 0.5, Y: 0.5},
			{X: 1, Y: 0.5},
			{X: 0.5, Y: 1},
		},
	}
}

// parseDirection recognizes an explicit "<angle>deg" or a keyword direction.
func parseDirection(token string) (float64, bool) {
	token = strings.ToLower(strings.Join(strings.Fields(token), " "))
	if deg, ok := directionAngles[token]; ok {
		return deg, true
	}
	if num, ok := strings.CutSuffix(token, "deg"); ok {
		if deg, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil {
			return deg, true
		}
	}
	// Unmatched "to ..." keywords fall back to the CSS default direction.
	if strings.HasPrefix(token, "to ") {
		return 180, true
	}
	return 0, false
}

// looksLikeColor is the radial-gradient heuristic for telling a leading color
// stop apart from shape/position metadata.
func looksLikeColor(token string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	if strings.HasPrefix(t, "rgb") || strings.HasPrefix(t, "hsl") || strings.HasPrefix(t, "#") {
		return true
	}
	_, named := basicColors[firstField(t)]
	return named
}

func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// parseStops resolves color-stop tokens. Stops with a trailing percentage use
// it; the rest are distributed evenly by index. Tokens without a resolvable
// color are dropped.
func parseStops(tokens []string) []figma.GradientStop {
	type rawStop struct {
		color    figma.Color
		position float64
		explicit bool
	}
	var raw []rawStop

	for _, tok := range tokens {
		colorPart := tok
		pos := 0.0
		explicit := false

		// A trailing percentage belongs to the stop position, not the color.
		if i := strings.LastIndexByte(tok, '%'); i == len(tok)-1 {
			if j := strings.LastIndexAny(tok[:i], " \t"); j >= 0 {
				if p, err := strconv.ParseFloat(strings.TrimSpace(tok[j:i]), 64); err == nil {
					colorPart = strings.TrimSpace(tok[:j])
					pos = clamp01(p / 100)
					explicit = true
				}
			}
		}

		c := parseStopColor(colorPart)
		if c == nil {
			continue
		}
		raw = append(raw, rawStop{color: *c, position: pos, explicit: explicit})
	}

	if len(raw) == 0 {
		return nil
	}

	stops := make([]figma.GradientStop, len(raw))
	for i, r := range raw {
		pos := r.position
		if !r.explicit {
			if len(raw) > 1 {
				pos = float64(i) / float64(len(raw)-1)
			} else {
				pos = 0
			}
		}
		stops[i] = figma.GradientStop{Color: r.color, Position: pos}
	}
	return stops
}

// linearHandles converts a CSS gradient angle into the three affine handle
// points: rotate a unit vector by (angle-90) degrees to get the gradient
// axis, offset start and end by 0.5 from the center, and derive the
// width-axis handle from the perpendicular vector.
func linearHandles(angleDeg float64) []figma.Vector {
	rad := (angleDeg - 90) * math.Pi / 180
	dir := figma.Vector{X: math.Cos(rad), Y: math.Sin(rad)}
	start := figma.Vector{X: 0.5 - dir.X/2, Y: 0.5 - dir.Y/2}
	end := figma.Vector{X: 0.5 + dir.X/2, Y: 0.5 + dir.Y/2}
	width := figma.Vector{X: start.X + dir.Y/2, Y: start.Y - dir.X/2}
	return []figma.Vector{start, end, width}
}
