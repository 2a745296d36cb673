package css

import (
	"regexp"
	"strconv"
	"strings"

	"html2figma/figma"
)

// shadowColorDefault approximates CSS's "currentColor" default for shadows
// whose color was omitted.
var shadowColorDefault = figma.Color{R: 0, G: 0, B: 0, A: 0.5}

// pxLengthRe matches one "<number>px" length token.
var pxLengthRe = regexp.MustCompile(`^(-?\d*\.?\d+)px$`)

// shadowLengths scans a clause for length tokens. Computed styles emit
// "<number>px" but a zero length is routinely written unit-less.
func shadowLengths(clause string) []float64 {
	var nums []float64
	for _, f := range strings.Fields(clause) {
		if f == "0" || f == "-0" {
			nums = append(nums, 0)
			continue
		}
		if m := pxLengthRe.FindStringSubmatch(f); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			nums = append(nums, v)
		}
	}
	return nums
}

// ParseBoxShadow parses a computed box-shadow value into an ordered effect
// list. Malformed clauses (fewer than two lengths) are skipped, not fatal.
func ParseBoxShadow(value string) []figma.Effect {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return nil
	}

	var effects []figma.Effect
	for _, clause := range splitTopLevel(value, ',') {
		if e, ok := parseShadowClause(clause); ok {
			effects = append(effects, e)
		}
	}
	return effects
}

func parseShadowClause(clause string) (figma.Effect, bool) {
	e := figma.Effect{Type: figma.EffectDropShadow, Visible: true}

	if rest, ok := cutWord(clause, "inset"); ok {
		e.Type = figma.EffectInnerShadow
		clause = rest
	}

	// Pull the color function out first so its numbers do not read as
	// lengths.
	e.Color = shadowColorDefault
	if colorStr, rest, ok := extractColorFunction(clause); ok {
		if c := ParseColor(colorStr); c != nil {
			e.Color = *c
		}
		clause = rest
	}

	nums := shadowLengths(clause)
	if len(nums) < 2 {
		return figma.Effect{}, false
	}

	e.Offset = figma.Vector{X: nums[0], Y: nums[1]}
	if len(nums) > 2 {
		e.Radius = max(nums[2], 0)
	}
	if len(nums) > 3 {
		e.Spread = nums[3]
	}
	return e, true
}

// cutWord removes a whole-word prefix or infix occurrence of word from s.
func cutWord(s, word string) (string, bool) {
	fields := strings.Fields(s)
	for i, f := range fields {
		if strings.EqualFold(f, word) {
			return strings.Join(append(fields[:i:i], fields[i+1:]...), " "), true
		}
	}
	return s, false
}

// extractColorFunction finds the first rgb()/rgba() call in a clause and
// returns it together with the clause remainder.
func extractColorFunction(clause string) (color, rest string, ok bool) {
	lower := strings.ToLower(clause)
	idx := strings.Index(lower, "rgb")
	if idx < 0 {
		return "", clause, false
	}
	open := strings.IndexByte(clause[idx:], '(')
	if open < 0 {
		return "", clause, false
	}
	open += idx
	if _, balanced := balancedArg(clause, open); !balanced {
		return "", clause, false
	}
	depth := 0
	for i := open; i < len(clause); i++ {
		switch clause[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return clause[idx : i+1], clause[:idx] + clause[i+1:], true
			}
		}
	}
	return "", clause, false
}
