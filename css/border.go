package css

import (
	"strings"

	"html2figma/figma"
)

// Border is the aggregated stroke of an element. The IR does not model
// per-side borders: weight is the maximum across sides and color is the
// first resolvable one in top/right/bottom/left order.
type Border struct {
	Color  figma.Color
	Weight float64
}

var borderSides = [4]string{"top", "right", "bottom", "left"}

// ParseBorders aggregates the four border sides of a computed style. A side
// counts when it has a positive width, a style other than "none"/"hidden"
// and a resolvable color. Returns nil when no side qualifies.
func ParseBorders(st Style) *Border {
	var (
		agg      Border
		haveSide bool
	)
	for _, side := range borderSides {
		width, ok := st.Px("border-" + side + "-width")
		if !ok || width <= 0 {
			continue
		}
		switch strings.ToLower(st.Get("border-" + side + "-style")) {
		case "", "none", "hidden":
			continue
		}
		color := ParseColor(st.Get("border-" + side + "-color"))
		if color == nil {
			continue
		}
		if !haveSide {
			// First qualifying side wins the color.
			agg.Color = *color
			haveSide = true
		}
		agg.Weight = max(agg.Weight, width)
	}
	if !haveSide {
		return nil
	}
	return &agg
}

// CornerRadii are the four corner radii in pixel units, clockwise from
// top-left.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// Any reports whether at least one corner is rounded.
func (r CornerRadii) Any() bool {
	return r.TopLeft > 0 || r.TopRight > 0 || r.BottomRight > 0 || r.BottomLeft > 0
}

// ParseCornerRadii extracts pixel corner radii from a computed style.
// Percentage radii are not modeled and read as zero.
func ParseCornerRadii(st Style) CornerRadii {
	return CornerRadii{
		TopLeft:     st.PxOr("border-top-left-radius", 0),
		TopRight:    st.PxOr("border-top-right-radius", 0),
		BottomRight: st.PxOr("border-bottom-right-radius", 0),
		BottomLeft:  st.PxOr("border-bottom-left-radius", 0),
	}
}
