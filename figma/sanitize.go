package figma

// Sanitizers clamp paint and effect values into the ranges the host tool
// accepts. The materializer runs them on everything it reads from an IR
// document since the document may come from an older extractor or have been
// edited by hand. Sanitizing already-sanitized values is a no-op.

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SanitizeColor clamps every channel to [0,1].
func SanitizeColor(c Color) Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// SanitizePaint clamps channels, opacity and stop positions of a single paint.
func SanitizePaint(p Paint) Paint {
	if p.Color != nil {
		c := SanitizeColor(*p.Color)
		p.Color = &c
	}
	p.Opacity = clamp01(p.Opacity)
	if len(p.GradientStops) > 0 {
		stops := make([]GradientStop, len(p.GradientStops))
		for i, s := range p.GradientStops {
			stops[i] = GradientStop{Color: SanitizeColor(s.Color), Position: clamp01(s.Position)}
		}
		p.GradientStops = stops
	}
	return p
}

// SanitizePaints clamps a paint list. A nil list stays nil so that "no fills
// recorded" remains distinguishable from "empty fill list".
func SanitizePaints(paints []Paint) []Paint {
	if paints == nil {
		return nil
	}
	out := make([]Paint, len(paints))
	for i, p := range paints {
		out[i] = SanitizePaint(p)
	}
	return out
}

// SanitizeEffects clamps shadow colors and forces non-negative blur radii.
func SanitizeEffects(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	out := make([]Effect, len(effects))
	for i, e := range effects {
		e.Color = SanitizeColor(e.Color)
		if e.Radius < 0 {
			e.Radius = 0
		}
		out[i] = e
	}
	return out
}

// ClampSize floors a dimension to the minimum the host tool accepts. Zero and
// negative sizes come from degenerate source geometry.
func ClampSize(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}
