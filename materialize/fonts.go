package materialize

import (
	"context"

	"go.uber.org/zap"

	"html2figma/figma"
)

// FallbackFamily is tried when the requested family cannot be resolved.
const FallbackFamily = "Inter"

const regularStyle = "Regular"

// fontCandidates builds the ordered fallback cascade for a requested font:
// exact match, requested family regular, fallback family with requested
// style, fallback regular. Duplicates collapse so each combination is tried
// once.
func fontCandidates(family, style string) []figma.FontName {
	if family == "" {
		family = FallbackFamily
	}
	if style == "" {
		style = regularStyle
	}
	all := []figma.FontName{
		{Family: family, Style: style},
		{Family: family, Style: regularStyle},
		{Family: FallbackFamily, Style: style},
		{Family: FallbackFamily, Style: regularStyle},
	}
	seen := make(map[figma.FontName]bool, len(all))
	out := all[:0]
	for _, f := range all {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// resolveFont walks the cascade and returns the first combination the host
// can load. When everything fails the fallback regular is forced anyway:
// text content cannot be set without a resolved font, and a wrong font is
// better than a dropped layer.
func (m *Materializer) resolveFont(ctx context.Context, family, style string) figma.FontName {
	for _, cand := range fontCandidates(family, style) {
		if err := m.api.ResolveFont(ctx, cand); err == nil {
			return cand
		}
	}
	forced := figma.FontName{Family: FallbackFamily, Style: regularStyle}
	m.log.Warn("No font candidate resolved, forcing fallback",
		zap.String("family", family), zap.String("style", style))
	_ = m.api.ResolveFont(ctx, forced)
	return forced
}
