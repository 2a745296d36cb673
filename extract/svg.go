package extract

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// NormalizeSVG re-serializes captured SVG markup through an XML tree,
// making sure the root element carries the SVG namespace - serializers on
// the browser side routinely drop it, and the host tool refuses namespace-
// less markup. Markup which does not parse is returned verbatim: the
// materializer degrades it to a placeholder, which is more discoverable
// than dropping the node here.
func NormalizeSVG(markup string, log *zap.Logger) string {
	if strings.TrimSpace(markup) == "" {
		return markup
	}
	if log == nil {
		log = zap.NewNop()
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		log.Debug("Captured SVG does not parse, keeping verbatim", zap.Error(err))
		return markup
	}

	root := doc.Root()
	if root == nil || !strings.EqualFold(root.Tag, "svg") {
		return markup
	}
	if root.SelectAttr("xmlns") == nil {
		root.CreateAttr("xmlns", svgNamespace)
	}

	out, err := doc.WriteToString()
	if err != nil {
		log.Debug("Unable to serialize normalized SVG, keeping verbatim", zap.Error(err))
		return markup
	}
	return strings.TrimSpace(out)
}
