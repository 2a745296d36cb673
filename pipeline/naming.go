package pipeline

import (
	"net/url"
	"strings"

	"github.com/gosimple/slug"

	"html2figma/config"
)

// outputName derives the document file name from the page title or the
// source location, according to configuration. The result is always safe to
// use as a file name.
func outputName(cfg config.DocumentConfig, title, sourceURL string) string {
	var base string
	switch cfg.Naming {
	case config.NamingModeURL:
		base = slugFromURL(sourceURL)
	case config.NamingModeFixed:
		base = expandNameTemplate(cfg.OutputNameTemplate, title, sourceURL)
	default:
		base = slug.Make(title)
	}
	if base == "" {
		base = "document"
	}
	return config.CleanFileName(base) + ".json"
}

func slugFromURL(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return slug.Make(sourceURL)
	}
	return slug.Make(u.Host + " " + strings.Trim(u.Path, "/"))
}

func expandNameTemplate(tmpl, title, sourceURL string) string {
	host := ""
	if u, err := url.Parse(sourceURL); err == nil {
		host = u.Host
	}
	out := strings.ReplaceAll(tmpl, "{title}", slug.Make(title))
	out = strings.ReplaceAll(out, "{host}", slug.Make(host))
	return out
}
