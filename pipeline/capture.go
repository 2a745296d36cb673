// Package pipeline implements the subcommand actions: capturing a rendered
// page into a layered document and materializing such a document into a
// scene tree.
package pipeline

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"html2figma/archive"
	"html2figma/extract"
	"html2figma/snapshot"
	"html2figma/state"
)

// Capture reads one or more rendered pages (HTML files, page snapshots in
// JSON, or a zip archive of either), extracts layered documents from them
// and writes the results out.
func Capture(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("capture")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	env.SourceURL = cmd.String("url")

	log.Info("Capture starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Capture completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if strings.EqualFold(filepath.Ext(src), ".zip") {
		return captureArchive(ctx, src, dst, log)
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source %q: %w", src, err)
	}
	defer f.Close()
	_ = env.Rpt.StoreCopy("capture/source", src)

	page, err := loadPage(ctx, f, src)
	if err != nil {
		return err
	}
	return captureOne(ctx, page, dst, "", log)
}

// captureArchive processes every page inside a zip archive, for example a
// crawl export. Individual page failures abort the whole run: a partially
// captured archive is worse than an honest error.
func captureArchive(ctx context.Context, src, dst string, log *zap.Logger) error {
	if err := os.MkdirAll(dst, 0700); err != nil {
		return fmt.Errorf("unable to create destination directory %q: %w", dst, err)
	}

	var processed int
	err := archive.Walk(src, "", []string{".html", ".htm", ".json"}, func(_ string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open archive entry %q: %w", f.Name, err)
		}
		defer rc.Close()

		log.Info("Processing archive entry", zap.String("entry", f.Name))
		page, err := loadPage(ctx, rc, f.Name)
		if err != nil {
			return err
		}
		fallback := strings.TrimSuffix(filepath.Base(f.Name), filepath.Ext(f.Name))
		processed++
		return captureOne(ctx, page, dst, fallback, log)
	})
	if err != nil {
		return err
	}
	if processed == 0 {
		return fmt.Errorf("archive %q contains no pages", src)
	}
	log.Info("Archive processed", zap.Int("pages", processed))
	return nil
}

// captureOne extracts the layered document from a single page and writes it
// under dst.
func captureOne(ctx context.Context, page *snapshot.Page, dst, nameFallback string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	doc, err := extract.New(log).Document(page)
	if err != nil {
		return fmt.Errorf("unable to extract document: %w", err)
	}
	log.Info("Document extracted",
		zap.String("title", doc.PageTitle), zap.Int("nodes", doc.CountNodes()))

	if env.Cfg.Capture.Assets.Inline {
		in := extract.NewInliner(log)
		in.MaxAttempts = env.Cfg.Capture.Assets.MaxAttempts
		in.MaxEdge = env.Cfg.Capture.Assets.MaxEdgePx
		in.AuthToken = string(env.Cfg.Capture.Assets.AuthToken)
		in.InlineImages(ctx, doc)
	}

	title := doc.PageTitle
	if title == "" && nameFallback != "" {
		title = slug.Make(nameFallback)
	}
	out, err := outputPath(dst, outputName(env.Cfg.Document, title, env.SourceURL))
	if err != nil {
		return err
	}
	if !env.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("destination %q already exists, use --overwrite to replace it", out)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create destination file %q: %w", out, err)
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	env.Rpt.Store("capture/"+filepath.Base(out), out)

	log.Info("Document written", zap.String("file", out))
	return nil
}

// loadPage reads a page snapshot. JSON snapshots carry their own layout;
// plain HTML goes through the static builder with the configured viewport.
func loadPage(ctx context.Context, r io.Reader, name string) (*snapshot.Page, error) {
	env := state.EnvFromContext(ctx)

	if strings.EqualFold(filepath.Ext(name), ".json") {
		page, err := snapshot.ReadPage(r)
		if err != nil {
			return nil, fmt.Errorf("unable to read page snapshot %q: %w", name, err)
		}
		return page, nil
	}

	vw := float64(env.Cfg.Capture.ViewportWidth)
	vh := float64(env.Cfg.Capture.ViewportHeight)
	page, err := snapshot.FromHTML(r, vw, vh)
	if err != nil {
		return nil, fmt.Errorf("unable to build page snapshot from %q: %w", name, err)
	}
	return page, nil
}

// outputPath resolves the final file location: an existing directory gets
// the generated name appended, anything else is taken verbatim.
func outputPath(dst, name string) (string, error) {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		return filepath.Join(dst, name), nil
	}
	if ext := filepath.Ext(dst); ext != "" {
		return dst, nil
	}
	if err := os.MkdirAll(dst, 0700); err != nil {
		return "", fmt.Errorf("unable to create destination directory %q: %w", dst, err)
	}
	return filepath.Join(dst, name), nil
}
