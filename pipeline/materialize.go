package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"html2figma/canvas"
	"html2figma/figma"
	"html2figma/materialize"
	"html2figma/state"
	"html2figma/utils/debug"
)

// Materialize reads a layered document and rebuilds it as a scene tree on
// the in-memory canvas, reporting what was constructed.
func Materialize(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("materialize")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	log.Info("Materialization starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Materialization completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open document %q: %w", src, err)
	}
	defer f.Close()

	doc, err := figma.ReadDocument(f)
	if err != nil {
		return fmt.Errorf("unable to read document %q: %w", src, err)
	}
	env.Rpt.Store("materialize/document.json", src)

	scene := canvas.NewMemory(log)
	for _, font := range env.Cfg.Scene.ExtraFonts {
		scene.AddFont(figma.FontName{Family: font.Family, Style: font.Style})
	}

	m := materialize.New(scene, log, materialize.WithProgress(
		materialize.ProgressFunc(func(done, total int) {
			log.Debug("Scene construction progress", zap.Int("done", done), zap.Int("total", total))
		})))

	res, err := m.Document(ctx, doc)
	if err != nil {
		return fmt.Errorf("unable to materialize document: %w", err)
	}

	problems := multierr.Errors(res.Problems)
	for _, p := range problems {
		log.Warn("Recovered construction problem", zap.Error(p))
	}
	log.Info("Scene constructed",
		zap.Int("visited", res.Visited), zap.Int("layers", res.Layers), zap.Int("problems", len(problems)))

	if env.Cfg.Scene.DumpTree || cmd.Bool("dump") {
		dump := dumpScene(res.Root)
		fmt.Fprint(os.Stdout, dump)
		env.Rpt.StoreData("materialize/scene.txt", []byte(dump))
	}
	return nil
}

// dumpScene renders the constructed scene as an indented tree, one line per
// layer.
func dumpScene(root canvas.Container) string {
	node, ok := root.(*canvas.SceneNode)
	if !ok {
		return ""
	}
	tw := debug.NewTreeWriter()
	dumpNode(tw, node, 0)
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, n *canvas.SceneNode, depth int) {
	tw.Line(depth, "%s %q (%.0f,%.0f) %.0fx%.0f fills=%d effects=%d",
		n.Kind, n.Name, n.X, n.Y, n.W, n.H, len(n.Fills), len(n.Effects))
	if n.Kind == canvas.KindText {
		tw.TextBlock(depth+1, "characters", n.Characters)
	}
	for _, c := range n.Children {
		dumpNode(tw, c, depth+1)
	}
}
