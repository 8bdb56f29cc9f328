// Package indexer writes an index.html listing into every directory reached
// by the traversal engine, honoring the configured overwrite protection.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/htmlindexer/internal/config"
	ferrors "git.home.luguber.info/inful/htmlindexer/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlindexer/internal/fsys"
	"git.home.luguber.info/inful/htmlindexer/internal/logfields"
	"git.home.luguber.info/inful/htmlindexer/internal/metrics"
	"git.home.luguber.info/inful/htmlindexer/internal/observability"
	"git.home.luguber.info/inful/htmlindexer/internal/render"
	"git.home.luguber.info/inful/htmlindexer/internal/traverse"
)

// OutputFile is the name of the listing written into each directory.
const OutputFile = "index.html"

const (
	outputPerm = 0o644
	readmeName = "readme.md"
)

// Outcome is the result of processing one node.
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomePreserved Outcome = "preserved"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Result summarizes one run.
type Result struct {
	RunID     string
	Root      string
	Stats     traverse.Stats
	Written   int
	Preserved int
	Skipped   int
	Failed    int
	DryRun    bool
	Duration  time.Duration
}

// Generator is the traversal visitor that renders and writes listings.
// A Generator is not safe for concurrent runs.
type Generator struct {
	fs       fsys.FS
	cfg      *config.Config
	renderer *render.Renderer
	recorder metrics.Recorder
	dryRun   bool

	root   string
	result Result
}

// New returns a Generator. A nil cfg means the default configuration.
func New(fs fsys.FS, cfg *config.Config, renderer *render.Renderer) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{
		fs:       fs,
		cfg:      cfg,
		renderer: renderer,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// WithDryRun renders listings without writing them.
func (g *Generator) WithDryRun(dryRun bool) *Generator {
	g.dryRun = dryRun
	return g
}

// Run walks root and indexes every directory. The returned Result is filled
// in even when the run fails.
func (g *Generator) Run(ctx context.Context, root string) (Result, error) {
	start := time.Now()
	g.root = filepath.Clean(root)

	runID := observability.GetContext(ctx).RunID
	if runID == "" {
		runID = observability.NewRunID()
		ctx = observability.WithRunID(ctx, runID)
	}
	ctx = observability.WithRoot(ctx, g.root)
	g.result = Result{RunID: runID, Root: g.root, DryRun: g.dryRun}

	if g.renderer == nil {
		r, err := render.Load(g.cfg.Template)
		if err != nil {
			return g.result, ferrors.WrapError(err, ferrors.CategoryConfig, "load template").
				Fatal().
				WithContext("template", g.cfg.Template).
				Build()
		}
		g.renderer = r
	}

	observability.InfoContext(ctx, "Generating index files",
		logfields.Config(g.cfg.Source), logfields.DryRun(g.dryRun))

	stats, err := traverse.Walk(ctx, g.fs, g.root, g.Visit, traverse.Options{
		Ignore: g.predicate(g.cfg.IsExcluded),
		Prune:  g.predicate(g.cfg.IsPruned),
	})
	g.result.Stats = stats
	g.result.Duration = time.Since(start)
	g.recordStats(stats)
	g.recorder.ObserveRunDuration(g.result.Duration)

	if err != nil {
		g.recorder.IncRunOutcome("failed")
		return g.result, classifyRunError(err, g.root)
	}
	g.recorder.IncRunOutcome("success")

	observability.InfoContext(ctx, "Index generation complete",
		slog.Int("written", g.result.Written),
		slog.Int("preserved", g.result.Preserved),
		slog.Int("ignored", stats.Ignored),
		slog.Int("pruned", stats.Pruned),
		slog.Int("skipped_paths", stats.Skipped),
		logfields.DurationMS(float64(g.result.Duration.Microseconds())/1000))
	return g.result, nil
}

// Visit is the traverse.Visitor for a run.
func (g *Generator) Visit(ctx context.Context, node traverse.Node) error {
	_, err := g.Index(ctx, node)
	return err
}

// Index processes one node and reports its outcome. A Failed outcome is
// always accompanied by a non-nil error.
func (g *Generator) Index(ctx context.Context, node traverse.Node) (Outcome, error) {
	if !node.IsDirectory {
		return g.count(ctx, node, OutcomeSkipped), nil
	}
	if g.renderer == nil {
		return g.fail(ctx, node, ferrors.InternalError("generator has no renderer").Build())
	}

	out := filepath.Join(node.FullPath, OutputFile)
	exists, err := g.fs.Exists(out)
	if err != nil {
		return g.fail(ctx, node, ferrors.WrapError(err, ferrors.CategoryFileSystem, "check existing index").
			Fatal().
			WithContext("output", out).
			Build())
	}
	if exists && g.cfg.IsProtected(g.rel(out)) {
		observability.InfoContext(ctx, "Preserving protected index", logfields.Output(out))
		return g.count(ctx, node, OutcomePreserved), nil
	}

	files := g.listing(node)
	data := render.Data{Files: files, Basename: g.title(node)}
	if g.cfg.Readme {
		data.Readme, data.Description = g.readme(ctx, node, files)
	}

	page, err := g.renderer.Render(data)
	if err != nil {
		return g.fail(ctx, node, ferrors.WrapError(err, ferrors.CategoryRender, "render listing").
			Fatal().
			WithContext("dir", node.FullPath).
			Build())
	}

	if g.dryRun {
		observability.InfoContext(ctx, "Would write index",
			logfields.Output(out), logfields.Children(len(files)), logfields.DryRun(true))
		return g.count(ctx, node, OutcomeWritten), nil
	}

	// #nosec G306 -- listings are published web content.
	if err := g.fs.WriteFile(out, []byte(page), outputPerm); err != nil {
		return g.fail(ctx, node, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write index").
			Fatal().
			WithContext("output", out).
			Build())
	}
	observability.DebugContext(ctx, "Wrote index", logfields.Output(out), logfields.Children(len(files)))
	return g.count(ctx, node, OutcomeWritten), nil
}

// listing returns the children shown in a directory's page: everything
// except the generated file itself and excluded paths.
func (g *Generator) listing(node traverse.Node) []string {
	files := make([]string, 0, len(node.Children))
	for _, name := range node.Children {
		if name == OutputFile {
			continue
		}
		if g.cfg.IsExcluded(g.rel(filepath.Join(node.FullPath, name))) {
			continue
		}
		files = append(files, name)
	}
	return files
}

// title is the directory name shown in the page. The root is reported by
// its absolute base name so "." never appears.
func (g *Generator) title(node traverse.Node) string {
	if node.FullPath != g.root {
		return node.Name
	}
	abs, err := filepath.Abs(node.FullPath)
	if err != nil {
		return node.Name
	}
	return filepath.Base(abs)
}

func (g *Generator) readme(ctx context.Context, node traverse.Node, files []string) (template.HTML, string) {
	for _, name := range files {
		if !strings.EqualFold(name, readmeName) {
			continue
		}
		path := filepath.Join(node.FullPath, name)
		src, err := g.fs.ReadFile(path)
		if err != nil {
			observability.WarnContext(ctx, "Cannot read README, listing without it",
				logfields.File(path), logfields.Error(err))
			return "", ""
		}
		html, heading, err := g.renderer.Readme(src)
		if err != nil {
			observability.WarnContext(ctx, "Cannot render README, listing without it",
				logfields.File(path), logfields.Error(err))
			return "", ""
		}
		return html, heading
	}
	return "", ""
}

// rel expresses path relative to the run root, the form configured patterns
// are written against.
func (g *Generator) rel(path string) string {
	if g.root == "" {
		return path
	}
	r, err := filepath.Rel(g.root, path)
	if err != nil {
		return path
	}
	return r
}

func (g *Generator) predicate(match func(string) bool) traverse.Predicate {
	return func(path string) (bool, error) {
		return match(g.rel(path)), nil
	}
}

func (g *Generator) count(ctx context.Context, node traverse.Node, o Outcome) Outcome {
	observability.DebugContext(ctx, "Processed entry", logfields.Path(node.FullPath), logfields.Outcome(string(o)))
	switch o {
	case OutcomeWritten:
		g.result.Written++
	case OutcomePreserved:
		g.result.Preserved++
	case OutcomeSkipped:
		g.result.Skipped++
	case OutcomeFailed:
		g.result.Failed++
	}
	g.recorder.IncIndexOutcome(metrics.OutcomeLabel(o))
	return o
}

func (g *Generator) fail(ctx context.Context, node traverse.Node, err error) (Outcome, error) {
	observability.ErrorContext(ctx, "Index generation failed",
		logfields.Dir(node.FullPath), logfields.Error(err))
	return g.count(ctx, node, OutcomeFailed), err
}

func (g *Generator) recordStats(s traverse.Stats) {
	g.recorder.AddEntries(metrics.EntryDirectory, s.Directories)
	g.recorder.AddEntries(metrics.EntryFile, s.Files)
	g.recorder.AddEntries(metrics.EntryIgnored, s.Ignored)
	g.recorder.AddEntries(metrics.EntryPruned, s.Pruned)
	g.recorder.AddEntries(metrics.EntrySkipped, s.Skipped)
}

// classifyRunError leaves classified visitor errors as they are and
// classifies traversal failures.
func classifyRunError(err error, root string) error {
	if ferrors.IsClassified(err) {
		return err
	}
	if errors.Is(err, traverse.ErrTraversalAborted) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "traversal aborted").
			Fatal().
			WithContext("root", root).
			Build()
	}
	return ferrors.WrapError(err, ferrors.CategoryInternal, fmt.Sprintf("indexing %s failed", root)).
		Fatal().
		Build()
}
