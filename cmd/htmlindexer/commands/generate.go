package commands

import (
	"context"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/htmlindexer/internal/config"
	"git.home.luguber.info/inful/htmlindexer/internal/fsys"
	"git.home.luguber.info/inful/htmlindexer/internal/indexer"
	"git.home.luguber.info/inful/htmlindexer/internal/logfields"
	"git.home.luguber.info/inful/htmlindexer/internal/metrics"
	"git.home.luguber.info/inful/htmlindexer/internal/observability"
)

// GenerateCmd implements the default command.
type GenerateCmd struct {
	Root string `arg:"" optional:"" default:"." help:"Directory to index"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	ctx := observability.WithRunID(context.Background(), observability.NewRunID())

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.Source == "" {
		observability.DebugContext(ctx, "No configuration file, using defaults", logfields.Config(root.Config))
	}

	reg := prom.NewRegistry()
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if root.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	gen := indexer.New(fsys.New(), cfg, nil).
		WithRecorder(recorder).
		WithDryRun(root.DryRun)
	_, runErr := gen.Run(ctx, g.Root)

	if root.MetricsFile != "" {
		if err := metrics.WriteTextfile(root.MetricsFile, reg); err != nil {
			observability.WarnContext(ctx, "Failed to write metrics", logfields.File(root.MetricsFile), logfields.Error(err))
		}
	}
	return runErr
}
