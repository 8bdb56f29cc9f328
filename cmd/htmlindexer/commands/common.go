// Package commands holds the kong command tree of the htmlindexer CLI.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/htmlindexer/internal/config"
)

// Global carries writers shared by every command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"${config_file}"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	DryRun      bool             `name:"dry-run" help:"Render listings without writing any index.html"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Write index.html into every directory below ROOT (default command)"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// Vars returns the interpolation variables the CLI struct tags refer to.
func Vars(version string) kong.Vars {
	return kong.Vars{
		"version":     version,
		"config_file": config.DefaultFile,
	}
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if g != nil && g.Stderr != nil {
		w = g.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// IsHelpRequest reports whether any argument asks for help. These arguments
// take precedence over everything else on the command line.
func IsHelpRequest(args []string) bool {
	for _, a := range args {
		switch a {
		case "help", "-help", "--help", "-h":
			return true
		}
	}
	return false
}
