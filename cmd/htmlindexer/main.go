package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/htmlindexer/cmd/htmlindexer/commands"
	"git.home.luguber.info/inful/htmlindexer/internal/config"
	ferrors "git.home.luguber.info/inful/htmlindexer/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlindexer/internal/version"
)

const usageExitCode = 2

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cli := &commands.CLI{}
	global := &commands.Global{Stdout: stdout, Stderr: stderr}
	parser, err := kong.New(cli,
		kong.Name("htmlindexer"),
		kong.Description("Generate an index.html listing for every directory in a tree."),
		kong.Writers(stdout, stderr),
		kong.Bind(global),
		commands.Vars(version.String()),
		kong.UsageOnError(),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "htmlindexer: %v\n", err)
		return 1
	}

	if commands.IsHelpRequest(args) {
		printHelp(parser, stdout)
		return 0
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return usageExitCode
	}

	if err := kctx.Run(global, cli); err != nil {
		return ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(stderr, err)
	}
	return 0
}

func printHelp(parser *kong.Kong, w io.Writer) {
	if kctx, err := kong.Trace(parser, nil); err == nil {
		_ = kctx.PrintUsage(false)
	}
	_, _ = fmt.Fprintf(w, "\nExample %s:\n\n%s", config.DefaultFile, config.ExampleJSON)
}
