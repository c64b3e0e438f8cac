package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/texbuild/cmd/texbuild/commands"
	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
	"git.home.luguber.info/inful/texbuild/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cli := &commands.CLI{}
	err := run(ctx, cli, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	terrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}

// run parses args into cli and executes the selected command.
func run(ctx context.Context, cli *commands.CLI, args []string, stdout, stderr io.Writer) error {
	g := &commands.Global{Ctx: ctx, Stdout: stdout, Stderr: stderr}

	parser, err := kong.New(cli,
		kong.Name("texbuild"),
		kong.Description("Compile LaTeX documents with two engine passes and tidy up afterwards."),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Bind(g),
	)
	if err != nil {
		return terrors.InternalError("failed to build command line parser", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		if _, ok := terrors.As(err); ok {
			return err
		}
		var pe *kong.ParseError
		if errors.As(err, &pe) && pe.Context != nil {
			_ = pe.Context.PrintUsage(true)
		}
		return terrors.New(terrors.CategoryInput, terrors.SeverityFatal, err.Error())
	}
	return kctx.Run()
}
