package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/minicc/minic/compiler"
	"github.com/minicc/minic/compiler/format"
	"github.com/minicc/minic/compiler/parse"
	"github.com/minicc/minic/compiler/semantic"
)

type (
	// exitStatus is returned by a command which already reported its failure.
	exitStatus int
)

func main() {
	os.Exit(run(os.Args, os.Environ(), os.Stdout, os.Stderr))
}

func newApp() *cli.Command {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "parse files and print abstract syntax tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "parse files and print them formatted",
		Action:      fmtAct,
		Args:        cli.Args{},
	}

	checkCmd := &cli.Command{
		Name:        "check",
		Description: "check variables are declared before use and not redeclared in the same scope",
		Action:      checkAct,
		Args:        cli.Args{},
	}

	return &cli.Command{
		Name:        "minic",
		Description: "minic is a front end for miniC programs",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "tlog verbosity topics (semantic, scope, parse, parse_token, file)"),
		},
		Commands: []*cli.Command{
			parseCmd,
			fmtCmd,
			checkCmd,
		},
	}
}

// run executes the command line and returns process exit status.
func run(args, env []string, stdout, stderr io.Writer) int {
	app := newApp()
	app.Stdout = stdout
	app.Stderr = stderr

	err := cli.Run(app, args, env)

	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	return 0
}

// before sends logs to the command stderr. Only enabled topics are logged.
func before(c *cli.Command) error {
	l := tlog.New(tlog.NewConsoleWriter(c.Stderr, tlog.LstdFlags))
	l.SetVerbosity(c.String("verbosity"))

	tlog.DefaultLogger = l

	return nil
}

func rootContext() context.Context {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	return ctx
}

func parseAct(c *cli.Command) (err error) {
	ctx := rootContext()

	for _, a := range c.Args {
		x, err := parse.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		_, err = fmt.Fprintf(c.Stdout, "ast: %+v\n", x)
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}

	return nil
}

func fmtAct(c *cli.Command) (err error) {
	ctx := rootContext()

	var b []byte

	for _, a := range c.Args {
		x, err := parse.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		b, err = format.Format(ctx, b[:0], x)
		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}

		_, err = c.Stdout.Write(b)
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}

	return nil
}

// checkAct stops at the first invalid file.
// It prints exactly one diagnostic line and returns status 1.
func checkAct(c *cli.Command) (err error) {
	ctx := rootContext()

	for _, a := range c.Args {
		_, err = compiler.CheckFile(ctx, a)

		if status := semantic.Report(c.Stderr, err); status != 0 {
			tlog.V("check").Printw("check failed", "file", a, "err", err)

			return exitStatus(status)
		}
	}

	return nil
}

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}
