package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/r1tsuu/rsx/lang"
)

// Ast parses a script and prints its syntax tree without evaluating it.
type Ast struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format" short:"f"`
	Indent int    `default:"2"                          help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin" name:"source"`
}

// Run executes the ast command.
func (a *Ast) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	var file *os.File
	if a.Source == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(a.Source)
		if err != nil {
			return ErrOpenInput.Wrap(err).
				With(slog.String("path", a.Source))
		}
		defer file.Close()
	}

	prog, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "ast"))
	}

	switch a.Format {
	case "json":
		return prog.FormatJSON(ctx, os.Stdout, a.Indent)

	case "yaml":
		return prog.FormatYAML(ctx, os.Stdout, a.Indent)

	default:
		return prog.Format(ctx, os.Stdout, a.Indent)
	}
}
