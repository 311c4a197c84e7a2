package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/r1tsuu/rsx/lang"
)

// Run executes a script and prints its result: the value of the script's
// last top-level expression statement.
type Run struct {
	Eval   string `help:"Evaluate source text given on the command line" short:"e"`
	Source string `arg:"" default:"" help:"Script file or '-' for stdin" name:"source" optional:""`

	MaxCallDepth int `default:"1000" help:"Maximum function call depth"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	value, err := r.execute(ctx)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "run"))
	}

	fmt.Println(value.Render())

	return nil
}

// execute resolves the input source and runs it. Precedence: --eval text,
// then the positional source, then any --source files bound by the parent
// command (stdin included).
func (r *Run) execute(ctx context.Context) (lang.Value, error) {
	opts := []lang.Option{lang.WithMaxCallDepth(r.MaxCallDepth)}

	if r.Eval != "" {
		return lang.Execute(ctx, r.Eval, opts...)
	}

	if r.Source != "" {
		if r.Source == stdinSource {
			return lang.ExecuteReader(ctx, bufio.NewReader(os.Stdin), opts...)
		}

		file, err := os.Open(r.Source)
		if err != nil {
			return lang.Value{}, ErrOpenInput.Wrap(err).
				With(slog.String("path", r.Source))
		}
		defer file.Close()

		return lang.ExecuteReader(ctx, bufio.NewReader(file), opts...)
	}

	if srcs := sourceFilesFrom(ctx); srcs != nil {
		return lang.ExecuteReader(ctx, srcs, opts...)
	}

	return lang.Value{}, ErrNoInput
}
