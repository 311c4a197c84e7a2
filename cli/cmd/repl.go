package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/r1tsuu/rsx/cli/cmd/repl"
	"github.com/r1tsuu/rsx/lang"
	"github.com/r1tsuu/rsx/log"
)

// Repl starts an interactive session. Bindings persist across inputs for
// the lifetime of the session. An optional script is evaluated into the
// session environment before the first prompt.
type Repl struct {
	Source string `arg:"" default:"" help:"Script to preload into the session" name:"source" optional:""`

	MaxCallDepth int    `default:"1000"     help:"Maximum function call depth"`
	Cache        string `default:"${cache}" help:"Directory for history persistence"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	interp := lang.NewInterp(lang.WithMaxCallDepth(r.MaxCallDepth))

	if err := r.preload(ctx, interp); err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "repl"))
	}

	return repl.Run(ctx, interp, r.Cache, log.Default())
}

// preload evaluates the positional script, or any --source files bound by
// the parent command, into the session environment.
func (r *Repl) preload(ctx context.Context, interp *lang.Interp) error {
	var reader io.Reader

	switch {
	case r.Source == stdinSource:
		reader = bufio.NewReader(os.Stdin)

	case r.Source != "":
		file, err := os.Open(r.Source)
		if err != nil {
			return ErrOpenInput.Wrap(err).
				With(slog.String("path", r.Source))
		}
		defer file.Close()

		reader = bufio.NewReader(file)

	default:
		if srcs := sourceFilesFrom(ctx); srcs != nil {
			reader = srcs
		}
	}

	if reader == nil {
		return nil
	}

	source, err := io.ReadAll(reader)
	if err != nil {
		return lang.ErrReadInput.Wrap(err)
	}

	_, err = interp.EvalString(ctx, string(source))

	return err
}
