package main

import (
	"bufio"
	"context"
	"crab/internal/evaluator"
	"crab/internal/input"
	"crab/internal/lexer"
	"crab/internal/object"
	"crab/internal/report"
	"crab/internal/util"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// App wires one run of a program to its input and output streams.
type App struct {
	Config util.Configuration
	Format report.Format
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunFile runs the program stored at path and returns the process exit code.
func (a *App) RunFile(ctx context.Context, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.Stderr, "error: could not read file: %v\n", err)
		return 1
	}
	return a.Run(ctx, string(src))
}

// Run tokenizes src, evaluates it against the initial stack and writes the
// final report. Output printed before a failure is flushed before the error.
func (a *App) Run(ctx context.Context, src string) int {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		a.reportError(src, err)
		return 1
	}

	numbers, err := a.loadNumbers(ctx)
	if err != nil {
		fmt.Fprintf(a.Stderr, "error: %v\n", err)
		return 1
	}
	stack := object.NumberStack(numbers)

	out := bufio.NewWriter(a.Stdout)
	defer out.Flush()

	if err := evaluator.New(out).Execute(tokens, stack); err != nil {
		out.Flush()
		a.reportError(src, err)
		return 1
	}

	if err := report.Write(out, a.Format, stack); err != nil {
		slog.Error("failed to write report", slog.Any("error", err))
		return 1
	}
	return 0
}

func (a *App) loadNumbers(ctx context.Context) ([]float64, error) {
	if a.Config.Input.Enabled() {
		slog.Debug("reading input from database", slog.String("driver", a.Config.Input.Driver))
		return input.FromQuery(ctx, a.Config.Input)
	}
	return input.ReadNumbers(a.Stdin)
}

// reportError prints err and, when it can be tied to a source offset, the
// surrounding lines of src.
func (a *App) reportError(src string, err error) {
	fmt.Fprintf(a.Stderr, "error: %v\n", err)

	var lexErr *lexer.LexError
	var rtErr *evaluator.RuntimeError
	switch {
	case errors.As(err, &lexErr):
		fmt.Fprintln(a.Stderr, util.GetContextLines(src, lexErr.Pos, lexErr.Msg))
	case errors.As(err, &rtErr):
		fmt.Fprintln(a.Stderr, util.GetContextLines(src, rtErr.Pos, rtErr.Err.Error()))
	}
}
