package repl

import (
	"crab/internal/evaluator"
	"crab/internal/lexer"
	"crab/internal/object"
	"crab/internal/report"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const (
	PROMPT = ">> "
	HELP   = `Commands:
  :stack  show the stack
  :clear  empty the stack
  :help   show this help
  :quit   leave the session
Anything else is run as a program against the session stack.`
)

// Session keeps one stack alive across the lines it evaluates.
type Session struct {
	out   io.Writer
	eval  *evaluator.Evaluator
	stack *object.Stack
}

func NewSession(out io.Writer, stack *object.Stack) *Session {
	return &Session{out: out, eval: evaluator.New(out), stack: stack}
}

func (s *Session) Stack() *object.Stack { return s.stack }

// Handle runs one line of input. It returns false once the session is over.
// A failing program leaves the stack as it was at the point of failure.
func (s *Session) Handle(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case ":quit", ":q":
		return false
	case ":stack":
		fmt.Fprintln(s.out, report.Text(s.stack))
		return true
	case ":clear":
		s.stack.Clear()
		return true
	case ":help":
		fmt.Fprintln(s.out, HELP)
		return true
	}
	if strings.HasPrefix(line, ":") {
		fmt.Fprintf(s.out, "unknown command %s, type :help\n", line)
		return true
	}

	tokens, err := lexer.Tokenize(line)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return true
	}
	if err := s.eval.Execute(tokens, s.stack); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	fmt.Fprintln(s.out, report.Text(s.stack))
	return true
}

// Start runs an interactive session on the terminal until :quit or EOF.
// History is loaded from and saved to historyPath when it is not empty.
func Start(out io.Writer, stack *object.Stack, historyPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := NewSession(out, stack)
	slog.Debug("repl started", slog.String("history", historyPath))
	for {
		line, err := ln.Prompt(PROMPT)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !session.Handle(line) {
			return nil
		}
	}
}
