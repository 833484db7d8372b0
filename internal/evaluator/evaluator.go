package evaluator

import (
	"crab/internal/object"
	"crab/internal/token"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// RuntimeError ties an evaluation failure to the token that raised it.
type RuntimeError struct {
	Pos int
	Op  token.TokenType
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at offset %d (%s): %v", e.Pos, e.Op, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// StackError is raised by operations that cannot fall back to a default.
type StackError struct {
	Op string
}

func (e *StackError) Error() string {
	return fmt.Sprintf("nothing to %s, the stack is empty", e.Op)
}

type Evaluator struct {
	out io.Writer
}

// New returns an evaluator that writes the output of print to out.
func New(out io.Writer) *Evaluator {
	return &Evaluator{out: out}
}

// Execute runs a whole program against stack.
func (e *Evaluator) Execute(tokens []token.Token, stack *object.Stack) error {
	slog.Debug("evaluation started", slog.Int("tokens", len(tokens)), slog.Int("stack", stack.Len()))
	if err := e.Eval(tokens, stack); err != nil {
		slog.Debug("evaluation failed", slog.Any("error", err))
		return err
	}
	slog.Debug("evaluation finished", slog.Int("stack", stack.Len()))
	return nil
}

// Run satisfies object.BodyRunner so derived streams can evaluate their bodies.
func (e *Evaluator) Run(body []token.Token, stack *object.Stack) error {
	return e.Eval(body, stack)
}

// Eval processes tokens strictly in order, mutating stack in place.
func (e *Evaluator) Eval(tokens []token.Token, stack *object.Stack) error {
	for _, tok := range tokens {
		if err := e.exec(tok, stack); err != nil {
			var rtErr *RuntimeError
			if errors.As(err, &rtErr) {
				return err
			}
			return &RuntimeError{Pos: tok.Position, Op: tok.Type, Err: err}
		}
	}
	return nil
}

func (e *Evaluator) exec(tok token.Token, stack *object.Stack) error {
	if op, ok := binaryOps[tok.Type]; ok {
		return binary(string(tok.Type), op, stack)
	}

	switch tok.Type {
	case token.NUMBER:
		stack.Push(&object.Number{Value: tok.Number})
	case token.FLOOR:
		return unary("floor", math.Floor, stack)
	case token.CEIL:
		return unary("ceil", math.Ceil, stack)
	case token.NATURAL:
		stack.Push(object.NewStream(object.From(1)))
	case token.NATURAL_TO:
		n, err := stack.PopNumber("naturalTo")
		if err != nil {
			return err
		}
		stack.Push(object.NewStream(object.Between(1, object.ToInt(n))))
	case token.RANGE:
		n, err := stack.PopNumber("range")
		if err != nil {
			return err
		}
		stack.Push(object.NewStream(object.From(object.ToInt(n))))
	case token.TAKE:
		return take(stack)
	case token.LENGTH:
		return length(stack)
	case token.FOLD:
		return e.fold(tok.Body, tok.KeepFirst, stack)
	case token.FILTER:
		st, err := stack.PopStream("filter")
		if err != nil {
			return err
		}
		stack.Push(object.NewStream(&object.Filtered{Inner: st.Iter, Body: tok.Body, Runner: e}))
	case token.MAP:
		st, err := stack.PopStream("map")
		if err != nil {
			return err
		}
		stack.Push(object.NewStream(&object.Mapped{Inner: st.Iter, Body: tok.Body, Runner: e}))
	case token.POP:
		stack.Pop()
	case token.DUPLICATE:
		top, ok := stack.Peek()
		if !ok {
			return &StackError{Op: "duplicate"}
		}
		stack.Push(top.Clone())
	case token.PRINT:
		return e.print(stack)
	default:
		return fmt.Errorf("unsupported token %s", tok.Type)
	}
	return nil
}

// take accepts its operands in either order: a stream on top is popped
// before the count beneath it, otherwise the count comes first.
func take(stack *object.Stack) error {
	var st *object.Stream
	var n float64
	var err error

	if top, ok := stack.Peek(); ok && top.Type() == object.STREAM_OBJ {
		if st, err = stack.PopStream("take"); err != nil {
			return err
		}
		if n, err = stack.PopNumber("take"); err != nil {
			return err
		}
	} else {
		if n, err = stack.PopNumber("take"); err != nil {
			return err
		}
		if st, err = stack.PopStream("take"); err != nil {
			return err
		}
	}
	stack.Push(object.NewStream(&object.Take{Inner: st.Iter, Remaining: object.ToCount(n)}))
	return nil
}

// length turns a number n into the stream 0..n and a stream into its
// element count, draining it.
func length(stack *object.Stack) error {
	v, ok := stack.Pop()
	if !ok {
		v = &object.Number{Value: 0}
	}
	switch v := v.(type) {
	case *object.Number:
		end := object.ToInt(v.Value)
		if end <= 0 {
			stack.Push(object.NewStream(object.Between(0, -1)))
		} else {
			stack.Push(object.NewStream(object.Between(0, end-1)))
		}
	case *object.Stream:
		count, err := v.Count()
		if err != nil {
			return err
		}
		stack.Push(&object.Number{Value: float64(count)})
	}
	return nil
}

// fold leaves an accumulator on the shared stack: each element is pushed and
// body combines it with whatever the previous step left on top.
func (e *Evaluator) fold(body []token.Token, keepFirst bool, stack *object.Stack) error {
	st, err := stack.PopStream("fold")
	if err != nil {
		return err
	}
	if keepFirst {
		first, ok, err := st.Next()
		if err != nil {
			return err
		}
		if ok {
			stack.Push(&object.Number{Value: first})
		}
	}
	return st.Each(func(n float64) error {
		stack.Push(&object.Number{Value: n})
		return e.Eval(body, stack)
	})
}

func (e *Evaluator) print(stack *object.Stack) error {
	v, ok := stack.Pop()
	if !ok {
		v = &object.Number{Value: 0}
	}
	switch v := v.(type) {
	case *object.Number:
		_, err := fmt.Fprintf(e.out, "%s\n", v.Inspect())
		return err
	case *object.Stream:
		err := v.Each(func(n float64) error {
			_, err := fmt.Fprintf(e.out, "%s ", object.FormatNumber(n))
			return err
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out)
		return err
	}
	return nil
}
