package object

import (
	"crab/internal/token"
	"fmt"
	"math"
	"strconv"
)

const (
	NUMBER_OBJ = "NUMBER"
	STREAM_OBJ = "STREAM"
)

type ValueType string

// Value is a stack element: a *Number or a *Stream.
type Value interface {
	Type() ValueType
	Inspect() string
	Clone() Value
}

// BodyRunner evaluates a captured token sequence against a stack. Mapped and
// filtered streams call back into it for every element they pull.
type BodyRunner interface {
	Run(body []token.Token, stack *Stack) error
}

// TypeError reports a Number found where a Stream was required or the reverse.
type TypeError struct {
	Op   string
	Want ValueType
	Got  ValueType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: expected %s, got %s", e.Op, e.Want, e.Got)
}

type Number struct {
	Value float64
}

func (n *Number) Type() ValueType { return NUMBER_OBJ }
func (n *Number) Inspect() string { return FormatNumber(n.Value) }
func (n *Number) Clone() Value    { return n }

// Stream holds mutable iteration state. Clone continues from the current position.
type Stream struct {
	Iter Iterator
}

func NewStream(iter Iterator) *Stream {
	return &Stream{Iter: iter}
}

func (s *Stream) Type() ValueType { return STREAM_OBJ }
func (s *Stream) Inspect() string { return "Stream(" + s.Iter.Describe() + ")" }
func (s *Stream) Clone() Value    { return &Stream{Iter: s.Iter.Clone()} }

func (s *Stream) Next() (float64, bool, error) {
	return s.Iter.Next()
}

// Each pulls every remaining element. It diverges on an unbounded stream.
func (s *Stream) Each(fn func(float64) error) error {
	for {
		n, ok, err := s.Iter.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(n); err != nil {
			return err
		}
	}
}

// Count drains the stream and returns how many elements it produced.
func (s *Stream) Count() (int, error) {
	count := 0
	err := s.Each(func(float64) error {
		count++
		return nil
	})
	return count, err
}

// FormatNumber renders n in shortest decimal form without an exponent.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ToCount truncates n toward zero for use as an element count; NaN and
// negatives give 0.
func ToCount(n float64) int {
	switch {
	case math.IsNaN(n) || n <= 0:
		return 0
	case n >= math.MaxInt:
		return math.MaxInt
	}
	return int(n)
}

// ToInt truncates n toward zero, saturating at the int64 bounds.
func ToInt(n float64) int64 {
	switch {
	case math.IsNaN(n):
		return 0
	case n >= math.MaxInt64:
		return math.MaxInt64
	case n <= math.MinInt64:
		return math.MinInt64
	}
	return int64(n)
}
