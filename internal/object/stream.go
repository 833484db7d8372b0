package object

import (
	"crab/internal/token"
	"fmt"
)

// Iterator is a lazy sequence of numbers. Next consumes one element; ok is
// false once the sequence is exhausted. Clone returns an independent copy
// that resumes from the current position. Describe never pulls elements.
type Iterator interface {
	Next() (n float64, ok bool, err error)
	Clone() Iterator
	Describe() string
}

// Range counts upward by one from a start value, optionally up to an
// inclusive end.
type Range struct {
	next    int64
	last    int64
	bounded bool
	done    bool
}

// From is the unbounded range start, start+1, ...
func From(start int64) *Range {
	return &Range{next: start}
}

// Between is the inclusive range first..=last, empty when last < first.
func Between(first, last int64) *Range {
	return &Range{next: first, last: last, bounded: true, done: last < first}
}

func (r *Range) Next() (float64, bool, error) {
	if r.done {
		return 0, false, nil
	}
	n := r.next
	if r.bounded && n == r.last {
		r.done = true
	} else {
		r.next++
	}
	return float64(n), true, nil
}

func (r *Range) Clone() Iterator {
	c := *r
	return &c
}

func (r *Range) Describe() string {
	switch {
	case r.done:
		return "[]"
	case r.bounded:
		return fmt.Sprintf("%d..=%d", r.next, r.last)
	}
	return fmt.Sprintf("%d..", r.next)
}

// Take yields at most Remaining elements of Inner.
type Take struct {
	Inner     Iterator
	Remaining int
}

func (t *Take) Next() (float64, bool, error) {
	if t.Remaining <= 0 {
		return 0, false, nil
	}
	t.Remaining--
	return t.Inner.Next()
}

func (t *Take) Clone() Iterator {
	return &Take{Inner: t.Inner.Clone(), Remaining: t.Remaining}
}

func (t *Take) Describe() string {
	return fmt.Sprintf("take(%d, %s)", t.Remaining, t.Inner.Describe())
}

// Mapped runs Body on a fresh stack holding each element of Inner and
// yields the number left on top.
type Mapped struct {
	Inner  Iterator
	Body   []token.Token
	Runner BodyRunner
}

func (m *Mapped) Next() (float64, bool, error) {
	n, ok, err := m.Inner.Next()
	if err != nil || !ok {
		return 0, ok, err
	}
	stack := NewStack(&Number{Value: n})
	if err := m.Runner.Run(m.Body, stack); err != nil {
		return 0, false, err
	}
	result, err := stack.PopNumber("map")
	if err != nil {
		return 0, false, err
	}
	return result, true, nil
}

func (m *Mapped) Clone() Iterator {
	return &Mapped{Inner: m.Inner.Clone(), Body: m.Body, Runner: m.Runner}
}

func (m *Mapped) Describe() string {
	return fmt.Sprintf("map(%s)", m.Inner.Describe())
}

// Filtered keeps the elements of Inner for which Body, run on a fresh stack
// holding the element, leaves a truthy top.
type Filtered struct {
	Inner  Iterator
	Body   []token.Token
	Runner BodyRunner
}

func (f *Filtered) Next() (float64, bool, error) {
	for {
		n, ok, err := f.Inner.Next()
		if err != nil || !ok {
			return 0, ok, err
		}
		stack := NewStack(&Number{Value: n})
		if err := f.Runner.Run(f.Body, stack); err != nil {
			return 0, false, err
		}
		if stack.PopBool() {
			return n, true, nil
		}
	}
}

func (f *Filtered) Clone() Iterator {
	return &Filtered{Inner: f.Inner.Clone(), Body: f.Body, Runner: f.Runner}
}

func (f *Filtered) Describe() string {
	return fmt.Sprintf("filter(%s)", f.Inner.Describe())
}
