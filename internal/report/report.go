// Package report renders the stack left behind by a run.
package report

import (
	"crab/internal/object"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const Header = "Stack trace:"

type Format string

const (
	TEXT Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case TEXT, JSON, YAML:
		return f, nil
	case "":
		return TEXT, nil
	}
	return "", fmt.Errorf("unknown report format %q, expected text, json or yaml", s)
}

// Entry is the serialized form of one stack value. Streams are described by
// their shape only, never drained.
type Entry struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

type Report struct {
	Stack []Entry `json:"stack" yaml:"stack"`
}

func Build(stack *object.Stack) Report {
	r := Report{Stack: make([]Entry, 0, stack.Len())}
	for _, v := range stack.Values() {
		e := Entry{Type: string(v.Type())}
		switch v := v.(type) {
		case *object.Number:
			e.Value = v.Inspect()
		case *object.Stream:
			e.Value = v.Iter.Describe()
		}
		r.Stack = append(r.Stack, e)
	}
	return r
}

// Write prints the header line followed by the stack, bottom first.
func Write(w io.Writer, format Format, stack *object.Stack) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Build(stack))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Build(stack)); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, Text(stack))
		return err
	}
}

// Text renders the stack as a debug listing such as [Number(1), Stream(1..)].
func Text(stack *object.Stack) string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range stack.Values() {
		if i > 0 {
			b.WriteString(", ")
		}
		switch v := v.(type) {
		case *object.Number:
			b.WriteString("Number(" + v.Inspect() + ")")
		default:
			b.WriteString(v.Inspect())
		}
	}
	b.WriteString("]")
	return b.String()
}
