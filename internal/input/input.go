// Package input builds the initial stack contents from standard input or a
// database query.
package input

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadNumbers reads r to the end and parses every whitespace separated
// field as a decimal number. Blank input gives no numbers.
func ReadNumbers(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}
	return ParseNumbers(string(data))
}

func ParseNumbers(text string) ([]float64, error) {
	fields := strings.Fields(text)
	numbers := make([]float64, 0, len(fields))
	for i, field := range fields {
		n, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("input field %d %q is not a number: %w", i+1, field, err)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
