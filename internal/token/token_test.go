package token

import "testing"

func TestLookupOperator(t *testing.T) {
	tests := []struct {
		ch       rune
		expected TokenType
		ok       bool
	}{
		{'+', PLUS, true},
		{'%', MODULUS, true},
		{'_', DIVIDES, true},
		{',', LENGTH, true},
		{'$', DUPLICATE, true},
		{'p', PRINT, true},
		{'F', "", false},
		{'s', "", false},
		{'x', "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			got, ok := LookupOperator(tt.ch)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("LookupOperator(%q) = %q, %v; expected %q, %v", tt.ch, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestSum(t *testing.T) {
	tok := Sum(4)
	if tok.Type != FOLD || !tok.KeepFirst || tok.Position != 4 {
		t.Fatalf("unexpected sum token %+v", tok)
	}
	if len(tok.Body) != 1 || tok.Body[0].Type != PLUS || tok.Body[0].Position != 4 {
		t.Errorf("expected a single + body, got %+v", tok.Body)
	}
}
