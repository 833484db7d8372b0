package lexer

import (
	"crab/internal/token"
	"errors"
	"strconv"
	"testing"
)

// shape renders tokens compactly so nested bodies can be compared as strings.
func shape(tokens []token.Token) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " "
		}
		switch tok.Type {
		case token.NUMBER:
			out += strconv.FormatFloat(tok.Number, 'f', -1, 64)
		case token.FOLD:
			if tok.KeepFirst {
				out += "fold1{" + shape(tok.Body) + "}"
			} else {
				out += "fold{" + shape(tok.Body) + "}"
			}
		case token.FILTER:
			out += "filter{" + shape(tok.Body) + "}"
		case token.MAP:
			out += "map{" + shape(tok.Body) + "}"
		default:
			out += string(tok.Type)
		}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"arithmetic", "+-*/%_[]", "+ - * / % _ [ ]"},
		{"comparison", "><=!", "> < = !"},
		{"streams", "NnRt,", "N n R t ,"},
		{"stack", ";$p", "; $ p"},
		{"hex literal merges", "A3", "163"},
		{"hex literals split by space", "A 3", "10 3"},
		{"hex then operator", "1F+", "31 +"},
		{"lower case is not hex", "4n", "4 n"},
		{"sum shorthand", "4ns p", "4 n fold1{+} p"},
		{"short fold keep first", "f*", "fold1{*}"},
		{"short fold", "F-", "fold{-}"},
		{"leading F is a fold", "F1", "fold{1}"},
		{"F continues a hex run", "1F", "31"},
		{"F ends a letter run", "AF", "175"},
		{"F after space is a fold", "1 F+", "1 fold{+}"},
		{"F folding F", "FF", "fold{fold{}}"},
		{"short fold inside block", "|F+}", "fold1{fold{+}}"},
		{"short map", "m$", "map{$}"},
		{"short body takes one rune", "fA3", "fold1{10} 3"},
		{"short body at eof", "f", "fold1{}"},
		{"short body of whitespace", "m p", "map{} p"},
		{"short body nests", "ff+", "fold1{fold1{}} +"},
		{"short body opens empty block", "f#1", "fold1{filter{}} 1"},
		{"block fold", `\+}`, "fold{+}"},
		{"block fold keep first", "|*2}", "fold1{* 2}"},
		{"filter block", "N#2_}", "N filter{2 _}"},
		{"map block", "NM$*}5t", "N map{$ *} 5 t"},
		{"nested blocks", "#M1+}s}", "filter{map{1 +} fold1{+}}"},
		{"unterminated block closes at eof", "#2_", "filter{2 _}"},
		{"deep nesting", "####}}}}", "filter{filter{filter{filter{}}}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := shape(tokens); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
	}{
		{"stray close", "1}", 1},
		{"close after balanced block", "#}}", 2},
		{"unknown operator", "1 x", 2},
		{"unknown operator in block", "#2?}", 2},
		{"close as short body", "f}", 1},
		{"lower case hex", "a", 0},
		{"read opcode is not supported", "r", 0},
		{"hex overflow", "8000000000000000", 0},
		{"hex overflow after F", "1FFFFFFFFFFFFFFFF", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Pos != tt.pos {
				t.Errorf("expected error at %d, got %d (%s)", tt.pos, lexErr.Pos, lexErr.Msg)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("1 #2_} p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	expected := []int{0, 2, 7}
	for i, tok := range tokens {
		if tok.Position != expected[i] {
			t.Errorf("token %d: expected position %d, got %d", i, expected[i], tok.Position)
		}
	}
	body := tokens[1].Body
	if len(body) != 2 || body[0].Position != 3 || body[1].Position != 4 {
		t.Errorf("unexpected body positions: %+v", body)
	}
}

func TestShortBodyPositionIsAbsolute(t *testing.T) {
	tokens, err := Tokenize("  m$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tokens[0].Body[0].Position; got != 3 {
		t.Errorf("expected body position 3, got %d", got)
	}
}
