package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	NUMBER  TokenType = "NUMBER"

	// Arithmetic
	PLUS    TokenType = "+"
	MINUS   TokenType = "-"
	TIMES   TokenType = "*"
	DIVIDE  TokenType = "/"
	MODULUS TokenType = "%"
	DIVIDES TokenType = "_"
	FLOOR   TokenType = "["
	CEIL    TokenType = "]"

	// Comparison
	GREATER TokenType = ">"
	LESS    TokenType = "<"
	EQ      TokenType = "="
	NOT_EQ  TokenType = "!"

	// Streams
	NATURAL    TokenType = "N"
	NATURAL_TO TokenType = "n"
	RANGE      TokenType = "R"
	TAKE       TokenType = "t"
	LENGTH     TokenType = ","

	// Higher order
	FOLD   TokenType = "FOLD"
	FILTER TokenType = "FILTER"
	MAP    TokenType = "MAP"

	// Stack
	POP       TokenType = ";"
	DUPLICATE TokenType = "$"
	PRINT     TokenType = "p"
)

// Token is a single opcode. Higher order tokens carry a fully parsed Body.
type Token struct {
	Type      TokenType
	Position  int // the src index of the token
	Number    float64
	Body      []Token
	KeepFirst bool
}

var operators = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': TIMES,
	'/': DIVIDE,
	'%': MODULUS,
	'_': DIVIDES,
	'[': FLOOR,
	']': CEIL,

	'>': GREATER,
	'<': LESS,
	'=': EQ,
	'!': NOT_EQ,

	'N': NATURAL,
	'n': NATURAL_TO,
	'R': RANGE,
	't': TAKE,
	',': LENGTH,

	';': POP,
	'$': DUPLICATE,
	'p': PRINT,
}

// LookupOperator returns the fixed arity opcode bound to ch.
func LookupOperator(ch rune) (TokenType, bool) {
	tok, ok := operators[ch]
	return tok, ok
}

// Sum is the body of the `s` shorthand.
func Sum(position int) Token {
	return Token{
		Type:      FOLD,
		Position:  position,
		Body:      []Token{{Type: PLUS, Position: position}},
		KeepFirst: true,
	}
}
