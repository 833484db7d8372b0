package lexer

import (
	"crab/internal/token"
	"fmt"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type LexError struct {
	Pos int // src byte offset of the offending rune
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Pos, e.Msg)
}

type Lexer struct {
	input        string
	offset       int  // src index of input[0], non zero for single token bodies
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination

	frames []*frame // open blocks, frames[0] is the top level
}

// frame collects the body of a block opened by `\`, `|`, `#` or `M`.
type frame struct {
	opener token.Token
	tokens []token.Token
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize lexes a whole program.
func Tokenize(input string) ([]token.Token, error) {
	tokens, err := New(input).lex()
	if err != nil {
		return nil, err
	}
	slog.Debug("tokenized program", slog.Int("bytes", len(input)), slog.Int("tokens", len(tokens)))
	return tokens, nil
}

func (l *Lexer) lex() ([]token.Token, error) {
	l.frames = []*frame{{}}

	for !l.eof() {
		pos := l.pos()

		switch ch := l.ch; {
		case unicode.IsSpace(ch):
		case ch == 'f', ch == 'F', ch == 'm': // F is only a hex digit inside a run
			body, err := l.readSingleBody()
			if err != nil {
				return nil, err
			}
			tok := token.Token{Type: token.FOLD, Position: pos, Body: body, KeepFirst: ch == 'f'}
			if ch == 'm' {
				tok = token.Token{Type: token.MAP, Position: pos, Body: body}
			}
			l.emit(tok)
		case isHexDigit(ch):
			tok, err := l.readNumber()
			if err != nil {
				return nil, err
			}
			l.emit(tok)
			continue // readNumber already stopped on the next rune
		case ch == '}':
			if len(l.frames) == 1 {
				return nil, l.errorf(pos, "unexpected '}', not inside a block")
			}
			l.closeFrame()
		case ch == '\\':
			l.openFrame(token.Token{Type: token.FOLD, Position: pos})
		case ch == '|':
			l.openFrame(token.Token{Type: token.FOLD, Position: pos, KeepFirst: true})
		case ch == '#':
			l.openFrame(token.Token{Type: token.FILTER, Position: pos})
		case ch == 'M':
			l.openFrame(token.Token{Type: token.MAP, Position: pos})
		case ch == 's':
			l.emit(token.Sum(pos))
		default:
			tt, ok := token.LookupOperator(ch)
			if !ok {
				return nil, l.errorf(pos, "unknown operator %q", ch)
			}
			l.emit(token.Token{Type: tt, Position: pos})
		}

		l.readChar()
	}

	// unterminated blocks end with the input
	for len(l.frames) > 1 {
		l.closeFrame()
	}
	return l.frames[0].tokens, nil
}

func (l *Lexer) emit(tok token.Token) {
	top := l.frames[len(l.frames)-1]
	top.tokens = append(top.tokens, tok)
}

func (l *Lexer) openFrame(opener token.Token) {
	l.frames = append(l.frames, &frame{opener: opener})
}

func (l *Lexer) closeFrame() {
	top := l.frames[len(l.frames)-1]
	l.frames = l.frames[:len(l.frames)-1]
	tok := top.opener
	tok.Body = top.tokens
	l.emit(tok)
}

// readSingleBody lexes exactly the next rune, on its own and outside of any
// block, as the body of a short form operator. The cursor is left on that
// rune. A missing rune gives an empty body.
func (l *Lexer) readSingleBody() ([]token.Token, error) {
	l.readChar()
	if l.eof() {
		return nil, nil
	}
	sub := New(l.input[l.position:l.readPosition])
	sub.offset = l.pos()
	return sub.lex()
}

// readNumber consumes the longest run of hex digits as one base 16 literal.
func (l *Lexer) readNumber() (token.Token, error) {
	pos := l.pos()
	start := l.position
	for !l.eof() && isHexDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]
	n, err := strconv.ParseInt(literal, 16, 64)
	if err != nil {
		return token.Token{}, l.errorf(pos, "hex literal %s out of range", literal)
	}
	return token.Token{Type: token.NUMBER, Position: pos, Number: float64(n)}, nil
}

func (l *Lexer) errorf(pos int, format string, a ...any) *LexError {
	return &LexError{Pos: pos, Msg: fmt.Sprintf(format, a...)}
}

func (l *Lexer) pos() int {
	return l.offset + l.position
}

func (l *Lexer) eof() bool {
	return l.position >= len(l.input)
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// isHexDigit accepts upper case digits only, lower case letters are operators.
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F')
}
