// Package lexer provides the KQL tokeniser (component G): it turns raw
// query text into the Token vector spec.md §3 treats as externally
// supplied. Scanning style and pooling are grounded on the teacher's
// scan-switch-over-first-byte lexer, reduced to the token kinds spec.md §3
// enumerates.
package lexer

import (
	"strings"
	"sync"

	"github.com/kqlbridge/kqlbridge/token"
)

// Lexer tokenizes KQL input.
type Lexer struct {
	input  string
	start  int
	pos    int
	item   token.Token
	peeked bool
}

var lexerPool = sync.Pool{
	New: func() any { return &Lexer{} },
}

// New creates a new Lexer for the input string.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Get returns a Lexer from the pool, initialized with the input.
func Get(input string) *Lexer {
	l := lexerPool.Get().(*Lexer)
	l.Reset(input)
	return l
}

// Put returns the Lexer to the pool.
func Put(l *Lexer) {
	lexerPool.Put(l)
}

// Reset resets the lexer to scan new input.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.start = 0
	l.pos = 0
	l.item = token.Token{}
	l.peeked = false
}

// Next returns the next token, consuming it.
func (l *Lexer) Next() token.Token {
	if l.peeked {
		l.peeked = false
		return l.item
	}
	l.item = l.scan()
	return l.item
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if !l.peeked {
		l.item = l.scan()
		l.peeked = true
	}
	return l.item
}

// Tokens scans the entire input into a vector, appending a trailing
// EndOfStream token. Cursor (component A) is built over this vector.
func Tokens(input string) []token.Token {
	l := Get(input)
	defer Put(l)
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == token.EndOfStream {
			return out
		}
	}
}

func (l *Lexer) scan() token.Token {
	l.skipWhitespace()
	l.start = l.pos

	if l.pos >= len(l.input) {
		return l.make(token.EndOfStream, "")
	}

	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return l.make(token.ParenOpen, "(")
	case ')':
		l.pos++
		return l.make(token.ParenClose, ")")
	case '[':
		l.pos++
		return l.make(token.BracketOpen, "[")
	case ']':
		l.pos++
		return l.make(token.BracketClose, "]")
	case ',':
		l.pos++
		return l.make(token.Comma, ",")
	case ';':
		l.pos++
		return l.make(token.Semicolon, ";")
	case '|':
		l.pos++
		return l.make(token.Pipe, "|")
	case '.':
		if l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
			return l.scanNumber()
		}
		l.pos++
		return l.make(token.Dot, ".")
	case '-':
		l.pos++
		return l.make(token.Minus, "-")
	case '=':
		return l.scanTwoChar('=', token.EqEq, token.Eq)
	case '!':
		return l.scanTwoChar('!', token.NotEq, token.Bang)
	case '~':
		l.pos++
		return l.make(token.Tilde, "~")
	case '\'':
		return l.scanString('\'')
	case '"':
		return l.scanString('"')
	}

	if isIdentStart(ch) {
		return l.scanIdent()
	}
	if isDigit(ch) {
		return l.scanNumber()
	}

	l.pos++
	return l.make(token.Illegal, string(ch))
}

// scanTwoChar handles the `=`/`!` family, which KQL overloads into `==`,
// `!=`, `=~`, `!~` as well as the lone `=` and `!` (the latter prefixes
// `!contains`, `!has`, `!in`, ...).
func (l *Lexer) scanTwoChar(first byte, _ token.Kind, oneKind token.Kind) token.Token {
	start := l.pos
	l.pos++
	if l.pos < len(l.input) {
		two := l.input[start : l.pos+1]
		if kind, ok := token.TwoCharOperators[two]; ok {
			l.pos++
			return l.make(kind, two)
		}
	}
	return l.make(oneKind, string(first))
}

func (l *Lexer) scanString(quote byte) token.Token {
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
			l.pos += 2
			continue
		}
		if l.input[l.pos] == quote {
			l.pos++
			break
		}
		l.pos++
	}
	return l.make(token.StringLit, l.input[l.start:l.pos])
}

func (l *Lexer) scanIdent() token.Token {
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	return l.make(token.BareWord, l.input[l.start:l.pos])
}

func (l *Lexer) scanNumber() token.Token {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		if !(l.pos+1 < len(l.input) && l.input[l.pos+1] == '.') {
			l.pos++
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}
	return l.make(token.Number, l.input[l.start:l.pos])
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			if strings.HasPrefix(l.input[l.pos:], "//") {
				for l.pos < len(l.input) && l.input[l.pos] != '\n' {
					l.pos++
				}
				continue
			}
			return
		}
	}
}

func (l *Lexer) make(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Begin: l.start, End: l.pos, Text: text}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
