// Package token defines the token kinds the KQL tokeniser produces and the
// positions the dispatcher and cursor operate over.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	Illegal Kind = iota
	EndOfStream

	BareWord  // table names, operator/function/field identifiers, keywords
	Number    // 123, 12.5, -1 is Minus followed by Number
	StringLit // 'quoted' or "quoted"

	Pipe         // |
	Semicolon    // ;
	Comma        // ,
	Minus        // -
	Eq           // =
	Tilde        // ~
	ParenOpen    // (
	ParenClose   // )
	BracketOpen  // [
	BracketClose // ]
	Dot          // .

	// Multi-character operator spellings the tokeniser recognises whole,
	// since splitting them into Eq/Tilde pairs would make the operator
	// library's longest-prefix matching (spec.md §4.B) redo lexical work.
	EqEq      // ==
	NotEq     // !=
	EqTilde   // =~
	NotTilde  // !~
	Bang      // ! (prefix of !contains, !has, !in, ...)
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var kindNames = map[Kind]string{
	Illegal:      "Illegal",
	EndOfStream:  "EndOfStream",
	BareWord:     "BareWord",
	Number:       "Number",
	StringLit:    "StringLit",
	Pipe:         "Pipe",
	Semicolon:    "Semicolon",
	Comma:        "Comma",
	Minus:        "Minus",
	Eq:           "Eq",
	Tilde:        "Tilde",
	ParenOpen:    "ParenOpen",
	ParenClose:   "ParenClose",
	BracketOpen:  "BracketOpen",
	BracketClose: "BracketClose",
	Dot:          "Dot",
	EqEq:         "EqEq",
	NotEq:        "NotEq",
	EqTilde:      "EqTilde",
	NotTilde:     "NotTilde",
	Bang:         "Bang",
}

// Token is one lexical unit: its kind, the byte offsets it spans in the
// source text, and the exact text it spans (spec.md §3 "Token").
type Token struct {
	Kind  Kind
	Begin int
	End   int
	Text  string
}

// String renders the token for diagnostics and test failure messages.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Begin, t.End)
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }
