// Package token declares the type representing a lexical token of Slox code.
package token

import (
	"cmp"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Constants for identifiers with special meaning to the interpreter.
const (
	IdentThis        = "this"
	IdentConstructor = "constructor"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type Type -linecomment

// Type is the type of a lexical token of Slox code.
type Type int

// The list of all token types.
const (
	Illegal Type = iota
	EOF

	// Keywords
	keywordsStart
	For      // for
	True     // true
	False    // false
	None     // none
	Let      // let
	If       // if
	Else     // else
	While    // while
	Function // function
	Return   // return
	Class    // class
	New      // new
	This     // this
	Extends  // extends
	Super    // super
	keywordsEnd

	// Literals
	Ident
	String
	Number

	// Symbols
	symbolsStart
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	Equal         // =
	EqualEqual    // ==
	Plus          // +
	PlusPlus      // ++
	PlusEqual     // +=
	Minus         // -
	MinusMinus    // --
	MinusEqual    // -=
	Asterisk      // *
	AsteriskEqual // *=
	Slash         // /
	SlashEqual    // /=
	Caret         // ^
	Less          // <
	LessEqual     // <=
	Greater       // >
	GreaterEqual  // >=
	Bang          // !
	BangEqual     // !=
	Question      // ?
	Colon         // :
	LeftParen     // (
	RightParen    // )
	LeftBrace     // {
	RightBrace    // }
	symbolsEnd

	typesEnd
)

var keywordTypesByIdent = func() map[string]Type {
	keywordTypesByIdent := make(map[string]Type, keywordsEnd-keywordsStart)
	for i := keywordsStart + 1; i < keywordsEnd; i++ {
		keywordTypesByIdent[i.String()] = i
	}
	return keywordTypesByIdent
}()

// IdentType returns the type of the keyword with the given identifier, or Ident if the identifier is not a
// keyword.
func IdentType(ident string) Type {
	if keywordType, ok := keywordTypesByIdent[ident]; ok {
		return keywordType
	}
	return Ident
}

// Format implements fmt.Formatter. The 'm' (message) verb formats the type quoted for use in an error message; every
// other verb prints the type's String form.
func (t Type) Format(f fmt.State, verb rune) {
	switch verb {
	case 'm':
		fmt.Fprintf(f, "'%s'", t.String())
	default:
		fmt.Fprint(f, t.String())
	}
}

// Token is a lexical token of Slox code.
type Token struct {
	StartPos Position // Position of the first character of the token
	EndPos   Position // Position of the character immediately after the token
	Type     Type
	Lexeme   string
}

// Start returns the position of the first character of the token.
func (t Token) Start() Position {
	return t.StartPos
}

// End returns the position of the character immediately after the token.
func (t Token) End() Position {
	return t.EndPos
}

// IsZero reports whether t is the zero value.
func (t Token) IsZero() bool {
	return t == Token{}
}

func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("%s: [%s]", t.StartPos, t.Type)
	}
	if (keywordsStart < t.Type && t.Type < keywordsEnd) || (symbolsStart < t.Type && t.Type < symbolsEnd) {
		return fmt.Sprintf("%s: %s", t.StartPos, t.Lexeme)
	}
	return fmt.Sprintf("%s: %s [%s]", t.StartPos, t.Lexeme, t.Type)
}

// Position is a position in a file.
type Position struct {
	File   *File
	Line   int // 1-based line number
	Column int // 0-based byte offset from the start of the line
}

// Compare returns
//
//	-1 if p comes before other,
//	 0 if p and other are the same position,
//	+1 if p comes after other.
func (p Position) Compare(other Position) int {
	if p.Line == other.Line {
		return cmp.Compare(p.Column, other.Column)
	}
	return cmp.Compare(p.Line, other.Line)
}

// displayColumn returns the 1-based column of the position in terms of the display widths of the runes which
// precede it on its line.
func (p Position) displayColumn() int {
	line := p.File.Line(p.Line)
	end := min(p.Column, len(line))
	return runewidth.StringWidth(string(line[:end])) + 1
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.displayColumn())
}

// Range describes a range of characters in the source code.
type Range interface {
	Start() Position // Start returns the position of the first character of the range.
	End() Position   // End returns the position of the character immediately after the range.
}

// File is a simple representation of a file.
type File struct {
	Name        string
	Contents    []byte
	lineOffsets []int
}

// NewFile returns a new File with the given contents.
func NewFile(name string, contents []byte) *File {
	f := &File{
		Name:     name,
		Contents: contents,
	}
	f.lineOffsets = append(f.lineOffsets, 0)
	for i := range contents {
		if contents[i] == '\n' {
			f.lineOffsets = append(f.lineOffsets, i+1)
		}
	}
	return f
}

// Line returns the nth (1-based) line of the file.
func (f *File) Line(n int) []byte {
	low := f.lineOffsets[n-1]
	high := len(f.Contents)
	if n < len(f.lineOffsets) {
		high = f.lineOffsets[n] - 1 // -1 to exclude the newline
	}
	return f.Contents[low:high]
}
