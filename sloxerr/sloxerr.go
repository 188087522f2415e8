// Package sloxerr provides the error types which are shared by most of the packages in the Slox interpreter.
package sloxerr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/slox-lang/slox/token"
)

// Kind classifies an [*Error] as either a syntax error or a runtime error.
type Kind int

// The list of all error kinds.
const (
	Syntax Kind = iota
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Runtime:
		return "Runtime"
	default:
		panic(fmt.Sprintf("unexpected error kind: %d", int(k)))
	}
}

// Error describes an error that occurred during the execution of a Slox program.
// It can describe any error which can be attributed to a range of characters in the source code.
type Error struct {
	kind  Kind
	msg   string
	start token.Position
	end   token.Position
}

// New creates an [*Error] of the given kind.
// The start and end positions are the range of characters in the source code that the error applies to.
// The error message is constructed from the given format string and arguments, as in [fmt.Sprintf].
func New(kind Kind, start token.Position, end token.Position, format string, args ...any) error {
	return &Error{
		kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		start: start,
		end:   end,
	}
}

// NewFromToken creates an [*Error] which describes a problem with the given [token.Token].
func NewFromToken(kind Kind, tok token.Token, format string, args ...any) error {
	return New(kind, tok.Start(), tok.End(), format, args...)
}

// NewFromRange creates an [*Error] which describes a problem with the range of characters covered by the given
// [token.Range].
func NewFromRange(kind Kind, rang token.Range, format string, args ...any) error {
	return New(kind, rang.Start(), rang.End(), format, args...)
}

// Error formats the error by displaying the error message and highlighting the range of characters in the source
// code that the error applies to.
//
// For example:
//
//	2:7: Syntax Error: unterminated string literal
//	print("bar;
//	      ~~~~~
func (e *Error) Error() string {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	var b strings.Builder
	buildString := func() string {
		return strings.TrimSuffix(b.String(), "\n")
	}

	bold.Fprint(&b, e.start, ": ", red.Sprintf("%s Error: ", e.kind), e.msg, "\n")

	lines := make([]string, e.end.Line-e.start.Line+1)
	for i := e.start.Line; i <= e.end.Line; i++ {
		line := e.start.File.Line(i)
		if !utf8.Valid(line) {
			// If any of the lines are not valid UTF-8 then we can't display the source code, so just return the
			// error message on its own. This is a very rare case and it's not worth the effort to handle it any
			// better.
			return buildString()
		}
		lines[i-e.start.Line] = string(line)
	}
	fmt.Fprintln(&b, lines[0])
	if e.start == e.end {
		// There's nothing to highlight
		return buildString()
	}

	if len(lines) == 1 {
		fmt.Fprint(&b, strings.Repeat(" ", runewidth.StringWidth(lines[0][:e.start.Column])))
		red.Fprintln(&b, strings.Repeat("~", runewidth.StringWidth(lines[0][e.start.Column:e.end.Column])))
	} else {
		fmt.Fprint(&b, strings.Repeat(" ", runewidth.StringWidth(lines[0][:e.start.Column])))
		red.Fprintln(&b, strings.Repeat("~", runewidth.StringWidth(lines[0][e.start.Column:])))
		for _, line := range lines[1 : len(lines)-1] {
			fmt.Fprintln(&b, line)
			red.Fprintln(&b, strings.Repeat("~", runewidth.StringWidth(line)))
		}
		if lastLine := lines[len(lines)-1]; len(lastLine) > 0 {
			fmt.Fprintln(&b, lastLine)
			red.Fprintln(&b, strings.Repeat("~", runewidth.StringWidth(lastLine[:e.end.Column])))
		}
	}

	return buildString()
}

// Errors is a list of [*Error]s.
type Errors []*Error

// Add adds an [*Error] to the list of errors.
// The parameters are the same as for [New].
func (e *Errors) Add(kind Kind, start token.Position, end token.Position, format string, args ...any) {
	*e = append(*e, &Error{
		kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		start: start,
		end:   end,
	})
}

// AddFromToken adds an [*Error] to the list of errors.
// The parameters are the same as for [NewFromToken].
func (e *Errors) AddFromToken(kind Kind, tok token.Token, format string, args ...any) {
	e.Add(kind, tok.Start(), tok.End(), format, args...)
}

// AddFromRange adds an [*Error] to the list of errors.
// The parameters are the same as for [NewFromRange].
func (e *Errors) AddFromRange(kind Kind, rang token.Range, format string, args ...any) {
	e.Add(kind, rang.Start(), rang.End(), format, args...)
}

// Err orders the errors in the list by their position in the source code and returns them as a single error.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	slices.SortFunc([]*Error(e), func(e1, e2 *Error) int {
		return e1.start.Compare(e2.start)
	})
	var errs []error
	for _, err := range e {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
