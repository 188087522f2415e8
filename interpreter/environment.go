package interpreter

import (
	"fmt"

	"github.com/slox-lang/slox/sloxerr"
	"github.com/slox-lang/slox/token"
)

// environment stores the values of the variables in a lexical scope.
// Environments form a chain through their parents; the root of every chain is the global environment.
type environment struct {
	parent        *environment
	valuesByIdent map[string]object
}

func newEnvironment() *environment {
	return &environment{
		valuesByIdent: make(map[string]object),
	}
}

// Child creates a new child environment of this environment.
func (e *environment) Child() *environment {
	env := newEnvironment()
	env.parent = e
	return env
}

// Define declares a variable in this environment and assigns it an initial value.
// Re-declaring a variable which already exists in a non-global environment raises a runtime error. The global
// environment permits re-declaration, which overwrites the previous value.
func (e *environment) Define(tok token.Token, value object) {
	if _, ok := e.valuesByIdent[tok.Lexeme]; ok && e.parent != nil {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, tok, "'%s' has already been declared", tok.Lexeme))
	}
	e.valuesByIdent[tok.Lexeme] = value
}

// DefineName is like Define but accepts a bare name and never raises an error. It's used for bindings which are
// created by the interpreter itself, like parameters, 'this', and the built-in functions.
func (e *environment) DefineName(name string, value object) {
	e.valuesByIdent[name] = value
}

// Assign assigns a value to a variable in this environment.
// If the variable doesn't exist then a runtime error is raised.
func (e *environment) Assign(tok token.Token, value object) {
	if _, ok := e.valuesByIdent[tok.Lexeme]; !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, tok, "undefined variable '%s'", tok.Lexeme))
	}
	e.valuesByIdent[tok.Lexeme] = value
}

// Get returns the value of a variable in this environment.
// If the variable doesn't exist then a runtime error is raised.
func (e *environment) Get(tok token.Token) object {
	value, ok := e.valuesByIdent[tok.Lexeme]
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, tok, "undefined variable '%s'", tok.Lexeme))
	}
	return value
}

// AssignAt assigns a value to a variable in the environment exactly hops parents up the chain.
func (e *environment) AssignAt(hops int, tok token.Token, value object) {
	e.ancestor(hops).Assign(tok, value)
}

// GetAt returns the value of a variable in the environment exactly hops parents up the chain.
func (e *environment) GetAt(hops int, tok token.Token) object {
	return e.ancestor(hops).Get(tok)
}

func (e *environment) ancestor(hops int) *environment {
	env := e
	for range hops {
		if env.parent == nil {
			panic(fmt.Sprintf("environment chain is shallower than %d environments", hops))
		}
		env = env.parent
	}
	return env
}
