// Package resolver implements the lexical scope analysis pass which runs between the parser and the interpreter.
package resolver

import (
	"fmt"

	"github.com/slox-lang/slox/ast"
	"github.com/slox-lang/slox/sloxerr"
	"github.com/slox-lang/slox/token"
)

// Resolve resolves the identifier references in a program to the scopes that declare them.
// It returns the bindings map: for each reference to a local declaration, the number of environments which the
// interpreter must skip from its current environment to reach the one containing the declaration. A reference
// which is absent from the map resolves against the global environment.
func Resolve(program ast.Program) (map[token.Token]int, error) {
	r := &resolver{
		scopes:    newStack[scope](),
		hopsByTok: map[token.Token]int{},
	}
	r.resolveProgram(program)
	if err := r.errs.Err(); err != nil {
		return nil, err
	}
	return r.hopsByTok, nil
}

// scope represents a lexical scope. Each name declared in the scope maps to whether it has been defined yet:
// a variable is declared before its initialiser is resolved and defined after.
type scope map[string]bool

type resolver struct {
	scopes *stack[scope]

	// map of identifier tokens to the number of scopes between the reference and its declaration
	hopsByTok map[token.Token]int

	errs sloxerr.Errors
}

// beginScope creates a new scope and returns a function that ends the scope.
func (r *resolver) beginScope() func() {
	r.scopes.Push(scope{})
	return func() {
		r.scopes.Pop()
	}
}

// declare marks a name as declared but not yet defined in the current scope. It's a no-op at the top level, where
// declarations resolve against the global environment.
func (r *resolver) declare(name string) {
	if r.scopes.Len() == 0 {
		return
	}
	r.scopes.Peek()[name] = false
}

// define marks a name as defined in the current scope. It's a no-op at the top level.
func (r *resolver) define(name string) {
	if r.scopes.Len() == 0 {
		return
	}
	r.scopes.Peek()[name] = true
}

// resolveIdent resolves a reference to the given name, recording the reference's hops count against tok.
// Referencing a name whose initialiser is currently being resolved is an error.
func (r *resolver) resolveIdent(tok token.Token, name string) {
	if r.scopes.Len() == 0 {
		return
	}
	if defined, ok := r.scopes.Peek()[name]; ok && !defined {
		r.errs.AddFromToken(sloxerr.Syntax, tok, "cannot use same variable for initialization")
		return
	}
	for i, scope := range r.scopes.Backward() {
		if scope[name] {
			r.hopsByTok[tok] = r.scopes.Len() - 1 - i
			return
		}
	}
	// The identifier will either be declared globally or not at all; the interpreter reports the latter.
}

func (r *resolver) resolveProgram(program ast.Program) {
	for _, stmt := range program.Stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case ast.VarDecl:
		r.resolveVarDecl(stmt)
	case ast.FunDecl:
		r.resolveFunDecl(stmt)
	case ast.ClassDecl:
		r.resolveClassDecl(stmt)
	case ast.ExprStmt:
		r.resolveExpr(stmt.Expr)
	case ast.BlockStmt:
		r.resolveBlockStmt(stmt)
	case ast.IfStmt:
		r.resolveIfStmt(stmt)
	case ast.WhileStmt:
		r.resolveWhileStmt(stmt)
	case ast.ReturnStmt:
		r.resolveReturnStmt(stmt)
	case ast.IllegalStmt:
		// Nothing to resolve
	default:
		panic(fmt.Sprintf("unexpected statement type: %T", stmt))
	}
}

func (r *resolver) resolveVarDecl(stmt ast.VarDecl) {
	for _, decl := range stmt.Decls {
		r.declare(decl.Name.Lexeme)
		if decl.Initialiser != nil {
			r.resolveExpr(decl.Initialiser)
		}
		r.define(decl.Name.Lexeme)
	}
}

func (r *resolver) resolveFunDecl(stmt ast.FunDecl) {
	// The name is defined in one step so that the function can refer to itself recursively.
	r.define(stmt.Name.Lexeme)
	r.resolveFun(stmt.Params, stmt.Body)
}

func (r *resolver) resolveFun(params []token.Token, body []ast.Stmt) {
	endScope := r.beginScope()
	defer endScope()
	for _, param := range params {
		r.define(param.Lexeme)
	}
	for _, stmt := range body {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveClassDecl(stmt ast.ClassDecl) {
	if !stmt.Superclass.IsZero() {
		r.resolveIdent(stmt.Superclass, stmt.Superclass.Lexeme)
	}
	r.define(stmt.Name.Lexeme)
	endScope := r.beginScope()
	defer endScope()
	r.define(token.IdentThis)
	for _, method := range stmt.Methods {
		r.resolveFun(method.Params, method.Body)
	}
}

func (r *resolver) resolveBlockStmt(stmt ast.BlockStmt) {
	endScope := r.beginScope()
	defer endScope()
	for _, stmt := range stmt.Stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveIfStmt(stmt ast.IfStmt) {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Then)
	if stmt.Else != nil {
		r.resolveStmt(stmt.Else)
	}
}

func (r *resolver) resolveWhileStmt(stmt ast.WhileStmt) {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Body)
}

func (r *resolver) resolveReturnStmt(stmt ast.ReturnStmt) {
	// A return outside of a function isn't rejected here; the interpreter reports it when the return unwinds out
	// of the top-level statement.
	if stmt.Value != nil {
		r.resolveExpr(stmt.Value)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case ast.GroupExpr:
		r.resolveExpr(expr.Expr)
	case ast.LiteralExpr:
		// Nothing to resolve
	case ast.VariableExpr:
		r.resolveIdent(expr.Name, expr.Name.Lexeme)
	case ast.ThisExpr:
		r.resolveIdent(expr.This, token.IdentThis)
	case ast.SuperExpr:
		// The interpreter finds the superclass through the instance that this is bound to, so a super
		// expression resolves the enclosing this.
		r.resolveIdent(expr.Super, token.IdentThis)
	case ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}
	case ast.NewExpr:
		r.resolveExpr(expr.Call)
	case ast.GetExpr:
		r.resolveExpr(expr.Object)
	case ast.UnaryExpr:
		r.resolveExpr(expr.Right)
	case ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case ast.TernaryExpr:
		r.resolveExpr(expr.Condition)
		r.resolveExpr(expr.Then)
		r.resolveExpr(expr.Else)
	case ast.AssignmentExpr:
		r.resolveIdent(expr.Left, expr.Left.Lexeme)
		r.resolveExpr(expr.Right)
	case ast.SetExpr:
		r.resolveExpr(expr.Object)
		r.resolveExpr(expr.Value)
	default:
		panic(fmt.Sprintf("unexpected expression type: %T", expr))
	}
}
