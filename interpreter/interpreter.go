// Package interpreter implements the evaluator for Slox programs.
package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/slox-lang/slox/ast"
	"github.com/slox-lang/slox/sloxerr"
	"github.com/slox-lang/slox/token"
)

// stmtResult is the result of executing a statement. It's how a return statement unwinds the statements between
// it and the frame of the function being returned from.
type stmtResult interface {
	stmtResult()
}

type stmtResultNone struct{}

func (stmtResultNone) stmtResult() {}

type stmtResultReturn struct {
	Return token.Token
	Value  object
}

func (stmtResultReturn) stmtResult() {}

// Interpreter is the evaluator for Slox programs.
type Interpreter struct {
	globals   *environment
	hopsByTok map[token.Token]int

	stdout io.Writer
	stderr io.Writer
	clock  func() float64
}

// Option can be passed to New to configure the interpreter.
type Option func(*Interpreter)

// WithStdout sets the writer that the print built-in writes to. The default is os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// WithStderr sets the writer that runtime errors are reported to. The default is os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stderr = w
	}
}

// WithClock sets the time source used by the clock built-in. It should return a monotonically non-decreasing
// wall-time measurement in milliseconds. The default is the real clock.
func WithClock(clock func() float64) Option {
	return func(i *Interpreter) {
		i.clock = clock
	}
}

// New constructs a new Interpreter with the given options.
func New(opts ...Option) *Interpreter {
	interpreter := &Interpreter{
		globals: newEnvironment(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		clock: func() float64 {
			return float64(time.Now().UnixNano()) / float64(time.Millisecond)
		},
	}
	for _, opt := range opts {
		opt(interpreter)
	}
	for _, fn := range builtins() {
		interpreter.globals.DefineName(fn.name, fn)
	}
	return interpreter
}

// Interpret interprets a program using the bindings produced by the resolver.
// Execution is best-effort: a runtime error during one top-level statement is reported to the configured stderr
// and execution continues with the next top-level statement. A non-nil error is returned if any statement failed.
// Interpret can be called multiple times with different programs and the state will be maintained between calls.
func (i *Interpreter) Interpret(program ast.Program, hopsByTok map[token.Token]int) error {
	i.hopsByTok = hopsByTok
	hadError := false
	for _, stmt := range program.Stmts {
		if err := i.safelyInterpretStmt(stmt); err != nil {
			fmt.Fprintln(i.stderr, err)
			hadError = true
		}
	}
	if hadError {
		return errors.New("one or more statements could not be executed")
	}
	return nil
}

func (i *Interpreter) safelyInterpretStmt(stmt ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if runtimeErr, ok := r.(*sloxerr.Error); ok {
				err = runtimeErr
			} else {
				panic(r)
			}
		}
	}()
	if result, ok := i.interpretStmt(i.globals, stmt).(stmtResultReturn); ok {
		return sloxerr.NewFromToken(sloxerr.Runtime, result.Return, "%m can only be used inside a function", token.Return)
	}
	return nil
}

func (i *Interpreter) interpretStmt(env *environment, stmt ast.Stmt) stmtResult {
	switch stmt := stmt.(type) {
	case ast.VarDecl:
		i.interpretVarDecl(env, stmt)
	case ast.FunDecl:
		i.interpretFunDecl(env, stmt)
	case ast.ClassDecl:
		i.interpretClassDecl(env, stmt)
	case ast.ExprStmt:
		i.interpretExpr(env, stmt.Expr)
	case ast.BlockStmt:
		return i.executeBlock(env.Child(), stmt.Stmts)
	case ast.IfStmt:
		return i.interpretIfStmt(env, stmt)
	case ast.WhileStmt:
		return i.interpretWhileStmt(env, stmt)
	case ast.ReturnStmt:
		return i.interpretReturnStmt(env, stmt)
	default:
		panic(fmt.Sprintf("unexpected statement type: %T", stmt))
	}
	return stmtResultNone{}
}

func (i *Interpreter) interpretVarDecl(env *environment, stmt ast.VarDecl) {
	for _, decl := range stmt.Decls {
		var value object = noneObject{}
		if decl.Initialiser != nil {
			value = i.interpretExpr(env, decl.Initialiser)
		}
		env.Define(decl.Name, value)
	}
}

func (i *Interpreter) interpretFunDecl(env *environment, stmt ast.FunDecl) {
	fun := &function{
		name:    stmt.Name.Lexeme,
		params:  stmt.Params,
		body:    stmt.Body,
		closure: env,
	}
	env.Define(stmt.Name, fun)
}

func (i *Interpreter) interpretClassDecl(env *environment, stmt ast.ClassDecl) {
	var superclass *classObject
	if !stmt.Superclass.IsZero() {
		superclassObject := i.resolveIdent(env, stmt.Superclass)
		var ok bool
		if superclass, ok = superclassObject.(*classObject); !ok {
			panic(sloxerr.NewFromToken(sloxerr.Runtime, stmt.Superclass, "superclass must be a class but '%s' is a %m object", stmt.Superclass.Lexeme, superclassObject.Type()))
		}
	}
	methodsByName := make(map[string]*function, len(stmt.Methods))
	for _, decl := range stmt.Methods {
		methodsByName[decl.Name.Lexeme] = &function{
			name:    stmt.Name.Lexeme + "." + decl.Name.Lexeme,
			params:  decl.Params,
			body:    decl.Body,
			closure: env,
		}
	}
	class := &classObject{
		name:          stmt.Name.Lexeme,
		superclass:    superclass,
		methodsByName: methodsByName,
	}
	env.Define(stmt.Name, class)
}

func (i *Interpreter) executeBlock(env *environment, stmts []ast.Stmt) stmtResult {
	for _, stmt := range stmts {
		result := i.interpretStmt(env, stmt)
		if _, ok := result.(stmtResultNone); !ok {
			return result
		}
	}
	return stmtResultNone{}
}

func (i *Interpreter) interpretIfStmt(env *environment, stmt ast.IfStmt) stmtResult {
	condition := i.interpretExpr(env, stmt.Condition)
	if isTruthy(condition) {
		return i.interpretStmt(env, stmt.Then)
	} else if stmt.Else != nil {
		return i.interpretStmt(env, stmt.Else)
	}
	return stmtResultNone{}
}

func (i *Interpreter) interpretWhileStmt(env *environment, stmt ast.WhileStmt) stmtResult {
	for isTruthy(i.interpretExpr(env, stmt.Condition)) {
		if result, ok := i.interpretStmt(env, stmt.Body).(stmtResultReturn); ok {
			return result
		}
	}
	return stmtResultNone{}
}

func (i *Interpreter) interpretReturnStmt(env *environment, stmt ast.ReturnStmt) stmtResultReturn {
	var value object = noneObject{}
	if stmt.Value != nil {
		value = i.interpretExpr(env, stmt.Value)
	}
	return stmtResultReturn{Return: stmt.Return, Value: value}
}

func (i *Interpreter) interpretExpr(env *environment, expr ast.Expr) object {
	switch expr := expr.(type) {
	case ast.GroupExpr:
		return i.interpretExpr(env, expr.Expr)
	case ast.LiteralExpr:
		return i.interpretLiteralExpr(expr)
	case ast.VariableExpr:
		return i.resolveIdent(env, expr.Name)
	case ast.ThisExpr:
		return i.resolveIdent(env, expr.This)
	case ast.SuperExpr:
		return i.interpretSuperExpr(env, expr)
	case ast.CallExpr:
		return i.interpretCallExpr(env, expr)
	case ast.NewExpr:
		return i.interpretNewExpr(env, expr)
	case ast.GetExpr:
		return i.interpretGetExpr(env, expr)
	case ast.UnaryExpr:
		return i.interpretUnaryExpr(env, expr)
	case ast.BinaryExpr:
		return i.interpretBinaryExpr(env, expr)
	case ast.TernaryExpr:
		return i.interpretTernaryExpr(env, expr)
	case ast.AssignmentExpr:
		return i.interpretAssignmentExpr(env, expr)
	case ast.SetExpr:
		return i.interpretSetExpr(env, expr)
	default:
		panic(fmt.Sprintf("unexpected expression type: %T", expr))
	}
}

func (i *Interpreter) interpretLiteralExpr(expr ast.LiteralExpr) object {
	switch tok := expr.Value; tok.Type {
	case token.Number:
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			panic(fmt.Sprintf("unexpected error parsing number literal: %s", err))
		}
		return number(value)
	case token.String:
		return stringObject(tok.Lexeme[1 : len(tok.Lexeme)-1]) // Remove surrounding quotes
	case token.True, token.False:
		return boolean(tok.Type == token.True)
	case token.None:
		return noneObject{}
	default:
		panic(fmt.Sprintf("unexpected literal type: %s", tok.Type))
	}
}

// resolveIdent returns the value of the variable identified by tok, reading it from the environment recorded for
// tok by the resolver, or from the global environment if the resolver didn't record one.
func (i *Interpreter) resolveIdent(env *environment, tok token.Token) object {
	if hops, ok := i.hopsByTok[tok]; ok {
		return env.GetAt(hops, tok)
	}
	return i.globals.Get(tok)
}

// assignIdent is the assignment counterpart of resolveIdent.
func (i *Interpreter) assignIdent(env *environment, tok token.Token, value object) {
	if hops, ok := i.hopsByTok[tok]; ok {
		env.AssignAt(hops, tok, value)
	} else {
		i.globals.Assign(tok, value)
	}
}

func (i *Interpreter) interpretSuperExpr(env *environment, expr ast.SuperExpr) object {
	hops, ok := i.hopsByTok[expr.Super]
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, expr.Super, "%m can only be used inside a method", token.Super))
	}
	thisTok := expr.Super
	thisTok.Lexeme = token.IdentThis
	inst, ok := env.GetAt(hops, thisTok).(*instance)
	if !ok {
		panic(fmt.Sprintf("'%s' is not bound to an instance", token.IdentThis))
	}
	superclass := inst.class.superclass
	if superclass == nil {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, expr.Super, "class '%s' has no superclass", inst.class.name))
	}
	method, ok := superclass.Method(expr.Name.Lexeme)
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, expr.Name, "undefined property '%s'", expr.Name.Lexeme))
	}
	return method.Bind(inst)
}

func (i *Interpreter) interpretCallExpr(env *environment, expr ast.CallExpr) object {
	callee := i.interpretExpr(env, expr.Callee)

	if class, ok := callee.(*classObject); ok {
		panic(sloxerr.NewFromRange(sloxerr.Runtime, expr, "'%s' can only be instantiated using the 'new' operator", class.name))
	}
	fn, ok := callee.(callable)
	if !ok {
		panic(sloxerr.NewFromRange(sloxerr.Runtime, expr.Callee, "%m object is not callable", callee.Type()))
	}
	if fn.Arity() != len(expr.Args) {
		panic(sloxerr.NewFromRange(sloxerr.Runtime, expr, "%s() accepts %d arguments but %d were given", fn.CallableName(), fn.Arity(), len(expr.Args)))
	}

	args := make([]object, len(expr.Args))
	for j, arg := range expr.Args {
		args[j] = i.interpretExpr(env, arg)
	}
	return fn.Call(i, args)
}

func (i *Interpreter) interpretNewExpr(env *environment, expr ast.NewExpr) object {
	callee := i.interpretExpr(env, expr.Call.Callee)
	class, ok := callee.(*classObject)
	if !ok {
		panic(sloxerr.NewFromRange(sloxerr.Runtime, expr.Call.Callee, "%m can only be used with classes but %m object was given", token.New, callee.Type()))
	}
	if class.Arity() != len(expr.Call.Args) {
		panic(sloxerr.NewFromRange(sloxerr.Runtime, expr, "%s() accepts %d arguments but %d were given", class.name, class.Arity(), len(expr.Call.Args)))
	}

	args := make([]object, len(expr.Call.Args))
	for j, arg := range expr.Call.Args {
		args[j] = i.interpretExpr(env, arg)
	}
	inst := newInstance(class)
	if constructor, ok := class.Method(token.IdentConstructor); ok {
		// The constructor's return value, if any, is discarded.
		constructor.Bind(inst).Call(i, args)
	}
	return inst
}

func (i *Interpreter) interpretGetExpr(env *environment, expr ast.GetExpr) object {
	obj := i.interpretExpr(env, expr.Object)
	inst, ok := obj.(*instance)
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, expr.Name, "only instances have properties but %m object was given", obj.Type()))
	}
	return inst.Get(expr.Name)
}

func (i *Interpreter) interpretUnaryExpr(env *environment, expr ast.UnaryExpr) object {
	switch expr.Op.Type {
	case token.PlusPlus, token.MinusMinus:
		return i.interpretIncDecExpr(env, expr)
	case token.Bang:
		if isTruthy(i.interpretExpr(env, expr.Right)) {
			return number(1)
		}
		return number(0)
	case token.Minus:
		return -i.requireNumber(env, expr.Op, expr.Right)
	case token.Plus:
		return i.requireNumber(env, expr.Op, expr.Right)
	default:
		panic(fmt.Sprintf("unexpected unary operator: %s", expr.Op.Type))
	}
}

// interpretIncDecExpr evaluates an increment or decrement of a variable. The new value is written back through
// the variable's binding. A prefix expression yields the new value, a postfix expression the old one.
func (i *Interpreter) interpretIncDecExpr(env *environment, expr ast.UnaryExpr) object {
	variable, ok := expr.Right.(ast.VariableExpr)
	if !ok {
		panic(sloxerr.NewFromRange(sloxerr.Runtime, expr, "%m operand must be a variable", expr.Op.Type))
	}
	old, ok := i.resolveIdent(env, variable.Name).(number)
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, variable.Name, "%m operand must be a %s", expr.Op.Type, objectTypeNumber))
	}
	delta := number(1)
	if expr.Op.Type == token.MinusMinus {
		delta = -1
	}
	i.assignIdent(env, variable.Name, old+delta)
	if expr.Postfix {
		return old
	}
	return old + delta
}

func (i *Interpreter) requireNumber(env *environment, op token.Token, expr ast.Expr) number {
	value := i.interpretExpr(env, expr)
	n, ok := value.(number)
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, op, "%m operand must be a %s but %m object was given", op.Type, objectTypeNumber, value.Type()))
	}
	return n
}

func (i *Interpreter) interpretBinaryExpr(env *environment, expr ast.BinaryExpr) object {
	left := i.interpretExpr(env, expr.Left)
	right := i.interpretExpr(env, expr.Right)

	switch expr.Op.Type {
	case token.EqualEqual:
		// The behaviour of == is independent of the types of the operands, so we can implement it here.
		return boolean(objectsEqual(left, right))
	case token.BangEqual:
		return boolean(!objectsEqual(left, right))
	case token.Plus:
		// + concatenates if either operand is a string, otherwise it adds.
		_, leftIsString := left.(stringObject)
		_, rightIsString := right.(stringObject)
		if leftIsString || rightIsString {
			return stringObject(left.String() + right.String())
		}
	}

	if left, ok := left.(binaryOperand); ok {
		if result := left.BinaryOp(expr.Op, right); result != nil {
			return result
		}
	}
	panic(sloxerr.NewFromToken(sloxerr.Runtime, expr.Op, "binary operator %m is not supported for %m and %m", expr.Op.Type, left.Type(), right.Type()))
}

func (i *Interpreter) interpretTernaryExpr(env *environment, expr ast.TernaryExpr) object {
	if isTruthy(i.interpretExpr(env, expr.Condition)) {
		return i.interpretExpr(env, expr.Then)
	}
	return i.interpretExpr(env, expr.Else)
}

func (i *Interpreter) interpretAssignmentExpr(env *environment, expr ast.AssignmentExpr) object {
	value := i.interpretExpr(env, expr.Right)
	i.assignIdent(env, expr.Left, value)
	return value
}

func (i *Interpreter) interpretSetExpr(env *environment, expr ast.SetExpr) object {
	obj := i.interpretExpr(env, expr.Object)
	inst, ok := obj.(*instance)
	if !ok {
		panic(sloxerr.NewFromToken(sloxerr.Runtime, expr.Name, "only instances have properties but %m object was given", obj.Type()))
	}
	value := i.interpretExpr(env, expr.Value)
	inst.Set(expr.Name, value)
	return value
}
