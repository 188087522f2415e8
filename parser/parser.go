// Package parser implements a parser for Slox source code.
package parser

import (
	"fmt"
	"io"

	"github.com/slox-lang/slox/ast"
	"github.com/slox-lang/slox/sloxerr"
	"github.com/slox-lang/slox/token"
)

// Parse parses the source code read from r.
// filename is the name that positions in errors are associated with.
// If an error is returned then an incomplete AST will still be returned along with it.
func Parse(r io.Reader, filename string) (ast.Program, error) {
	lexer, err := newLexer(r, filename)
	if err != nil {
		return ast.Program{}, fmt.Errorf("constructing parser: %s", err)
	}

	p := &parser{lexer: lexer}
	lexer.SetErrorHandler(func(tok token.Token, format string, args ...any) {
		p.addErrorf(tok, format, args...)
	})

	return p.Parse()
}

type parser struct {
	lexer   *lexer
	tok     token.Token // token currently being considered
	nextTok token.Token

	errs       sloxerr.Errors
	lastErrPos token.Position
}

// Parse parses the source code and returns the root node of the abstract syntax tree.
// If an error is returned then an incomplete AST will still be returned along with it.
func (p *parser) Parse() (ast.Program, error) {
	// Populate tok and nextTok
	p.next()
	p.next()
	program := ast.Program{Stmts: p.parseStmtsUntil(token.EOF)}
	return program, p.errs.Err()
}

func (p *parser) parseStmtsUntil(types ...token.Type) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		for _, t := range types {
			if p.tok.Type == t {
				return stmts
			}
		}
		stmts = append(stmts, p.safelyParseStmt())
	}
}

func (p *parser) safelyParseStmt() (stmt ast.Stmt) {
	from := p.tok
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); ok {
				to := p.sync()
				stmt = ast.IllegalStmt{From: from, To: to}
			} else {
				panic(r)
			}
		}
	}()
	return p.parseStmt()
}

// sync synchronises the parser with the next statement by discarding tokens up to and including the next ; or }.
// This is used to recover from a parsing error. The final token discarded is returned.
func (p *parser) sync() token.Token {
	finalTok := p.tok
	for {
		switch p.tok.Type {
		case token.Semicolon, token.RightBrace:
			finalTok = p.tok
			p.next()
			return finalTok
		case token.EOF:
			return finalTok
		}
		finalTok = p.tok
		p.next()
	}
}

func (p *parser) parseStmt() ast.Stmt {
	switch tok := p.tok; {
	case p.match(token.Let):
		return p.parseVarDecl(tok)
	case p.match(token.Function):
		return p.parseFunDecl(tok)
	case p.match(token.Class):
		return p.parseClassDecl(tok)
	case p.match(token.LeftBrace):
		return p.parseBlock(tok)
	case p.match(token.If):
		return p.parseIfStmt(tok)
	case p.match(token.While):
		return p.parseWhileStmt(tok)
	case p.match(token.Return):
		return p.parseReturnStmt(tok)
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseVarDecl(letTok token.Token) ast.VarDecl {
	var decls []ast.VarDeclItem
	for {
		name := p.expectf(token.Ident, "expected variable name")
		var initialiser ast.Expr
		if p.match(token.Equal) {
			initialiser = p.parseExpr()
		}
		decls = append(decls, ast.VarDeclItem{Name: name, Initialiser: initialiser})
		if !p.match(token.Comma) {
			break
		}
	}
	semicolon := p.expect(token.Semicolon)
	return ast.VarDecl{Let: letTok, Decls: decls, Semicolon: semicolon}
}

func (p *parser) parseFunDecl(functionTok token.Token) ast.FunDecl {
	name := p.expectf(token.Ident, "expected function name")
	params := p.parseParams()
	body := p.parseBlock(p.expect(token.LeftBrace))
	return ast.FunDecl{
		Function:   functionTok,
		Name:       name,
		Params:     params,
		Body:       body.Stmts,
		RightBrace: body.RightBrace,
	}
}

func (p *parser) parseClassDecl(classTok token.Token) ast.ClassDecl {
	name := p.expectf(token.Ident, "expected class name")
	var superclass token.Token
	if p.match(token.Extends) {
		superclass = p.expectf(token.Ident, "expected superclass name")
	}
	p.expect(token.LeftBrace)
	var methods []ast.MethodDecl
	for p.tok.Type == token.Ident {
		methods = append(methods, p.parseMethodDecl())
	}
	rightBrace := p.expect(token.RightBrace)
	return ast.ClassDecl{
		Class:      classTok,
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
		RightBrace: rightBrace,
	}
}

func (p *parser) parseMethodDecl() ast.MethodDecl {
	name := p.expectf(token.Ident, "expected method name")
	params := p.parseParams()
	body := p.parseBlock(p.expect(token.LeftBrace))
	return ast.MethodDecl{
		Name:       name,
		Params:     params,
		Body:       body.Stmts,
		RightBrace: body.RightBrace,
	}
}

func (p *parser) parseParams() []token.Token {
	p.expect(token.LeftParen)
	var params []token.Token
	if p.match(token.RightParen) {
		return params
	}
	for {
		params = append(params, p.expectf(token.Ident, "expected parameter name"))
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightParen)
	return params
}

func (p *parser) parseBlock(leftBrace token.Token) ast.BlockStmt {
	stmts := p.parseStmtsUntil(token.RightBrace, token.EOF)
	rightBrace := p.expect(token.RightBrace)
	return ast.BlockStmt{LeftBrace: leftBrace, Stmts: stmts, RightBrace: rightBrace}
}

func (p *parser) parseIfStmt(ifTok token.Token) ast.IfStmt {
	p.expect(token.LeftParen)
	condition := p.parseExpr()
	p.expect(token.RightParen)
	thenBranch := p.parseStmt()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.parseStmt()
	}
	return ast.IfStmt{If: ifTok, Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *parser) parseWhileStmt(whileTok token.Token) ast.WhileStmt {
	p.expect(token.LeftParen)
	condition := p.parseExpr()
	p.expect(token.RightParen)
	body := p.parseStmt()
	return ast.WhileStmt{While: whileTok, Condition: condition, Body: body}
}

func (p *parser) parseReturnStmt(returnTok token.Token) ast.ReturnStmt {
	semicolon, ok := p.match2(token.Semicolon)
	var value ast.Expr
	if !ok {
		value = p.parseExpr()
		semicolon = p.expect(token.Semicolon)
	}
	return ast.ReturnStmt{Return: returnTok, Value: value, Semicolon: semicolon}
}

func (p *parser) parseExprStmt() ast.ExprStmt {
	expr := p.parseExpr()
	semicolon := p.expect(token.Semicolon)
	return ast.ExprStmt{Expr: expr, Semicolon: semicolon}
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignmentExpr()
}

// binaryTypesByCompoundAssignType maps each compound assignment operator to the binary operator that it desugars
// into.
var binaryTypesByCompoundAssignType = map[token.Type]token.Type{
	token.PlusEqual:     token.Plus,
	token.MinusEqual:    token.Minus,
	token.AsteriskEqual: token.Asterisk,
	token.SlashEqual:    token.Slash,
}

func (p *parser) parseAssignmentExpr() ast.Expr {
	expr := p.parseTernaryExpr()
	op, ok := p.match2(token.Equal, token.PlusEqual, token.MinusEqual, token.AsteriskEqual, token.SlashEqual)
	if !ok {
		return expr
	}

	right := p.parseAssignmentExpr()
	if binaryType, ok := binaryTypesByCompoundAssignType[op.Type]; ok {
		// x += e desugars into x = x + e. The synthesised operator token is placed one column past the right
		// operand.
		binaryOp := token.Token{
			StartPos: right.End(),
			EndPos:   right.End(),
			Type:     binaryType,
			Lexeme:   binaryType.String(),
		}
		binaryOp.StartPos.Column++
		binaryOp.EndPos.Column += 2
		right = ast.BinaryExpr{Left: expr, Op: binaryOp, Right: right}
	}

	switch left := expr.(type) {
	case ast.VariableExpr:
		return ast.AssignmentExpr{Left: left.Name, Right: right}
	case ast.GetExpr:
		return ast.SetExpr{Object: left.Object, Name: left.Name, Value: right}
	default:
		p.addErrorf(op, "invalid assignment target")
		return expr
	}
}

func (p *parser) parseTernaryExpr() ast.Expr {
	expr := p.parseEqualityExpr()
	if p.match(token.Question) {
		then := p.parseTernaryExpr()
		p.expect(token.Colon)
		elseExpr := p.parseTernaryExpr()
		expr = ast.TernaryExpr{
			Condition: expr,
			Then:      then,
			Else:      elseExpr,
		}
	}
	return expr
}

func (p *parser) parseEqualityExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseComparisonExpr, token.EqualEqual, token.BangEqual)
}

func (p *parser) parseComparisonExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseTermExpr, token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
}

func (p *parser) parseTermExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseFactorExpr, token.Plus, token.Minus)
}

func (p *parser) parseFactorExpr() ast.Expr {
	return p.parseBinaryExpr(p.parsePowerExpr, token.Asterisk, token.Slash)
}

func (p *parser) parsePowerExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseUnaryExpr, token.Caret)
}

// parseBinaryExpr parses a binary expression which uses the given operators. next is a function which parses an
// expression of next highest precedence.
func (p *parser) parseBinaryExpr(next func() ast.Expr, operators ...token.Type) ast.Expr {
	expr := next()
	for {
		op, ok := p.match2(operators...)
		if !ok {
			break
		}
		right := next()
		expr = ast.BinaryExpr{
			Left:  expr,
			Op:    op,
			Right: right,
		}
	}
	return expr
}

func (p *parser) parseUnaryExpr() ast.Expr {
	if p.tok.Type == token.Ident && (p.nextTok.Type == token.PlusPlus || p.nextTok.Type == token.MinusMinus) {
		name, _ := p.match2(token.Ident)
		op, _ := p.match2(token.PlusPlus, token.MinusMinus)
		return ast.UnaryExpr{Op: op, Right: ast.VariableExpr{Name: name}, Postfix: true}
	}
	if op, ok := p.match2(token.Minus, token.Plus, token.Bang, token.PlusPlus, token.MinusMinus); ok {
		right := p.parseUnaryExpr()
		return ast.UnaryExpr{
			Op:    op,
			Right: right,
		}
	}
	return p.parseNewExpr()
}

func (p *parser) parseNewExpr() ast.Expr {
	newTok, ok := p.match2(token.New)
	if !ok {
		return p.parseCallExpr()
	}

	callee := p.parsePrimaryExpr()
	for p.match(token.Dot) {
		name := p.expectf(token.Ident, "expected property name")
		callee = ast.GetExpr{Object: callee, Name: name}
	}
	if !p.match(token.LeftParen) {
		p.addErrorf(p.tok, "%m must be followed by a call expression", token.New)
		panic(unwind{})
	}
	call := p.finishCallExpr(callee)

	return p.parseCallSuffixes(ast.NewExpr{New: newTok, Call: call})
}

func (p *parser) parseCallExpr() ast.Expr {
	return p.parseCallSuffixes(p.parsePrimaryExpr())
}

func (p *parser) parseCallSuffixes(expr ast.Expr) ast.Expr {
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCallExpr(expr)
		case p.match(token.Dot):
			name := p.expectf(token.Ident, "expected property name")
			expr = ast.GetExpr{
				Object: expr,
				Name:   name,
			}
		default:
			return expr
		}
	}
}

// finishCallExpr parses the arguments and closing parenthesis of a call expression whose callee and opening
// parenthesis have already been consumed.
func (p *parser) finishCallExpr(callee ast.Expr) ast.CallExpr {
	var args []ast.Expr
	rightParen, ok := p.match2(token.RightParen)
	if !ok {
		for {
			args = append(args, p.parseExpr())
			if !p.match(token.Comma) {
				break
			}
		}
		rightParen = p.expect(token.RightParen)
	}
	return ast.CallExpr{
		Callee:     callee,
		Args:       args,
		RightParen: rightParen,
	}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch tok := p.tok; {
	case p.match(token.Number, token.String, token.True, token.False, token.None):
		return ast.LiteralExpr{Value: tok}
	case p.match(token.Ident):
		return ast.VariableExpr{Name: tok}
	case p.match(token.This):
		return ast.ThisExpr{This: tok}
	case p.match(token.Super):
		p.expect(token.Dot)
		name := p.expectf(token.Ident, "expected superclass method name")
		return ast.SuperExpr{Super: tok, Name: name}
	case p.match(token.LeftParen):
		expr := p.parseExpr()
		rightParen := p.expect(token.RightParen)
		return ast.GroupExpr{LeftParen: tok, Expr: expr, RightParen: rightParen}
	default:
		p.addErrorf(tok, "expected expression")
		panic(unwind{})
	}
}

// match reports whether the current token is one of the given types and advances the parser if so.
func (p *parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.tok.Type == t {
			p.next()
			return true
		}
	}
	return false
}

// match2 is like match but also returns the matched token.
func (p *parser) match2(types ...token.Type) (token.Token, bool) {
	tok := p.tok
	return tok, p.match(types...)
}

// expect returns the current token and advances the parser if it has the given type. Otherwise, an "expected %m"
// error is added and the method panics to unwind the stack.
func (p *parser) expect(t token.Type) token.Token {
	return p.expectf(t, "expected %m", t)
}

// expectf is like expect but accepts a format string for the error message.
func (p *parser) expectf(t token.Type, format string, a ...any) token.Token {
	if p.tok.Type == t {
		tok := p.tok
		p.next()
		return tok
	}
	p.addErrorf(p.tok, format, a...)
	panic(unwind{})
}

// next advances the parser to the next token.
func (p *parser) next() {
	p.tok = p.nextTok
	p.nextTok = p.lexer.Next()
}

// addErrorf adds a syntax error which describes a problem with the given token. At most one error is reported
// per position, so that the parser doesn't report a cascade of errors for a token that the lexer has already
// diagnosed.
func (p *parser) addErrorf(tok token.Token, format string, args ...any) {
	if len(p.errs) > 0 && tok.Start() == p.lastErrPos {
		return
	}
	p.lastErrPos = tok.Start()
	p.errs.AddFromToken(sloxerr.Syntax, tok, format, args...)
}

// unwind is used as a panic value so that we can unwind the stack and recover from a parsing error without
// having to check for errors after every call to each parsing method.
type unwind struct{}
