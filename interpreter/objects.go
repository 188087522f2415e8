package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/slox-lang/slox/ast"
	"github.com/slox-lang/slox/sloxerr"
	"github.com/slox-lang/slox/token"
)

// objectType is the string representation of a Slox object's type.
type objectType string

const (
	objectTypeNumber   objectType = "number"
	objectTypeString   objectType = "string"
	objectTypeBool     objectType = "bool"
	objectTypeNone     objectType = "none"
	objectTypeFunction objectType = "function"
	objectTypeClass    objectType = "class"
)

// Format implements fmt.Formatter. All verbs have the default behaviour, except for 'm' (message) which formats
// the type for use in an error message.
func (t objectType) Format(f fmt.State, verb rune) {
	switch verb {
	case 'm':
		fmt.Fprintf(f, "'%s'", string(t))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), string(t))
	}
}

type object interface {
	String() string
	Type() objectType
}

// binaryOperand is implemented by objects which support binary operators.
type binaryOperand interface {
	// BinaryOp returns the result of applying the given binary operator to the object. If the operator is not
	// supported, then the return value is nil.
	BinaryOp(op token.Token, right object) object
}

// callable is implemented by objects which can be invoked with a call expression.
type callable interface {
	CallableName() string
	Arity() int
	Call(interpreter *Interpreter, args []object) object
}

// isTruthy reports whether an object is truthy. none, false, and the number 0 are falsy; every other value,
// including the empty string, is truthy.
func isTruthy(o object) bool {
	switch o := o.(type) {
	case noneObject:
		return false
	case boolean:
		return bool(o)
	case number:
		return o != 0
	default:
		return true
	}
}

// objectsEqual reports whether two objects are equal. Objects of distinct kinds are never equal. Numbers compare
// by IEEE-754 bit pattern, strings by their characters, and functions, classes, and instances by identity.
func objectsEqual(left, right object) bool {
	switch left := left.(type) {
	case number:
		right, ok := right.(number)
		return ok && math.Float64bits(float64(left)) == math.Float64bits(float64(right))
	case stringObject:
		right, ok := right.(stringObject)
		return ok && left == right
	case boolean:
		right, ok := right.(boolean)
		return ok && left == right
	case noneObject:
		_, ok := right.(noneObject)
		return ok
	default:
		return left == right
	}
}

type number float64

var (
	_ object        = number(0)
	_ binaryOperand = number(0)
)

func (n number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n number) Type() objectType {
	return objectTypeNumber
}

func (n number) BinaryOp(op token.Token, right object) object {
	rightNumber, ok := right.(number)
	if !ok {
		return nil
	}
	switch op.Type {
	case token.Plus:
		return n + rightNumber
	case token.Minus:
		return n - rightNumber
	case token.Asterisk:
		return n * rightNumber
	case token.Slash:
		if rightNumber == 0 {
			panic(sloxerr.NewFromToken(sloxerr.Runtime, op, "cannot divide by 0"))
		}
		return n / rightNumber
	case token.Caret:
		return number(math.Pow(float64(n), float64(rightNumber)))
	case token.Less:
		return boolean(n < rightNumber)
	case token.LessEqual:
		return boolean(n <= rightNumber)
	case token.Greater:
		return boolean(n > rightNumber)
	case token.GreaterEqual:
		return boolean(n >= rightNumber)
	default:
		return nil
	}
}

type stringObject string

var _ object = stringObject("")

func (s stringObject) String() string {
	return string(s)
}

func (s stringObject) Type() objectType {
	return objectTypeString
}

type boolean bool

var _ object = boolean(false)

func (b boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b boolean) Type() objectType {
	return objectTypeBool
}

type noneObject struct{}

var _ object = noneObject{}

func (n noneObject) String() string {
	return "none"
}

func (n noneObject) Type() objectType {
	return objectTypeNone
}

// function is a user-defined function or method, paired with the environment captured at its creation site.
type function struct {
	name    string
	params  []token.Token
	body    []ast.Stmt
	closure *environment
}

var (
	_ object   = (*function)(nil)
	_ callable = (*function)(nil)
)

func (f *function) String() string {
	return fmt.Sprintf("[function %s]", f.name)
}

func (f *function) Type() objectType {
	return objectTypeFunction
}

func (f *function) CallableName() string {
	return f.name
}

func (f *function) Arity() int {
	return len(f.params)
}

func (f *function) Call(interpreter *Interpreter, args []object) object {
	env := f.closure.Child()
	for i, param := range f.params {
		env.DefineName(param.Lexeme, args[i])
	}
	if result, ok := interpreter.executeBlock(env, f.body).(stmtResultReturn); ok {
		return result.Value
	}
	return noneObject{}
}

// Bind returns a copy of the function whose closure has this defined as the given instance.
func (f *function) Bind(inst *instance) *function {
	bound := *f
	bound.closure = f.closure.Child()
	bound.closure.DefineName(token.IdentThis, inst)
	return &bound
}

// builtinFunction is a native function installed in the global environment.
type builtinFunction struct {
	name  string
	arity int
	body  func(interpreter *Interpreter, args []object) object
}

var (
	_ object   = (*builtinFunction)(nil)
	_ callable = (*builtinFunction)(nil)
)

func (f *builtinFunction) String() string {
	return fmt.Sprintf("[builtin function %s]", f.name)
}

func (f *builtinFunction) Type() objectType {
	return objectTypeFunction
}

func (f *builtinFunction) CallableName() string {
	return f.name
}

func (f *builtinFunction) Arity() int {
	return f.arity
}

func (f *builtinFunction) Call(interpreter *Interpreter, args []object) object {
	return f.body(interpreter, args)
}

// classObject is the runtime value of a class declaration.
type classObject struct {
	name          string
	superclass    *classObject
	methodsByName map[string]*function
}

var _ object = (*classObject)(nil)

func (c *classObject) String() string {
	return fmt.Sprintf("[class %s]", c.name)
}

func (c *classObject) Type() objectType {
	return objectTypeClass
}

// Method returns the method with the given name, searching superclasses if the class doesn't define it itself.
func (c *classObject) Method(name string) (*function, bool) {
	if method, ok := c.methodsByName[name]; ok {
		return method, true
	}
	if c.superclass != nil {
		return c.superclass.Method(name)
	}
	return nil, false
}

// Arity returns the arity of the class's constructor, or 0 if it doesn't have one.
func (c *classObject) Arity() int {
	if constructor, ok := c.Method(token.IdentConstructor); ok {
		return constructor.Arity()
	}
	return 0
}

// instance is a runtime value produced by a new expression.
type instance struct {
	class             *classObject
	fieldValuesByName map[string]object
}

func newInstance(class *classObject) *instance {
	return &instance{
		class:             class,
		fieldValuesByName: make(map[string]object),
	}
}

var _ object = (*instance)(nil)

func (i *instance) String() string {
	return fmt.Sprintf("[%s object]", i.class.name)
}

func (i *instance) Type() objectType {
	return objectType(i.class.name)
}

// Get returns the value of the named property: a field if the instance has one, otherwise a method of the
// instance's class bound to the instance.
func (i *instance) Get(name token.Token) object {
	if value, ok := i.fieldValuesByName[name.Lexeme]; ok {
		return value
	}
	if method, ok := i.class.Method(name.Lexeme); ok {
		return method.Bind(i)
	}
	panic(sloxerr.NewFromToken(sloxerr.Runtime, name, "undefined property '%s'", name.Lexeme))
}

// Set sets the named field on the instance, creating it if it doesn't exist.
func (i *instance) Set(name token.Token, value object) {
	i.fieldValuesByName[name.Lexeme] = value
}
