package interpreter

import "fmt"

func builtins() []*builtinFunction {
	return []*builtinFunction{
		{
			name:  "clock",
			arity: 0,
			body: func(interpreter *Interpreter, _ []object) object {
				return number(interpreter.clock())
			},
		},
		{
			name:  "print",
			arity: 1,
			body: func(interpreter *Interpreter, args []object) object {
				fmt.Fprintln(interpreter.stdout, args[0].String())
				return noneObject{}
			},
		},
	}
}
