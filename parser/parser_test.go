package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slox-lang/slox/ast"
	"github.com/slox-lang/slox/parser"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "VarDeclList",
			src:  "let a = 1, b;",
			want: `(Program
  (VarDecl
    (VarDeclItem
      (Name a)
      (Initialiser 1))
    (VarDeclItem
      (Name b)
      (Initialiser nil))))`,
		},
		{
			name: "Assignment",
			src:  "a = 1;",
			want: `(Program
  (ExprStmt (AssignmentExpr
      (Left a)
      (Right 1))))`,
		},
		{
			name: "CompoundAssignmentDesugarsToBinaryExpr",
			src:  "x += 2;",
			want: `(Program
  (ExprStmt (AssignmentExpr
      (Left x)
      (Right (BinaryExpr
        (Left x)
        (Op +)
        (Right 2))))))`,
		},
		{
			name: "PostfixIncrement",
			src:  "i++;",
			want: `(Program
  (ExprStmt (UnaryExpr
      (Op ++)
      (Right i)
      (Postfix true))))`,
		},
		{
			name: "PrefixDecrement",
			src:  "--i;",
			want: `(Program
  (ExprStmt (UnaryExpr
      (Op --)
      (Right i)
      (Postfix false))))`,
		},
		{
			name: "NewExpr",
			src:  `new Car("F1");`,
			want: `(Program
  (ExprStmt (NewExpr (CallExpr
        (Callee Car)
        (Args [
          "F1"
        ]))))`,
		},
		{
			name: "FunDecl",
			src:  "function add(x, y) { return x + y; }",
			want: `(Program
  (FunDecl
    (Name add)
    (Params [
      x
      y
    ]
    (Body [
      (ReturnStmt (BinaryExpr
          (Left x)
          (Op +)
          (Right y)))
    ]))`,
		},
		{
			name: "ClassDeclWithSuperclass",
			src:  "class B extends A { greet() { return 1; } }",
			want: `(Program
  (ClassDecl
    (Name B)
    (Superclass A)
    (Methods [
      (MethodDecl
        (Name greet)
        (Params [])
        (Body [
          (ReturnStmt 1)
        ])
    ]))`,
		},
		{
			name: "TernaryExpr",
			src:  "a ? b : c;",
			want: `(Program
  (ExprStmt (TernaryExpr
      (Condition a)
      (Then b)
      (Else c))))`,
		},
		{
			name: "PowerBindsTighterThanFactor",
			src:  "2 * 3 ^ 4;",
			want: `(Program
  (ExprStmt (BinaryExpr
      (Left 2)
      (Op *)
      (Right (BinaryExpr
        (Left 3)
        (Op ^)
        (Right 4))))))`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			program, err := parser.Parse(strings.NewReader(test.src), "test.slox")
			if err != nil {
				t.Fatalf("Parse(%q) returned unexpected error: %s", test.src, err)
			}
			got := ast.Sprint(program)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("incorrect AST for %q (-want +got):\n%s", test.src, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantErrs []string
	}{
		{
			name:     "MissingVariableName",
			src:      "let = 1;",
			wantErrs: []string{"1:5: Syntax Error: expected variable name"},
		},
		{
			name:     "MissingExpression",
			src:      "1 + ;",
			wantErrs: []string{"1:5: Syntax Error: expected expression"},
		},
		{
			name:     "InvalidAssignmentTarget",
			src:      "a + b = 3;",
			wantErrs: []string{"1:7: Syntax Error: invalid assignment target"},
		},
		{
			name:     "NewWithoutCall",
			src:      "new 5;",
			wantErrs: []string{"Syntax Error: 'new' must be followed by a call expression"},
		},
		{
			name:     "UnterminatedString",
			src:      "let a = \"abc",
			wantErrs: []string{"1:9: Syntax Error: unterminated string literal"},
		},
		{
			name: "RecoversAtSemicolon",
			src:  "let = 1; let ; print(1);",
			wantErrs: []string{
				"1:5: Syntax Error: expected variable name",
				"1:14: Syntax Error: expected variable name",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parser.Parse(strings.NewReader(test.src), "test.slox")
			if err == nil {
				t.Fatalf("Parse(%q) returned no error", test.src)
			}
			for _, want := range test.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Parse(%q) error does not contain %q:\n%s", test.src, want, err)
				}
			}
		})
	}
}
