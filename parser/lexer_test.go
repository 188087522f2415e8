package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slox-lang/slox/token"
)

// lex lexes src and returns the string representation of each token along with the messages of any syntax
// errors.
func lex(t *testing.T, src string) (toks []string, errs []string) {
	t.Helper()
	l, err := newLexer(strings.NewReader(src), "test.slox")
	if err != nil {
		t.Fatalf("constructing lexer: %s", err)
	}
	l.SetErrorHandler(func(tok token.Token, format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	})
	for {
		tok := l.Next()
		toks = append(toks, tok.String())
		if tok.Type == token.EOF {
			return toks, errs
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantToks []string
		wantErrs []string
	}{
		{
			name: "VarDecl",
			src:  "let x = 5;",
			wantToks: []string{
				"1:1: let",
				"1:5: x [Ident]",
				"1:7: =",
				"1:9: 5 [Number]",
				"1:10: ;",
				"1:11: [EOF]",
			},
		},
		{
			name: "Keywords",
			src:  "for true false none let if else while function return class new this extends super",
			wantToks: []string{
				"1:1: for",
				"1:5: true",
				"1:10: false",
				"1:16: none",
				"1:21: let",
				"1:25: if",
				"1:28: else",
				"1:33: while",
				"1:39: function",
				"1:48: return",
				"1:55: class",
				"1:61: new",
				"1:65: this",
				"1:70: extends",
				"1:78: super",
				"1:83: [EOF]",
			},
		},
		{
			name: "ConstructorIsAnOrdinaryIdentifier",
			src:  "constructor",
			wantToks: []string{
				"1:1: constructor [Ident]",
				"1:12: [EOF]",
			},
		},
		{
			name: "CompoundOperators",
			src:  "== != <= >= ++ -- += -= *= /=",
			wantToks: []string{
				"1:1: ==",
				"1:4: !=",
				"1:7: <=",
				"1:10: >=",
				"1:13: ++",
				"1:16: --",
				"1:19: +=",
				"1:22: -=",
				"1:25: *=",
				"1:28: /=",
				"1:30: [EOF]",
			},
		},
		{
			name: "SingleCharacterOperators",
			src:  "+ - * / ^ < > = ! ? : ; , . { } ( )",
			wantToks: []string{
				"1:1: +",
				"1:3: -",
				"1:5: *",
				"1:7: /",
				"1:9: ^",
				"1:11: <",
				"1:13: >",
				"1:15: =",
				"1:17: !",
				"1:19: ?",
				"1:21: :",
				"1:23: ;",
				"1:25: ,",
				"1:27: .",
				"1:29: {",
				"1:31: }",
				"1:33: (",
				"1:35: )",
				"1:36: [EOF]",
			},
		},
		{
			name: "NumberLiterals",
			src:  "0 123 1.5 10.25",
			wantToks: []string{
				"1:1: 0 [Number]",
				"1:3: 123 [Number]",
				"1:7: 1.5 [Number]",
				"1:11: 10.25 [Number]",
				"1:16: [EOF]",
			},
		},
		{
			name: "NumberFollowedByDotIsAPropertyAccess",
			src:  "123.x",
			wantToks: []string{
				"1:1: 123 [Number]",
				"1:4: .",
				"1:5: x [Ident]",
				"1:6: [EOF]",
			},
		},
		{
			name: "LineComments",
			src:  "1; // one\n2; # two\n3;",
			wantToks: []string{
				"1:1: 1 [Number]",
				"1:2: ;",
				"2:1: 2 [Number]",
				"2:2: ;",
				"3:1: 3 [Number]",
				"3:2: ;",
				"3:3: [EOF]",
			},
		},
		{
			name: "BlockComment",
			src:  "1; /* a\nb */ 2;",
			wantToks: []string{
				"1:1: 1 [Number]",
				"1:2: ;",
				"2:6: 2 [Number]",
				"2:7: ;",
				"2:8: [EOF]",
			},
		},
		{
			name: "UnterminatedBlockCommentIsNotDiagnosed",
			src:  "1; /* a",
			wantToks: []string{
				"1:1: 1 [Number]",
				"1:2: ;",
				"1:8: [EOF]",
			},
		},
		{
			name: "StringLiteral",
			src:  `"abc";`,
			wantToks: []string{
				`1:1: "abc" [String]`,
				"1:6: ;",
				"1:7: [EOF]",
			},
		},
		{
			name: "MultiLineStringLiteral",
			src:  "\"a\nb\";",
			wantToks: []string{
				"1:1: \"a\nb\" [String]",
				"2:3: ;",
				"2:4: [EOF]",
			},
		},
		{
			name: "UnterminatedStringLiteral",
			src:  `"abc`,
			wantToks: []string{
				`1:1: "abc [Illegal]`,
				"1:5: [EOF]",
			},
			wantErrs: []string{"unterminated string literal"},
		},
		{
			name: "UnexpectedCharacter",
			src:  "1 @ 2;",
			wantToks: []string{
				"1:1: 1 [Number]",
				"1:3: @ [Illegal]",
				"1:5: 2 [Number]",
				"1:6: ;",
				"1:7: [EOF]",
			},
			wantErrs: []string{"unexpected character @"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotToks, gotErrs := lex(t, test.src)
			if diff := cmp.Diff(test.wantToks, gotToks); diff != "" {
				t.Errorf("incorrect tokens (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantErrs, gotErrs); diff != "" {
				t.Errorf("incorrect errors (-want +got):\n%s", diff)
			}
		})
	}
}
