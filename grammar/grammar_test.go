package grammar

import (
	"strings"
	"testing"

	verr "github.com/Dalgona/cs-compiler/error"
	"github.com/Dalgona/cs-compiler/grammar/symbol"
	"github.com/Dalgona/cs-compiler/spec"
)

func TestNewGrammar(t *testing.T) {
	prod := func(lhs string, rhs ...symbol.Symbol) *Production {
		p, err := NewProduction(symbol.NewNonTerminal(lhs), rhs)
		if err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		caption      string
		nonTerminals []string
		terminals    []rune
		prods        func() []*Production
		start        string
		causes       []error
	}{
		{
			caption:      "a well-formed grammar",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewTerminal('a')),
				}
			},
			start: "s",
		},
		{
			caption:      "a malformed non-terminal name",
			nonTerminals: []string{"s", "1st"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewTerminal('a')),
				}
			},
			start:  "s",
			causes: []error{semErrMalformedName},
		},
		{
			caption:      "a terminal outside the Unicode scalar range",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a', 0xD800},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewTerminal('a')),
				}
			},
			start:  "s",
			causes: []error{semErrInvalidTerminal},
		},
		{
			caption:      "no productions",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return nil
			},
			start:  "s",
			causes: []error{semErrNoProduction},
		},
		{
			caption:      "a production mentions an undeclared non-terminal",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewNonTerminal("foo")),
				}
			},
			start:  "s",
			causes: []error{semErrUndefinedSym},
		},
		{
			caption:      "a production mentions an undeclared terminal",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewTerminal('b')),
				}
			},
			start:  "s",
			causes: []error{semErrUndefinedSym},
		},
		{
			caption:      "the start symbol is not a declared non-terminal",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewTerminal('a')),
				}
			},
			start:  "t",
			causes: []error{semErrUndefinedStart},
		},
		{
			caption:      "duplicate productions",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewTerminal('a')),
					prod("s", symbol.NewTerminal('a')),
				}
			},
			start:  "s",
			causes: []error{semErrDuplicateProduction},
		},
		{
			caption:      "multiple problems are reported together",
			nonTerminals: []string{"s"},
			terminals:    []rune{'a'},
			prods: func() []*Production {
				return []*Production{
					prod("s", symbol.NewNonTerminal("foo")),
				}
			},
			start:  "t",
			causes: []error{semErrUndefinedSym, semErrUndefinedStart},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram, err := NewGrammar(tt.nonTerminals, tt.terminals, tt.prods(), tt.start)
			if len(tt.causes) == 0 {
				if err != nil {
					t.Fatal(err)
				}
				if gram == nil {
					t.Fatal("NewGrammar returned nil without any error")
				}
				return
			}

			if err == nil {
				t.Fatal("an expected error did not occur")
			}
			if gram != nil {
				t.Fatal("NewGrammar returned a grammar along with an error")
			}
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("unexpected error type: %T: %v", err, err)
			}
			if len(specErrs) != len(tt.causes) {
				t.Fatalf("unexpected error count\nwant: %v\ngot: %v", len(tt.causes), len(specErrs))
			}
			for i, cause := range tt.causes {
				if specErrs[i].Cause != cause {
					t.Errorf("unexpected cause\nwant: %v\ngot: %v", cause, specErrs[i].Cause)
				}
			}
		})
	}
}

func TestNewProduction(t *testing.T) {
	tests := []struct {
		caption string
		lhs     symbol.Symbol
		rhs     []symbol.Symbol
		ok      bool
	}{
		{
			caption: "a non-empty production",
			lhs:     symbol.NewNonTerminal("s"),
			rhs:     []symbol.Symbol{symbol.NewTerminal('a'), symbol.NewNonTerminal("s")},
			ok:      true,
		},
		{
			caption: "an empty production",
			lhs:     symbol.NewNonTerminal("s"),
			rhs:     []symbol.Symbol{symbol.SymbolEpsilon},
			ok:      true,
		},
		{
			caption: "the LHS must be a non-terminal",
			lhs:     symbol.NewTerminal('a'),
			rhs:     []symbol.Symbol{symbol.NewTerminal('b')},
		},
		{
			caption: "the RHS must not be empty",
			lhs:     symbol.NewNonTerminal("s"),
			rhs:     nil,
		},
		{
			caption: "ε must be the only symbol of an RHS",
			lhs:     symbol.NewNonTerminal("s"),
			rhs:     []symbol.Symbol{symbol.SymbolEpsilon, symbol.NewTerminal('a')},
		},
		{
			caption: "the end marker must not appear in an RHS",
			lhs:     symbol.NewNonTerminal("s"),
			rhs:     []symbol.Symbol{symbol.SymbolEOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			prod, err := NewProduction(tt.lhs, tt.rhs)
			if tt.ok {
				if err != nil {
					t.Fatal(err)
				}
				if prod == nil {
					t.Fatal("NewProduction returned nil without any error")
				}
				return
			}
			if err == nil {
				t.Fatal("an expected error did not occur")
			}
		})
	}
}

func TestGrammarBuilder(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		start   string
		causes  []error
	}{
		{
			caption: "the start symbol defaults to the first LHS",
			src: `
s
    : foo
    ;
foo
    : 'a'
    ;
`,
			start: "s",
		},
		{
			caption: "a start directive overrides the default",
			src: `
#start foo;

s
    : foo
    ;
foo
    : 'a'
    ;
`,
			start: "foo",
		},
		{
			caption: "a start directive must name a defined non-terminal",
			src: `
#start bar;

s
    : 'a'
    ;
`,
			causes: []error{semErrUndefinedStart},
		},
		{
			caption: "a start directive takes just one parameter",
			src: `
#start s foo;

s
    : 'a'
    ;
`,
			causes: []error{spec.SynErrDirInvalidParam},
		},
		{
			caption: "an RHS element must be a defined non-terminal or a literal",
			src: `
s
    : foo
    ;
`,
			causes: []error{semErrUndefinedSym},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			b := GrammarBuilder{
				AST: ast,
			}
			gram, err := b.Build()

			if len(tt.causes) == 0 {
				if err != nil {
					t.Fatal(err)
				}
				name, _ := gram.StartSymbol().Name()
				if name != tt.start {
					t.Fatalf("unexpected start symbol\nwant: %v\ngot: %v", tt.start, name)
				}
				return
			}

			if err == nil {
				t.Fatal("an expected error did not occur")
			}
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("unexpected error type: %T: %v", err, err)
			}
			if len(specErrs) != len(tt.causes) {
				t.Fatalf("unexpected error count\nwant: %v\ngot: %v", len(tt.causes), len(specErrs))
			}
			for i, cause := range tt.causes {
				if specErrs[i].Cause != cause {
					t.Errorf("unexpected cause\nwant: %v\ngot: %v", cause, specErrs[i].Cause)
				}
			}
		})
	}
}
