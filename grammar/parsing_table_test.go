package grammar

import (
	"testing"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

type cell struct {
	nonTerm   string
	lookAhead symbol.Symbol
	prodNum   int
}

func TestGenParsingTable(t *testing.T) {
	tests := []struct {
		caption   string
		src       string
		cells     []cell
		missing   []cell
		conflicts int
		ll1       bool
	}{
		{
			caption: "a grammar of balanced parentheses",
			src: `
s
    : '(' s ')' s
    |
    ;
`,
			cells: []cell{
				{nonTerm: "s", lookAhead: symbol.NewTerminal('('), prodNum: 1},
				{nonTerm: "s", lookAhead: symbol.NewTerminal(')'), prodNum: 2},
				{nonTerm: "s", lookAhead: symbol.SymbolEOF, prodNum: 2},
			},
			ll1: true,
		},
		{
			caption: "the classic expression grammar",
			src: `
e
    : t e'
    ;
e'
    : '+' t e'
    |
    ;
t
    : f t'
    ;
t'
    : '*' f t'
    |
    ;
f
    : '(' e ')'
    | 'a'
    ;
`,
			cells: []cell{
				{nonTerm: "e", lookAhead: symbol.NewTerminal('('), prodNum: 1},
				{nonTerm: "e", lookAhead: symbol.NewTerminal('a'), prodNum: 1},
				{nonTerm: "e'", lookAhead: symbol.NewTerminal('+'), prodNum: 2},
				{nonTerm: "e'", lookAhead: symbol.NewTerminal(')'), prodNum: 3},
				{nonTerm: "e'", lookAhead: symbol.SymbolEOF, prodNum: 3},
				{nonTerm: "t'", lookAhead: symbol.NewTerminal('*'), prodNum: 5},
				{nonTerm: "t'", lookAhead: symbol.NewTerminal('+'), prodNum: 6},
				{nonTerm: "f", lookAhead: symbol.NewTerminal('('), prodNum: 7},
				{nonTerm: "f", lookAhead: symbol.NewTerminal('a'), prodNum: 8},
			},
			missing: []cell{
				{nonTerm: "e", lookAhead: symbol.NewTerminal('+')},
				{nonTerm: "f", lookAhead: symbol.SymbolEOF},
			},
			ll1: true,
		},
		{
			caption: "a FIRST/FIRST conflict is resolved toward the later production",
			src: `
s
    : 'a' 'b'
    | 'a' 'c'
    ;
`,
			cells: []cell{
				{nonTerm: "s", lookAhead: symbol.NewTerminal('a'), prodNum: 2},
			},
			conflicts: 1,
			ll1:       false,
		},
		{
			caption: "a FIRST/FOLLOW conflict is resolved toward the later production",
			src: `
s
    : foo 'a'
    ;
foo
    : 'a'
    |
    ;
`,
			cells: []cell{
				{nonTerm: "foo", lookAhead: symbol.NewTerminal('a'), prodNum: 3},
			},
			conflicts: 1,
			ll1:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := genGrammar(t, tt.src)
			fst, err := GenFirstSet(gram)
			if err != nil {
				t.Fatal(err)
			}
			nul := GenNullableSet(gram)
			flw, err := GenFollowSet(gram, fst, nul)
			if err != nil {
				t.Fatal(err)
			}
			table, err := GenParsingTable(gram, fst, flw)
			if err != nil {
				t.Fatal(err)
			}

			for _, c := range tt.cells {
				prod, ok := table.Find(symbol.NewNonTerminal(c.nonTerm), c.lookAhead)
				if !ok {
					t.Fatalf("a cell was not found; non-terminal: %v, lookahead: %v", c.nonTerm, c.lookAhead)
				}
				if prod.Num() != c.prodNum {
					t.Errorf("unexpected production; non-terminal: %v, lookahead: %v\nwant: %v\ngot: %v", c.nonTerm, c.lookAhead, c.prodNum, prod.Num())
				}
			}
			for _, c := range tt.missing {
				if prod, ok := table.Find(symbol.NewNonTerminal(c.nonTerm), c.lookAhead); ok {
					t.Errorf("an unexpected cell was found; non-terminal: %v, lookahead: %v, production: %v", c.nonTerm, c.lookAhead, prod.Num())
				}
			}

			if len(table.Conflicts()) != tt.conflicts {
				t.Errorf("unexpected conflict count\nwant: %v\ngot: %v", tt.conflicts, len(table.Conflicts()))
			}
			for _, conflict := range table.Conflicts() {
				if conflict.Adopted.Num() <= conflict.Discarded.Num() {
					t.Errorf("the adopted production must be the later one; adopted: %v, discarded: %v", conflict.Adopted.Num(), conflict.Discarded.Num())
				}
			}

			ll1, err := IsLL1(gram, fst, flw)
			if err != nil {
				t.Fatal(err)
			}
			if ll1 != tt.ll1 {
				t.Errorf("unexpected LL(1) check result\nwant: %v\ngot: %v", tt.ll1, ll1)
			}
		})
	}
}

func TestParsingTable_ExpectedLookAheads(t *testing.T) {
	src := `
s
    : '(' s ')' s
    |
    ;
`
	gram := genGrammar(t, src)
	fst, err := GenFirstSet(gram)
	if err != nil {
		t.Fatal(err)
	}
	nul := GenNullableSet(gram)
	flw, err := GenFollowSet(gram, fst, nul)
	if err != nil {
		t.Fatal(err)
	}
	table, err := GenParsingTable(gram, fst, flw)
	if err != nil {
		t.Fatal(err)
	}

	expected := []symbol.Symbol{
		symbol.NewTerminal('('),
		symbol.NewTerminal(')'),
		symbol.SymbolEOF,
	}
	actual := table.ExpectedLookAheads(symbol.NewNonTerminal("s"))
	if len(actual) != len(expected) {
		t.Fatalf("unexpected lookaheads\nwant: %v\ngot: %v", expected, actual)
	}
	for i, sym := range expected {
		if actual[i] != sym {
			t.Fatalf("unexpected lookaheads\nwant: %v\ngot: %v", expected, actual)
		}
	}
}
