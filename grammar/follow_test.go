package grammar

import (
	"testing"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

type follow struct {
	nonTerm string
	terms   []rune
	eof     bool
}

func TestGenFollowSet(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		follow  []follow
	}{
		{
			caption: "the start symbol is followed by the end marker",
			src: `
s
    : 'a'
    ;
`,
			follow: []follow{
				{nonTerm: "s", terms: []rune{}, eof: true},
			},
		},
		{
			caption: "FIRST of the remainder joins FOLLOW of a non-terminal",
			src: `
s
    : foo 'b'
    ;
foo
    : 'a'
    ;
`,
			follow: []follow{
				{nonTerm: "s", terms: []rune{}, eof: true},
				{nonTerm: "foo", terms: []rune{'b'}},
			},
		},
		{
			caption: "a nullable remainder lets FOLLOW of the LHS through",
			src: `
s
    : foo bar
    ;
foo
    : 'a'
    ;
bar
    : 'b'
    |
    ;
`,
			follow: []follow{
				{nonTerm: "s", terms: []rune{}, eof: true},
				{nonTerm: "foo", terms: []rune{'b'}, eof: true},
				{nonTerm: "bar", terms: []rune{}, eof: true},
			},
		},
		{
			caption: "a self-recursive production feeds FOLLOW back into itself",
			src: `
s
    : '(' s ')' s
    |
    ;
`,
			follow: []follow{
				{nonTerm: "s", terms: []rune{')'}, eof: true},
			},
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
			follow: []follow{
				{nonTerm: "e", terms: []rune{')'}, eof: true},
				{nonTerm: "e'", terms: []rune{')'}, eof: true},
				{nonTerm: "t", terms: []rune{')', '+'}, eof: true},
				{nonTerm: "t'", terms: []rune{')', '+'}, eof: true},
				{nonTerm: "f", terms: []rune{')', '*', '+'}, eof: true},
			},
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

			for _, ttFollow := range tt.follow {
				actual, err := flw.Find(symbol.NewNonTerminal(ttFollow.nonTerm))
				if err != nil {
					t.Fatalf("failed to get a FOLLOW entry; non-terminal: %v, error: %v", ttFollow.nonTerm, err)
				}

				if actual.EOF() != ttFollow.eof {
					t.Errorf("eof is mismatched\nwant: %v\ngot: %v", ttFollow.eof, actual.EOF())
				}
				if len(actual.Terminals()) != len(ttFollow.terms) {
					t.Fatalf("unexpected FOLLOW entry; non-terminal: %v\nwant: %q\ngot: %v", ttFollow.nonTerm, ttFollow.terms, actual.Terminals())
				}
				for _, term := range ttFollow.terms {
					if !actual.Contains(symbol.NewTerminal(term)) {
						t.Fatalf("unexpected FOLLOW entry; non-terminal: %v\nwant: %q\ngot: %v", ttFollow.nonTerm, ttFollow.terms, actual.Terminals())
					}
				}
			}
		})
	}
}
