package grammar

import (
	"reflect"
	"testing"

	"github.com/Dalgona/cs-compiler/spec"
)

func genDescription(t *testing.T, src string) *spec.Description {
	t.Helper()

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
	ll1, err := IsLL1(gram, fst, flw)
	if err != nil {
		t.Fatal(err)
	}
	desc, err := DescribeGrammar(gram, nul, fst, flw, table, ll1)
	if err != nil {
		t.Fatal(err)
	}
	return desc
}

func TestDescribeGrammar(t *testing.T) {
	src := `
s
    : '(' s ')' s
    |
    ;
`
	desc := genDescription(t, src)

	// The description must not depend on map iteration order.
	for i := 0; i < 10; i++ {
		again := genDescription(t, src)
		if !reflect.DeepEqual(desc, again) {
			t.Fatalf("the description must be deterministic\nfirst: %+v\nagain: %+v", desc, again)
		}
	}
}

func TestDescribeGrammar_content(t *testing.T) {
	src := `
s
    : foo 'b'
    ;
foo
    : 'a'
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
	desc, err := DescribeGrammar(gram, nul, fst, flw, table, true)
	if err != nil {
		t.Fatal(err)
	}

	if desc.Start != "s" {
		t.Errorf("unexpected start symbol: %v", desc.Start)
	}
	if len(desc.Terminals) != 2 || desc.Terminals[0] != "'a'" || desc.Terminals[1] != "'b'" {
		t.Errorf("unexpected terminals: %v", desc.Terminals)
	}
	if len(desc.NonTerminals) != 2 {
		t.Fatalf("unexpected non-terminal count: %v", len(desc.NonTerminals))
	}

	foo := desc.NonTerminals[0]
	if foo.Name != "foo" || !foo.Nullable || !foo.FirstEmpty || foo.FollowEOF {
		t.Errorf("unexpected non-terminal description: %+v", foo)
	}
	if len(foo.First) != 1 || foo.First[0] != "'a'" {
		t.Errorf("unexpected FIRST: %v", foo.First)
	}
	if len(foo.Follow) != 1 || foo.Follow[0] != "'b'" {
		t.Errorf("unexpected FOLLOW: %v", foo.Follow)
	}

	s := desc.NonTerminals[1]
	if s.Name != "s" || s.Nullable || s.FirstEmpty || !s.FollowEOF {
		t.Errorf("unexpected non-terminal description: %+v", s)
	}

	if len(desc.Productions) != 3 {
		t.Fatalf("unexpected production count: %v", len(desc.Productions))
	}
	if desc.Productions[2].Number != 3 || desc.Productions[2].LHS != "foo" || len(desc.Productions[2].RHS) != 1 || desc.Productions[2].RHS[0] != "<empty>" {
		t.Errorf("unexpected production description: %+v", desc.Productions[2])
	}
}
