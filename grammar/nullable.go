package grammar

import (
	"sort"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

// NullableSet is the set of non-terminals that can derive the empty
// string. It is immutable once returned by GenNullableSet.
type NullableSet struct {
	set map[symbol.Symbol]struct{}
}

func newNullableSet() *NullableSet {
	return &NullableSet{
		set: map[symbol.Symbol]struct{}{},
	}
}

func (s *NullableSet) add(sym symbol.Symbol) bool {
	if _, ok := s.set[sym]; ok {
		return false
	}
	s.set[sym] = struct{}{}
	return true
}

// Contains reports whether sym can derive the empty string.
func (s *NullableSet) Contains(sym symbol.Symbol) bool {
	_, ok := s.set[sym]
	return ok
}

// Symbols returns the members of the set, sorted by name.
func (s *NullableSet) Symbols() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(s.set))
	for sym := range s.set {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		ni, _ := syms[i].Name()
		nj, _ := syms[j].Name()
		return ni < nj
	})
	return syms
}

// GenNullableSet computes the nullable non-terminals of the grammar.
// The set is seeded with the LHS of every ε-production, then grown until
// a full pass over the productions adds nothing: a production whose whole
// RHS is already nullable makes its LHS nullable. Termination follows
// from the set growing monotonically within the finite non-terminal set.
func GenNullableSet(g *Grammar) *NullableSet {
	nul := newNullableSet()
	for _, prod := range g.productionSet.getAllProductions() {
		if prod.IsEmpty() {
			nul.add(prod.lhs)
		}
	}
	for {
		more := false
		for _, prod := range g.productionSet.getAllProductions() {
			if prod.IsEmpty() || !nul.nullableSequence(prod.rhs) {
				continue
			}
			if nul.add(prod.lhs) {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return nul
}

// nullableSequence reports whether every symbol of the sequence is a
// non-terminal already known to be nullable.
func (s *NullableSet) nullableSequence(seq []symbol.Symbol) bool {
	for _, sym := range seq {
		if !sym.IsNonTerminal() {
			return false
		}
		if !s.Contains(sym) {
			return false
		}
	}
	return true
}
