package grammar

import (
	"fmt"
	"sort"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

// FollowEntry is the FOLLOW set of a non-terminal: the terminals that can
// appear immediately after it in some derivation, plus an eof flag
// standing for the end-of-input marker.
type FollowEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *FollowEntry {
	return &FollowEntry{
		symbols: map[symbol.Symbol]struct{}{},
		eof:     false,
	}
}

func (e *FollowEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *FollowEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

// merge unions the terminals of fst (ε marker stripped) and the whole of
// flw into the entry. Either argument may be nil.
func (e *FollowEntry) merge(fst *FirstEntry, flw *FollowEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

// EOF reports whether the entry contains the end-of-input marker.
func (e *FollowEntry) EOF() bool {
	return e.eof
}

// Contains reports whether the terminal sym is in the entry.
func (e *FollowEntry) Contains(sym symbol.Symbol) bool {
	_, ok := e.symbols[sym]
	return ok
}

// Terminals returns the terminals of the entry with the end marker
// stripped, sorted by code point.
func (e *FollowEntry) Terminals() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		ti, _ := syms[i].Terminal()
		tj, _ := syms[j].Terminal()
		return ti < tj
	})
	return syms
}

// FollowSet maps every non-terminal of a grammar to its FOLLOW entry.
// It is immutable once returned by GenFollowSet.
type FollowSet struct {
	set map[symbol.Symbol]*FollowEntry
}

func newFollowSet(g *Grammar) *FollowSet {
	flw := &FollowSet{
		set: map[symbol.Symbol]*FollowEntry{},
	}
	for _, sym := range g.NonTerminals() {
		flw.set[sym] = newFollowEntry()
	}
	return flw
}

// Find returns the FOLLOW entry of the non-terminal sym.
func (flw *FollowSet) Find(sym symbol.Symbol) (*FollowEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", sym)
	}
	return e, nil
}

// GenFollowSet computes the FOLLOW sets of the grammar. FOLLOW of the
// start symbol is seeded with the end marker. For every occurrence of a
// non-terminal X in a production A → α: FIRST of the remainder after X,
// ε marker stripped, joins FOLLOW(X); and when the remainder is empty or
// wholly nullable, FOLLOW(A) joins FOLLOW(X). Full passes repeat until
// no entry changes.
func GenFollowSet(g *Grammar, first *FirstSet, nullable *NullableSet) (*FollowSet, error) {
	flw := newFollowSet(g)

	startEntry, err := flw.Find(g.startSymbol)
	if err != nil {
		return nil, err
	}
	startEntry.addEOF()

	for {
		more := false
		for _, prod := range g.productionSet.getAllProductions() {
			if prod.IsEmpty() {
				continue
			}
			for i, sym := range prod.rhs {
				if !sym.IsNonTerminal() {
					continue
				}
				e, err := flw.Find(sym)
				if err != nil {
					return nil, err
				}
				fst, err := first.Find(prod, i+1)
				if err != nil {
					return nil, err
				}
				if e.merge(fst, nil) {
					more = true
				}
				if nullable.nullableSequence(prod.rhs[i+1:]) {
					lhsEntry, err := flw.Find(prod.lhs)
					if err != nil {
						return nil, err
					}
					if e.merge(nil, lhsEntry) {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}

	return flw, nil
}
