package grammar

import (
	"fmt"
	"sort"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

// FirstEntry is the FIRST set of a non-terminal or of a production
// suffix: the terminals that can begin a derivation, plus an empty flag
// standing for the ε marker.
type FirstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *FirstEntry {
	return &FirstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *FirstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *FirstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *FirstEntry) mergeExceptEmpty(target *FirstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

// Empty reports whether the entry contains the ε marker, that is, whether
// the symbol or sequence the entry describes can derive the empty string.
func (e *FirstEntry) Empty() bool {
	return e.empty
}

// Contains reports whether the terminal sym is in the entry.
func (e *FirstEntry) Contains(sym symbol.Symbol) bool {
	_, ok := e.symbols[sym]
	return ok
}

// Terminals returns the terminals of the entry with the ε marker stripped,
// sorted by code point.
func (e *FirstEntry) Terminals() []symbol.Symbol {
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

// FirstSet maps every non-terminal of a grammar to its FIRST entry.
// It is immutable once returned by GenFirstSet.
type FirstSet struct {
	set map[symbol.Symbol]*FirstEntry
}

func newFirstSet(g *Grammar) *FirstSet {
	fst := &FirstSet{
		set: map[symbol.Symbol]*FirstEntry{},
	}
	for _, sym := range g.NonTerminals() {
		fst.set[sym] = newFirstEntry()
	}
	return fst
}

// Find computes the FIRST entry of the RHS suffix of prod starting at
// head. The entry accumulates FIRST of each suffix symbol for as long as
// the accumulated set keeps the ε marker; when every suffix symbol is
// nullable, the marker survives in the result.
func (fst *FirstSet) Find(prod *Production, head int) (*FirstEntry, error) {
	entry := newFirstEntry()
	if prod.IsEmpty() || len(prod.rhs) <= head {
		entry.addEmpty()
		return entry, nil
	}
	for _, sym := range prod.rhs[head:] {
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.FindBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
		}
		for s := range e.symbols {
			entry.add(s)
		}
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

// FindBySymbol returns the FIRST entry of the non-terminal sym, or nil
// when the grammar does not declare sym.
func (fst *FirstSet) FindBySymbol(sym symbol.Symbol) *FirstEntry {
	return fst.set[sym]
}

// GenFirstSet computes the FIRST sets of the grammar. Entries are seeded
// from ε-productions and terminal-headed productions, then full passes
// over the productions merge FIRST of each RHS into FIRST of its LHS
// until a pass changes nothing.
func GenFirstSet(g *Grammar) (*FirstSet, error) {
	fst := newFirstSet(g)
	for {
		more := false
		for _, prod := range g.productionSet.getAllProductions() {
			e := fst.FindBySymbol(prod.lhs)
			if e == nil {
				return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", prod.lhs)
			}
			changed, err := genProdFirstEntry(fst, e, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return fst, nil
}

func genProdFirstEntry(fst *FirstSet, acc *FirstEntry, prod *Production) (bool, error) {
	if prod.IsEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed, nil
		}

		e := fst.FindBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed, nil
}
