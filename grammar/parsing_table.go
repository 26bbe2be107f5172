package grammar

import (
	"sort"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

// TableConflict records two productions of the same non-terminal claiming
// the same table cell. The builder resolves the conflict by letting the
// production declared later win; the record only reports what happened.
type TableConflict struct {
	NonTerminal symbol.Symbol
	LookAhead   symbol.Symbol
	Adopted     *Production
	Discarded   *Production
}

// ParsingTable maps a (non-terminal, lookahead) pair to the production a
// predictive parser must apply. Lookaheads are terminal symbols or the
// end marker. It is immutable once returned by GenParsingTable.
type ParsingTable struct {
	cells     map[symbol.Symbol]map[symbol.Symbol]*Production
	conflicts []*TableConflict
}

func newParsingTable(g *Grammar) *ParsingTable {
	cells := map[symbol.Symbol]map[symbol.Symbol]*Production{}
	for _, sym := range g.NonTerminals() {
		cells[sym] = map[symbol.Symbol]*Production{}
	}
	return &ParsingTable{
		cells: cells,
	}
}

func (t *ParsingTable) assign(nonTerm, lookAhead symbol.Symbol, prod *Production) {
	row := t.cells[nonTerm]
	if prev, ok := row[lookAhead]; ok && !prev.equals(prod) {
		t.conflicts = append(t.conflicts, &TableConflict{
			NonTerminal: nonTerm,
			LookAhead:   lookAhead,
			Adopted:     prod,
			Discarded:   prev,
		})
	}
	row[lookAhead] = prod
}

// Find returns the production registered for the (non-terminal, lookahead)
// pair, if any.
func (t *ParsingTable) Find(nonTerm, lookAhead symbol.Symbol) (*Production, bool) {
	row, ok := t.cells[nonTerm]
	if !ok {
		return nil, false
	}
	prod, ok := row[lookAhead]
	return prod, ok
}

// ExpectedLookAheads returns the lookahead symbols the table accepts for
// the non-terminal, terminals sorted by code point and the end marker
// last.
func (t *ParsingTable) ExpectedLookAheads(nonTerm symbol.Symbol) []symbol.Symbol {
	row, ok := t.cells[nonTerm]
	if !ok {
		return nil
	}
	syms := make([]symbol.Symbol, 0, len(row))
	eof := false
	for sym := range row {
		if sym.IsEOF() {
			eof = true
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		ti, _ := syms[i].Terminal()
		tj, _ := syms[j].Terminal()
		return ti < tj
	})
	if eof {
		syms = append(syms, symbol.SymbolEOF)
	}
	return syms
}

// Conflicts returns the conflicts the builder resolved by declaration
// order. A non-empty result means the grammar is not LL(1).
func (t *ParsingTable) Conflicts() []*TableConflict {
	return t.conflicts
}

// GenParsingTable builds the LL(1) table. For every production A → α and
// every terminal in FIRST(α), the production claims the cell (A, t); when
// α is nullable, it also claims (A, f) for every f in FOLLOW(A), the end
// marker included. Productions are processed in declaration order and a
// later claim silently overwrites an earlier one; callers that need the
// table to be unambiguous must check IsLL1 first.
func GenParsingTable(g *Grammar, first *FirstSet, follow *FollowSet) (*ParsingTable, error) {
	table := newParsingTable(g)
	for _, prod := range g.productionSet.getAllProductions() {
		fst, err := first.Find(prod, 0)
		if err != nil {
			return nil, err
		}
		for _, term := range fst.Terminals() {
			table.assign(prod.lhs, term, prod)
		}
		if fst.Empty() {
			flw, err := follow.Find(prod.lhs)
			if err != nil {
				return nil, err
			}
			for _, term := range flw.Terminals() {
				table.assign(prod.lhs, term, prod)
			}
			if flw.EOF() {
				table.assign(prod.lhs, symbol.SymbolEOF, prod)
			}
		}
	}
	return table, nil
}

// directingSet is the set of lookahead symbols that select one production
// of a non-terminal: FIRST of its RHS, extended with FOLLOW of its LHS
// when the RHS is nullable.
type directingSet struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func genDirectingSet(prod *Production, first *FirstSet, follow *FollowSet) (*directingSet, error) {
	ds := &directingSet{
		symbols: map[symbol.Symbol]struct{}{},
	}
	fst, err := first.Find(prod, 0)
	if err != nil {
		return nil, err
	}
	for sym := range fst.symbols {
		ds.symbols[sym] = struct{}{}
	}
	if fst.Empty() {
		flw, err := follow.Find(prod.lhs)
		if err != nil {
			return nil, err
		}
		for sym := range flw.symbols {
			ds.symbols[sym] = struct{}{}
		}
		if flw.EOF() {
			ds.eof = true
		}
	}
	return ds, nil
}

func (ds *directingSet) disjoint(other *directingSet) bool {
	if ds.eof && other.eof {
		return false
	}
	for sym := range ds.symbols {
		if _, ok := other.symbols[sym]; ok {
			return false
		}
	}
	return true
}

// IsLL1 reports whether the grammar satisfies the LL(1) condition: for
// every non-terminal with more than one production, the directing sets of
// its productions are pairwise disjoint. A production's directing set is
// the union FIRST(RHS) ∪ FOLLOW(LHS), the FOLLOW part contributing only
// when the RHS is nullable; the union covers every cell claim
// GenParsingTable makes, so a true result guarantees the table was built
// without conflicts. GenParsingTable does not run this check; a caller
// that needs table-driven parses to follow the grammar as written must
// run it before trusting the table.
func IsLL1(g *Grammar, first *FirstSet, follow *FollowSet) (bool, error) {
	for _, nonTerm := range g.NonTerminals() {
		prods, ok := g.productionSet.findByLHS(nonTerm)
		if !ok || len(prods) < 2 {
			continue
		}
		sets := make([]*directingSet, len(prods))
		for i, prod := range prods {
			ds, err := genDirectingSet(prod, first, follow)
			if err != nil {
				return false, err
			}
			sets[i] = ds
		}
		for i := 0; i < len(sets); i++ {
			for j := i + 1; j < len(sets); j++ {
				if !sets[i].disjoint(sets[j]) {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
