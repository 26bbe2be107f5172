package grammar

import (
	"github.com/Dalgona/cs-compiler/spec"
)

// DescribeGrammar summarizes a grammar and its analyses into a
// spec.Description. All slices follow the deterministic orders the
// accessors guarantee, so repeated calls yield identical descriptions.
func DescribeGrammar(g *Grammar, nullable *NullableSet, first *FirstSet, follow *FollowSet, table *ParsingTable, ll1 bool) (*spec.Description, error) {
	desc := &spec.Description{
		Start: g.startSymbol.String(),
		LL1:   ll1,
	}

	for _, term := range g.Terminals() {
		desc.Terminals = append(desc.Terminals, term.String())
	}

	for _, nonTerm := range g.NonTerminals() {
		fst := first.FindBySymbol(nonTerm)
		flw, err := follow.Find(nonTerm)
		if err != nil {
			return nil, err
		}
		nt := spec.NonTerminal{
			Name:       nonTerm.String(),
			Nullable:   nullable.Contains(nonTerm),
			FirstEmpty: fst.Empty(),
			FollowEOF:  flw.EOF(),
		}
		for _, term := range fst.Terminals() {
			nt.First = append(nt.First, term.String())
		}
		for _, term := range flw.Terminals() {
			nt.Follow = append(nt.Follow, term.String())
		}
		desc.NonTerminals = append(desc.NonTerminals, nt)
	}

	for _, prod := range g.Productions() {
		p := spec.Production{
			Number: prod.Num(),
			LHS:    prod.lhs.String(),
		}
		for _, sym := range prod.rhs {
			p.RHS = append(p.RHS, sym.String())
		}
		desc.Productions = append(desc.Productions, p)
	}

	for _, nonTerm := range g.NonTerminals() {
		for _, lookAhead := range table.ExpectedLookAheads(nonTerm) {
			prod, ok := table.Find(nonTerm, lookAhead)
			if !ok {
				continue
			}
			desc.Table = append(desc.Table, spec.TableEntry{
				NonTerminal: nonTerm.String(),
				LookAhead:   lookAhead.String(),
				Production:  prod.Num(),
			})
		}
	}

	for _, c := range table.Conflicts() {
		desc.Conflicts = append(desc.Conflicts, spec.Conflict{
			NonTerminal: c.NonTerminal.String(),
			LookAhead:   c.LookAhead.String(),
			Adopted:     c.Adopted.Num(),
			Discarded:   c.Discarded.Num(),
		})
	}

	return desc, nil
}
