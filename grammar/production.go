package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs symbol.Symbol, rhs []symbol.Symbol) productionID {
	seq := lhs.Byte()
	for _, sym := range rhs {
		seq = append(seq, sym.Byte()...)
	}
	return productionID(sha256.Sum256(seq))
}

// Production is a rewrite rule from a non-terminal to a symbol sequence.
// The RHS is either exactly [ε] or a non-empty sequence that contains
// neither ε nor the end marker.
type Production struct {
	id  productionID
	num int
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

// NewProduction returns a production lhs → rhs. It checks only the shape
// of the production; whether the mentioned symbols are declared is checked
// when the production joins a grammar.
func NewProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must not be empty; an empty production is written as [ε]; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		switch {
		case sym.IsEpsilon():
			if len(rhs) != 1 {
				return nil, fmt.Errorf("ε must be the only symbol of an RHS; LHS: %v, RHS: %v", lhs, rhs)
			}
		case sym.IsTerminal() || sym.IsNonTerminal():
			// ok
		default:
			return nil, fmt.Errorf("a symbol of RHS must be a terminal or a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &Production{
		id:  genProductionID(lhs, rhs),
		lhs: lhs,
		rhs: rhs,
	}, nil
}

// LHS returns the non-terminal the production expands.
func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

// RHS returns the symbol sequence the production expands to. The caller
// must not modify the returned slice.
func (p *Production) RHS() []symbol.Symbol {
	return p.rhs
}

// Num returns the declaration position of the production in its grammar,
// counting from 1.
func (p *Production) Num() int {
	return p.num
}

func (p *Production) equals(q *Production) bool {
	return q.id == p.id
}

// IsEmpty reports whether the production derives the empty string directly,
// that is, whether its RHS is exactly [ε].
func (p *Production) IsEmpty() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEpsilon()
}

func (p *Production) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", p.lhs)
	if p.IsEmpty() {
		fmt.Fprintf(&b, " ε")
	} else {
		for _, sym := range p.rhs {
			fmt.Fprintf(&b, " %v", sym)
		}
	}
	return b.String()
}

type productionSet struct {
	all       []*Production
	lhs2Prods map[symbol.Symbol][]*Production
	id2Prod   map[productionID]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*Production{},
		id2Prod:   map[productionID]*Production{},
	}
}

func (ps *productionSet) append(prod *Production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}

	prod.num = len(ps.all) + 1
	ps.all = append(ps.all, prod)
	if prods, ok := ps.lhs2Prods[prod.lhs]; ok {
		ps.lhs2Prods[prod.lhs] = append(prods, prod)
	} else {
		ps.lhs2Prods[prod.lhs] = []*Production{prod}
	}
	ps.id2Prod[prod.id] = prod

	return true
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*Production, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

// getAllProductions returns the productions in declaration order.
func (ps *productionSet) getAllProductions() []*Production {
	return ps.all
}
