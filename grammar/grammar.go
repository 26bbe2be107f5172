package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	verr "github.com/Dalgona/cs-compiler/error"
	"github.com/Dalgona/cs-compiler/grammar/symbol"
	"github.com/Dalgona/cs-compiler/spec"
)

// Grammar is an immutable context-free grammar: declared non-terminal and
// terminal sets, productions in declaration order, and a start symbol.
// All invariants are checked once, at construction; a Grammar value that
// exists is valid. A Grammar is safe to share between any number of
// goroutines without locking.
type Grammar struct {
	symbolTable   *symbol.SymbolTable
	productionSet *productionSet
	startSymbol   symbol.Symbol
}

// NewGrammar constructs a grammar from declared symbol sets, productions,
// and a start symbol name. It fails without returning a partial grammar
// when a non-terminal name is malformed, a terminal is not a valid Unicode
// scalar value, a production mentions an undeclared symbol, or the start
// symbol is not a declared non-terminal.
func NewGrammar(nonTerminals []string, terminals []rune, prods []*Production, start string) (*Grammar, error) {
	var errs verr.SpecErrors

	symTab := symbol.NewSymbolTable()
	for _, name := range nonTerminals {
		if !isWellFormedName(name) {
			errs = append(errs, &verr.SpecError{
				Cause:  semErrMalformedName,
				Detail: name,
			})
			continue
		}
		if _, err := symTab.RegisterNonTerminal(name); err != nil {
			return nil, err
		}
	}
	for _, term := range terminals {
		if !utf8.ValidRune(term) {
			errs = append(errs, &verr.SpecError{
				Cause:  semErrInvalidTerminal,
				Detail: fmt.Sprintf("%U", term),
			})
			continue
		}
		if _, err := symTab.RegisterTerminal(term); err != nil {
			return nil, err
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if len(prods) == 0 {
		return nil, verr.SpecErrors{
			{Cause: semErrNoProduction},
		}
	}

	prodSet := newProductionSet()
	for _, prod := range prods {
		if _, ok := symTab.ToNonTerminal(mustNonTerminalName(prod.lhs)); !ok {
			errs = append(errs, &verr.SpecError{
				Cause:  semErrUndefinedSym,
				Detail: prod.lhs.String(),
			})
			continue
		}
		undefined := false
		for _, sym := range prod.rhs {
			switch {
			case sym.IsEpsilon():
				// ok
			case sym.IsNonTerminal():
				if _, ok := symTab.ToNonTerminal(mustNonTerminalName(sym)); !ok {
					errs = append(errs, &verr.SpecError{
						Cause:  semErrUndefinedSym,
						Detail: sym.String(),
					})
					undefined = true
				}
			case sym.IsTerminal():
				term, _ := sym.Terminal()
				if _, ok := symTab.ToTerminal(term); !ok {
					errs = append(errs, &verr.SpecError{
						Cause:  semErrUndefinedSym,
						Detail: sym.String(),
					})
					undefined = true
				}
			}
		}
		if undefined {
			continue
		}
		if !prodSet.append(prod) {
			errs = append(errs, &verr.SpecError{
				Cause:  semErrDuplicateProduction,
				Detail: prod.String(),
			})
		}
	}

	startSym, ok := symTab.ToNonTerminal(start)
	if !ok {
		errs = append(errs, &verr.SpecError{
			Cause:  semErrUndefinedStart,
			Detail: start,
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Grammar{
		symbolTable:   symTab,
		productionSet: prodSet,
		startSymbol:   startSym,
	}, nil
}

// StartSymbol returns the start symbol of the grammar.
func (g *Grammar) StartSymbol() symbol.Symbol {
	return g.startSymbol
}

// NonTerminals returns the declared non-terminal symbols, sorted by name.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return g.symbolTable.NonTerminalSymbols()
}

// Terminals returns the declared terminal symbols, sorted by code point.
func (g *Grammar) Terminals() []symbol.Symbol {
	return g.symbolTable.TerminalSymbols()
}

// Productions returns the productions in declaration order. The caller
// must not modify the returned slice.
func (g *Grammar) Productions() []*Production {
	return g.productionSet.getAllProductions()
}

// ProductionsByLHS returns the productions expanding the given
// non-terminal, in declaration order.
func (g *Grammar) ProductionsByLHS(lhs symbol.Symbol) []*Production {
	prods, _ := g.productionSet.findByLHS(lhs)
	return prods
}

func mustNonTerminalName(sym symbol.Symbol) string {
	name, _ := sym.Name()
	return name
}

func isWellFormedName(name string) bool {
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '\''):
		default:
			return false
		}
	}
	return name != ""
}

// GrammarBuilder builds a grammar from the AST of a grammar description.
// The declared symbol sets are inferred from the description: every
// production LHS declares a non-terminal, and every quoted code point
// declares a terminal.
type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.AST.Productions) == 0 {
		return nil, verr.SpecErrors{
			{Cause: semErrNoProduction},
		}
	}

	lhsNames := map[string]struct{}{}
	var nonTerminals []string
	for _, prod := range b.AST.Productions {
		if _, ok := lhsNames[prod.LHS]; ok {
			continue
		}
		lhsNames[prod.LHS] = struct{}{}
		nonTerminals = append(nonTerminals, prod.LHS)
	}

	termRunes := map[rune]struct{}{}
	var terminals []rune
	for _, prod := range b.AST.Productions {
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				if elem.ID != "" {
					continue
				}
				if _, ok := termRunes[elem.Literal]; ok {
					continue
				}
				termRunes[elem.Literal] = struct{}{}
				terminals = append(terminals, elem.Literal)
			}
		}
	}

	start := b.AST.Productions[0].LHS
	for _, dir := range b.AST.Directives {
		if dir.Name != "start" {
			continue
		}
		if len(dir.Parameters) != 1 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  spec.SynErrDirInvalidParam,
				Detail: "'start' takes just one ID parameter",
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		start = dir.Parameters[0]
		if _, ok := lhsNames[start]; !ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUndefinedStart,
				Detail: start,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
		}
	}

	var prods []*Production
	for _, prodNode := range b.AST.Productions {
		lhs := symbol.NewNonTerminal(prodNode.LHS)
		for _, alt := range prodNode.RHS {
			var rhs []symbol.Symbol
			if len(alt.Elements) == 0 {
				rhs = []symbol.Symbol{symbol.SymbolEpsilon}
			} else {
				undefined := false
				for _, elem := range alt.Elements {
					if elem.ID != "" {
						if _, ok := lhsNames[elem.ID]; !ok {
							b.errs = append(b.errs, &verr.SpecError{
								Cause:  semErrUndefinedSym,
								Detail: elem.ID,
								Row:    elem.Pos.Row,
								Col:    elem.Pos.Col,
							})
							undefined = true
							continue
						}
						rhs = append(rhs, symbol.NewNonTerminal(elem.ID))
					} else {
						rhs = append(rhs, symbol.NewTerminal(elem.Literal))
					}
				}
				if undefined {
					continue
				}
			}
			prod, err := NewProduction(lhs, rhs)
			if err != nil {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  err,
					Row:    alt.Pos.Row,
					Col:    alt.Pos.Col,
				})
				continue
			}
			prods = append(prods, prod)
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	g, err := NewGrammar(nonTerminals, terminals, prods, start)
	if err != nil {
		if specErrs, ok := err.(verr.SpecErrors); ok {
			return nil, specErrs
		}
		return nil, err
	}
	return g, nil
}
