package driver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dalgona/cs-compiler/grammar"
	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

// SyntaxError is the result of a rejected parse: the unconsumed remainder
// of the input, starting at the mismatching token, and the lookaheads the
// parser would have accepted instead. A rejection is an expected outcome,
// not an exceptional one; the parser stops at the first mismatch and
// performs no recovery.
type SyntaxError struct {
	Remaining []Token
	Expected  []string
}

func (e *SyntaxError) Error() string {
	var found string
	if len(e.Remaining) == 0 {
		found = "<eof>"
	} else {
		found = strconv.Quote(e.Remaining[0].Text())
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error: unexpected %v", found)
	}
	return fmt.Sprintf("syntax error: unexpected %v; expected: %v", found, strings.Join(e.Expected, ", "))
}

type ParserOption func(p *Parser) error

// Match injects the matcher the parser uses to map input tokens to
// grammar terminals.
func Match(fn MatchFunc) ParserOption {
	return func(p *Parser) error {
		if fn == nil {
			return fmt.Errorf("a matcher must not be nil")
		}
		p.match = fn
		return nil
	}
}

// Parser is a table-driven predictive parser. It holds a grammar and an
// LL(1) table, both immutable, and no other state; a single Parser can
// serve concurrent Parse calls.
type Parser struct {
	gram  *grammar.Grammar
	table *grammar.ParsingTable
	match MatchFunc
}

func NewParser(gram *grammar.Grammar, table *grammar.ParsingTable, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:  gram,
		table: table,
		match: func(tok Token) rune {
			return tok.Terminal()
		},
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse consumes the input against the grammar. On acceptance it returns
// the parse tree rooted at the start symbol; on rejection it returns a
// *SyntaxError carrying the unconsumed input. The symbol stack starts as
// [start, end]; a terminal on top must match the next token, and a
// non-terminal on top is expanded by the production the table selects
// for the current lookahead.
func (p *Parser) Parse(input []Token) (*Node, error) {
	root := &Node{
		Sym: p.gram.StartSymbol(),
	}
	symStack := []symbol.Symbol{symbol.SymbolEOF, p.gram.StartSymbol()}
	nodeStack := []*Node{root}
	pos := 0

	for {
		top := symStack[len(symStack)-1]
		lookAhead, tok := p.lookAhead(input, pos)

		switch {
		case top.IsEOF():
			if lookAhead.IsEOF() {
				return root, nil
			}
			return nil, &SyntaxError{
				Remaining: input[pos:],
				Expected:  []string{symbol.SymbolEOF.String()},
			}
		case top.IsTerminal():
			if lookAhead != top {
				return nil, &SyntaxError{
					Remaining: input[pos:],
					Expected:  []string{top.String()},
				}
			}
			node := nodeStack[len(nodeStack)-1]
			node.Text = tok.Text()
			symStack = symStack[:len(symStack)-1]
			nodeStack = nodeStack[:len(nodeStack)-1]
			pos++
		default:
			prod, ok := p.table.Find(top, lookAhead)
			if !ok {
				return nil, &SyntaxError{
					Remaining: input[pos:],
					Expected:  p.expectedTerminals(top),
				}
			}

			node := nodeStack[len(nodeStack)-1]
			symStack = symStack[:len(symStack)-1]
			nodeStack = nodeStack[:len(nodeStack)-1]

			if prod.IsEmpty() {
				continue
			}

			rhs := prod.RHS()
			children := make([]*Node, len(rhs))
			for i, sym := range rhs {
				children[i] = &Node{
					Sym: sym,
				}
			}
			node.Children = children
			for i := len(rhs) - 1; i >= 0; i-- {
				symStack = append(symStack, rhs[i])
				nodeStack = append(nodeStack, children[i])
			}
		}
	}
}

// lookAhead maps the token at pos to the symbol the table is keyed by.
// Exhausted input reads as the end marker; no marker is ever appended to
// the caller's slice.
func (p *Parser) lookAhead(input []Token, pos int) (symbol.Symbol, Token) {
	if pos >= len(input) {
		return symbol.SymbolEOF, nil
	}
	tok := input[pos]
	return symbol.NewTerminal(p.match(tok)), tok
}

func (p *Parser) expectedTerminals(nonTerm symbol.Symbol) []string {
	var names []string
	for _, sym := range p.table.ExpectedLookAheads(nonTerm) {
		names = append(names, sym.String())
	}
	return names
}
