package symbol

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
)

type symbolKind uint8

const (
	symbolKindNil symbolKind = iota
	symbolKindNonTerminal
	symbolKindTerminal
	symbolKindEpsilon
	symbolKindEOF
)

func (k symbolKind) String() string {
	switch k {
	case symbolKindNonTerminal:
		return "non-terminal"
	case symbolKindTerminal:
		return "terminal"
	case symbolKindEpsilon:
		return "epsilon"
	case symbolKindEOF:
		return "eof"
	}
	return "nil"
}

// The symbol names contain `<` and `>` to avoid conflicting with user-defined symbols.
const (
	symbolNameEOF     = "<eof>"
	symbolNameEpsilon = "<empty>"
)

// Symbol is a closed variant over the symbol kinds a grammar can mention:
// a terminal carrying a code point, a non-terminal carrying an identifier,
// the empty-production marker ε, and the end-of-input marker. The zero
// value is the nil symbol, which belongs to no grammar.
//
// Symbol is comparable and can be used as a map key.
type Symbol struct {
	kind symbolKind
	term rune
	name string
}

var (
	SymbolNil     = Symbol{}
	SymbolEpsilon = Symbol{kind: symbolKindEpsilon}
	SymbolEOF     = Symbol{kind: symbolKindEOF}
)

// NewTerminal returns a terminal symbol for the code point term.
// Validity of the code point is the grammar's concern, not the symbol's.
func NewTerminal(term rune) Symbol {
	return Symbol{
		kind: symbolKindTerminal,
		term: term,
	}
}

// NewNonTerminal returns a non-terminal symbol named name.
func NewNonTerminal(name string) Symbol {
	return Symbol{
		kind: symbolKindNonTerminal,
		name: name,
	}
}

func (s Symbol) IsNil() bool {
	return s.kind == symbolKindNil
}

func (s Symbol) IsTerminal() bool {
	return s.kind == symbolKindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind == symbolKindNonTerminal
}

func (s Symbol) IsEpsilon() bool {
	return s.kind == symbolKindEpsilon
}

func (s Symbol) IsEOF() bool {
	return s.kind == symbolKindEOF
}

// Terminal returns the code point of a terminal symbol. It returns false
// for any other kind of symbol.
func (s Symbol) Terminal() (rune, bool) {
	if s.kind != symbolKindTerminal {
		return 0, false
	}
	return s.term, true
}

// Name returns the identifier of a non-terminal symbol. It returns false
// for any other kind of symbol.
func (s Symbol) Name() (string, bool) {
	if s.kind != symbolKindNonTerminal {
		return "", false
	}
	return s.name, true
}

func (s Symbol) String() string {
	switch s.kind {
	case symbolKindNonTerminal:
		return s.name
	case symbolKindTerminal:
		return strconv.QuoteRune(s.term)
	case symbolKindEpsilon:
		return symbolNameEpsilon
	case symbolKindEOF:
		return symbolNameEOF
	}
	return "<nil>"
}

// Byte returns a self-delimiting byte representation of the symbol.
// Concatenating the representations of a symbol sequence is unambiguous,
// so the result is suitable as input to a hash identifying the sequence.
func (s Symbol) Byte() []byte {
	b := []byte{byte(s.kind)}
	switch s.kind {
	case symbolKindTerminal:
		b = binary.BigEndian.AppendUint32(b, uint32(s.term))
	case symbolKindNonTerminal:
		b = binary.BigEndian.AppendUint32(b, uint32(len(s.name)))
		b = append(b, s.name...)
	}
	return b
}

// SymbolTable keeps the symbols a grammar declares. Registration happens
// while a grammar is being built; afterwards the table is only read, to
// resolve identifiers and code points mentioned by productions.
type SymbolTable struct {
	nonTerminals map[string]Symbol
	terminals    map[rune]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		nonTerminals: map[string]Symbol{},
		terminals:    map[rune]Symbol{},
	}
}

func (t *SymbolTable) RegisterNonTerminal(name string) (Symbol, error) {
	if name == "" {
		return SymbolNil, fmt.Errorf("a non-terminal must have a non-empty name")
	}
	if sym, ok := t.nonTerminals[name]; ok {
		return sym, nil
	}
	sym := NewNonTerminal(name)
	t.nonTerminals[name] = sym
	return sym, nil
}

func (t *SymbolTable) RegisterTerminal(term rune) (Symbol, error) {
	if sym, ok := t.terminals[term]; ok {
		return sym, nil
	}
	sym := NewTerminal(term)
	t.terminals[term] = sym
	return sym, nil
}

func (t *SymbolTable) ToNonTerminal(name string) (Symbol, bool) {
	sym, ok := t.nonTerminals[name]
	return sym, ok
}

func (t *SymbolTable) ToTerminal(term rune) (Symbol, bool) {
	sym, ok := t.terminals[term]
	return sym, ok
}

// NonTerminalSymbols returns the registered non-terminal symbols, sorted by name.
func (t *SymbolTable) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, len(t.nonTerminals))
	for _, sym := range t.nonTerminals {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].name < syms[j].name
	})
	return syms
}

// TerminalSymbols returns the registered terminal symbols, sorted by code point.
func (t *SymbolTable) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, len(t.terminals))
	for _, sym := range t.terminals {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].term < syms[j].term
	})
	return syms
}
