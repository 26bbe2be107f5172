package spec

import (
	"fmt"
	"io"

	verr "github.com/Dalgona/cs-compiler/error"
)

type RootNode struct {
	Directives  []*DirectiveNode
	Productions []*ProductionNode
}

type DirectiveNode struct {
	Name       string
	Parameters []string
	Pos        Position
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

// ElementNode is one RHS element: a non-terminal reference when ID is
// non-empty, otherwise a terminal code point.
type ElementNode struct {
	ID      string
	Literal rune
	Pos     Position
}

type parseError struct {
	cause  error
	detail string
	pos    Position
}

func (e *parseError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("%v: %v", e.cause, e.detail)
	}
	return e.cause.Error()
}

func raiseSyntaxError(synErr *SyntaxError, pos Position) {
	panic(&parseError{
		cause: synErr,
		pos:   pos,
	})
}

// Parse reads a grammar description and returns its AST. An error is a
// *verr.SpecError carrying the position of the offending token.
func Parse(src io.Reader) (*RootNode, error) {
	p := newParser(src)
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) *parser {
	return &parser{
		lex: newLexer(src),
	}
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		if pErr, ok := err.(*parseError); ok {
			retErr = &verr.SpecError{
				Cause:  pErr.cause,
				Detail: pErr.detail,
				Row:    pErr.pos.Row,
				Col:    pErr.pos.Col,
			}
			return
		}
		retErr = err
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	for {
		if p.consume(tokenKindEOF) {
			break
		}
		if p.consume(tokenKindDirectiveMarker) {
			root.Directives = append(root.Directives, p.parseDirective())
			continue
		}
		root.Productions = append(root.Productions, p.parseProduction())
	}
	return root
}

func (p *parser) parseDirective() *DirectiveNode {
	pos := p.lastTok.pos
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoDirectiveName, pos)
	}
	dir := &DirectiveNode{
		Name: p.lastTok.text,
		Pos:  pos,
	}
	for p.consume(tokenKindID) {
		dir.Parameters = append(dir.Parameters, p.lastTok.text)
	}
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrNoSemicolon, p.peekPos())
	}
	return dir
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoProductionName, p.peekPos())
	}
	lhs := p.lastTok.text
	pos := p.lastTok.pos
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peekPos())
	}
	altPos := p.lastTok.pos
	alt := p.parseAlternative(altPos)
	rhs := []*AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		altPos := p.lastTok.pos
		alt := p.parseAlternative(altPos)
		rhs = append(rhs, alt)
	}
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrNoSemicolon, p.peekPos())
	}
	return &ProductionNode{
		LHS: lhs,
		RHS: rhs,
		Pos: pos,
	}
}

func (p *parser) parseAlternative(pos Position) *AlternativeNode {
	elems := []*ElementNode{}
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	if len(elems) > 0 {
		pos = elems[0].Pos
	}
	return &AlternativeNode{
		Elements: elems,
		Pos:      pos,
	}
}

func (p *parser) parseElement() *ElementNode {
	switch {
	case p.consume(tokenKindID):
		return &ElementNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		}
	case p.consume(tokenKindTerminal):
		return &ElementNode{
			Literal: p.lastTok.term,
			Pos:     p.lastTok.pos,
		}
	}
	return nil
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(synErrInvalidToken, tok.pos)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

func (p *parser) peekPos() Position {
	if p.peekedTok != nil {
		return p.peekedTok.pos
	}
	if p.lastTok != nil {
		return p.lastTok.pos
	}
	return Position{}
}
