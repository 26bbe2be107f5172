package spec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type tokenKind string

const (
	tokenKindID              = tokenKind("id")
	tokenKindTerminal        = tokenKind("terminal")
	tokenKindColon           = tokenKind(":")
	tokenKindOr              = tokenKind("|")
	tokenKindSemicolon       = tokenKind(";")
	tokenKindDirectiveMarker = tokenKind("#")
	tokenKindEOF             = tokenKind("eof")
	tokenKindInvalid         = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	term rune
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newTerminalToken(term rune, pos Position) *token {
	return &token{
		kind: tokenKindTerminal,
		term: term,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

const nullChar = '\u0000'

type lexer struct {
	src        *bufio.Reader
	lastChar   rune
	reachedEOF bool
	peeked     bool
	row        int
	col        int
	lastCol    int
	tokRow     int
	tokCol     int
}

func newLexer(src io.Reader) *lexer {
	return &lexer{
		src: bufio.NewReader(src),
		row: 1,
		col: 0,
	}
}

func (l *lexer) next() (*token, error) {
	c, eof, err := l.read()
	for err == nil && !eof && isWhitespace(c) {
		c, eof, err = l.read()
	}
	if err != nil {
		return nil, err
	}

	l.tokRow = l.row
	l.tokCol = l.col
	pos := newPosition(l.tokRow, l.tokCol)

	if eof {
		return newEOFToken(pos), nil
	}

	switch {
	case c == ':':
		return newSymbolToken(tokenKindColon, pos), nil
	case c == '|':
		return newSymbolToken(tokenKindOr, pos), nil
	case c == ';':
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case c == '#':
		return newSymbolToken(tokenKindDirectiveMarker, pos), nil
	case c == '\'':
		return l.readTerminal(pos)
	case isIDHeadChar(c):
		return l.readID(c, pos)
	}
	return l.readInvalid(c, pos)
}

// readInvalid consumes a whole run of unrecognized characters so that the
// parser reports them as a single invalid token and scanning resumes at
// the next recognizable character.
func (l *lexer) readInvalid(head rune, pos Position) (*token, error) {
	var b strings.Builder
	b.WriteRune(head)
	for {
		c, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof {
			break
		}
		if isWhitespace(c) || isRecognizedHeadChar(c) {
			l.restore()
			break
		}
		b.WriteRune(c)
	}
	return newInvalidToken(b.String(), pos), nil
}

func (l *lexer) readID(head rune, pos Position) (*token, error) {
	var b strings.Builder
	b.WriteRune(head)
	for {
		c, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof {
			break
		}
		if !isIDChar(c) {
			l.restore()
			break
		}
		b.WriteRune(c)
	}
	return newIDToken(b.String(), pos), nil
}

// readTerminal reads a quoted code point. The leading quote has already
// been consumed. Escapes follow the \n \t \r \\ \' \u{hex} forms.
func (l *lexer) readTerminal(pos Position) (*token, error) {
	c, eof, err := l.read()
	if err != nil {
		return nil, err
	}
	if eof {
		return nil, &parseError{cause: synErrUnclosedTerminal, pos: pos}
	}

	var term rune
	switch c {
	case '\'':
		return nil, &parseError{cause: synErrEmptyTerminal, pos: pos}
	case '\n':
		return nil, &parseError{cause: synErrUnclosedTerminal, pos: pos}
	case '\\':
		e, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof {
			return nil, &parseError{cause: synErrIncompletedEscSeq, pos: pos}
		}
		switch e {
		case 'n':
			term = '\n'
		case 't':
			term = '\t'
		case 'r':
			term = '\r'
		case '\\':
			term = '\\'
		case '\'':
			term = '\''
		case 'u':
			term, err = l.readCodePoint(pos)
			if err != nil {
				return nil, err
			}
		default:
			return nil, &parseError{
				cause:  synErrInvalidEscSeq,
				detail: fmt.Sprintf("\\%v is not supported", string(e)),
				pos:    pos,
			}
		}
	default:
		term = c
	}

	c, eof, err = l.read()
	if err != nil {
		return nil, err
	}
	if eof || c != '\'' {
		return nil, &parseError{cause: synErrUnclosedTerminal, pos: pos}
	}
	return newTerminalToken(term, pos), nil
}

func (l *lexer) readCodePoint(pos Position) (rune, error) {
	c, eof, err := l.read()
	if err != nil {
		return nullChar, err
	}
	if eof || c != '{' {
		return nullChar, &parseError{cause: synErrInvalidCodePoint, pos: pos}
	}

	var b strings.Builder
	for {
		c, eof, err := l.read()
		if err != nil {
			return nullChar, err
		}
		if eof {
			return nullChar, &parseError{cause: synErrInvalidCodePoint, pos: pos}
		}
		if c == '}' {
			break
		}
		if !isHexDigit(c) || b.Len() >= 6 {
			return nullChar, &parseError{cause: synErrInvalidCodePoint, pos: pos}
		}
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		return nullChar, &parseError{cause: synErrInvalidCodePoint, pos: pos}
	}

	n, err := strconv.ParseUint(b.String(), 16, 32)
	if err != nil {
		return nullChar, &parseError{cause: synErrInvalidCodePoint, pos: pos}
	}
	return rune(n), nil
}

func (l *lexer) read() (rune, bool, error) {
	if l.peeked {
		l.peeked = false
		l.advancePos(l.lastChar)
		return l.lastChar, l.reachedEOF, nil
	}
	if l.reachedEOF {
		return nullChar, true, nil
	}
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			l.lastChar = nullChar
			l.reachedEOF = true
			return nullChar, true, nil
		}
		return nullChar, false, err
	}
	l.lastChar = c
	l.advancePos(c)
	return c, false, nil
}

// restore pushes the last read character back. Only a single character of
// lookahead is ever needed.
func (l *lexer) restore() {
	l.peeked = true
	l.retreatPos(l.lastChar)
}

func (l *lexer) advancePos(c rune) {
	if c == '\n' {
		l.row++
		l.lastCol = l.col
		l.col = 0
		return
	}
	l.col++
}

func (l *lexer) retreatPos(c rune) {
	if c == '\n' {
		l.row--
		l.col = l.lastCol
		return
	}
	l.col--
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isIDHeadChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c == '_'
}

func isRecognizedHeadChar(c rune) bool {
	switch c {
	case ':', '|', ';', '#', '\'':
		return true
	}
	return isIDHeadChar(c)
}

func isIDChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '\''
}

func isHexDigit(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
}
