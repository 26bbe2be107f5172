package driver

// Token is one element of the input sequence a parser consumes. A lexer
// in front of the parser can supply any token type whose category is
// comparable against grammar terminals; Terminal returns that category.
type Token interface {
	// Terminal returns the terminal code point the token stands for.
	Terminal() rune

	// Text returns the source text of the token. It appears on the leaf
	// node the parser emits when the token is consumed.
	Text() string
}

// CharToken is the trivial token: a bare code point standing for itself.
type CharToken rune

func (t CharToken) Terminal() rune {
	return rune(t)
}

func (t CharToken) Text() string {
	return string(rune(t))
}

// TokenizeText turns a string into one CharToken per code point. It is
// the input adapter for grammars whose terminals are characters.
func TokenizeText(text string) []Token {
	var toks []Token
	for _, c := range text {
		toks = append(toks, CharToken(c))
	}
	return toks
}

// MatchFunc maps an input token to the grammar terminal it should be
// compared against. The default matcher uses Token.Terminal directly;
// a custom matcher lets richer token types choose the category some
// other way.
type MatchFunc func(tok Token) rune
