package spec

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// lexical errors
	synErrUnclosedTerminal  = newSyntaxError("unclosed terminal")
	synErrEmptyTerminal     = newSyntaxError("a terminal must contain just one code point")
	synErrInvalidEscSeq     = newSyntaxError("invalid escape sequence")
	synErrIncompletedEscSeq = newSyntaxError("incompleted escape sequence; unexpected EOF following \\")
	synErrInvalidCodePoint  = newSyntaxError("code points must consist of 1 to 6 hex digits enclosed in {}")

	// syntax errors
	synErrInvalidToken     = newSyntaxError("invalid token")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrNoColon          = newSyntaxError("the colon must precede alternatives")
	synErrNoSemicolon      = newSyntaxError("the semicolon is missing at the last of an alternative")
	synErrNoDirectiveName  = newSyntaxError("a directive needs a name")

	// SynErrDirInvalidParam is also raised by the grammar builder when a
	// directive is well-formed but takes the wrong parameters.
	SynErrDirInvalidParam = newSyntaxError("invalid directive parameter")
)
