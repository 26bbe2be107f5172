package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrMalformedName       = newSemanticError("malformed non-terminal name")
	semErrInvalidTerminal     = newSemanticError("a terminal must be a valid Unicode scalar value")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrUndefinedStart      = newSemanticError("the start symbol is not a declared non-terminal")
	semErrDuplicateProduction = newSemanticError("duplicate production")
)
