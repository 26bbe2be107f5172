package spec

// Description is a JSON-able summary of a grammar and the analyses
// derived from it. Symbols appear in their display form: non-terminals by
// name, terminals quoted, plus the <eof> and <empty> markers.
type Description struct {
	Start        string        `json:"start"`
	LL1          bool          `json:"ll1"`
	Terminals    []string      `json:"terminals"`
	NonTerminals []NonTerminal `json:"non_terminals"`
	Productions  []Production  `json:"productions"`
	Table        []TableEntry  `json:"table"`
	Conflicts    []Conflict    `json:"conflicts"`
}

type NonTerminal struct {
	Name       string   `json:"name"`
	Nullable   bool     `json:"nullable"`
	First      []string `json:"first"`
	FirstEmpty bool     `json:"first_contains_empty"`
	Follow     []string `json:"follow"`
	FollowEOF  bool     `json:"follow_contains_eof"`
}

type Production struct {
	Number int      `json:"number"`
	LHS    string   `json:"lhs"`
	RHS    []string `json:"rhs"`
}

type TableEntry struct {
	NonTerminal string `json:"non_terminal"`
	LookAhead   string `json:"look_ahead"`
	Production  int    `json:"production"`
}

type Conflict struct {
	NonTerminal string `json:"non_terminal"`
	LookAhead   string `json:"look_ahead"`
	Adopted     int    `json:"adopted"`
	Discarded   int    `json:"discarded"`
}
