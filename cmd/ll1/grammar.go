package main

import (
	"fmt"
	"os"

	verr "github.com/Dalgona/cs-compiler/error"
	"github.com/Dalgona/cs-compiler/grammar"
	"github.com/Dalgona/cs-compiler/spec"
)

type analysis struct {
	gram     *grammar.Grammar
	nullable *grammar.NullableSet
	first    *grammar.FirstSet
	follow   *grammar.FollowSet
	table    *grammar.ParsingTable
	ll1      bool
}

func analyzeGrammarFile(path string) (_ *analysis, retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		switch err := retErr.(type) {
		case verr.SpecErrors:
			for _, e := range err {
				e.FilePath = path
				e.SourceName = path
			}
		case *verr.SpecError:
			err.FilePath = path
			err.SourceName = path
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, err
	}

	nullable := grammar.GenNullableSet(gram)
	first, err := grammar.GenFirstSet(gram)
	if err != nil {
		return nil, err
	}
	follow, err := grammar.GenFollowSet(gram, first, nullable)
	if err != nil {
		return nil, err
	}
	table, err := grammar.GenParsingTable(gram, first, follow)
	if err != nil {
		return nil, err
	}
	ll1, err := grammar.IsLL1(gram, first, follow)
	if err != nil {
		return nil, err
	}

	return &analysis{
		gram:     gram,
		nullable: nullable,
		first:    first,
		follow:   follow,
		table:    table,
		ll1:      ll1,
	}, nil
}
