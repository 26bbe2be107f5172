package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Dalgona/cs-compiler/driver"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a text stream and print its parse tree",
		Example: `  cat src | ll1 parse grammar.ll1`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := analyzeGrammarFile(args[0])
	if err != nil {
		return err
	}
	if !a.ll1 {
		fmt.Fprintln(os.Stderr, "warning: the grammar is not LL(1); the parse follows the table, not necessarily the grammar as written")
	}

	var src io.Reader = os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	text, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	input := driver.TokenizeText(strings.TrimSuffix(string(text), "\n"))

	p, err := driver.NewParser(a.gram, a.table)
	if err != nil {
		return err
	}

	tree, err := p.Parse(input)
	if err != nil {
		synErr, ok := err.(*driver.SyntaxError)
		if !ok {
			return err
		}
		fmt.Fprintf(os.Stderr, "%v (consumed %v of %v tokens)\n", synErr, len(input)-len(synErr.Remaining), len(input))
		return fmt.Errorf("the input does not match the grammar")
	}

	driver.PrintTree(os.Stdout, tree)
	return nil
}
