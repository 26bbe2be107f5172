package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Dalgona/cs-compiler/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var describeFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar file path>",
		Short:   "Print the nullable/FIRST/FOLLOW sets and the LL(1) table of a grammar",
		Example: `  ll1 describe grammar.ll1`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	describeFlags.json = cmd.Flags().Bool("json", false, "when this option is enabled, the description is printed as JSON")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	a, err := analyzeGrammarFile(args[0])
	if err != nil {
		return err
	}

	desc, err := grammar.DescribeGrammar(a.gram, a.nullable, a.first, a.follow, a.table, a.ll1)
	if err != nil {
		return err
	}

	if *describeFlags.json {
		b, err := json.Marshal(desc)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
		return nil
	}

	pterm.DefaultSection.Println("Grammar")
	pterm.Println(fmt.Sprintf("start symbol: %v", desc.Start))
	for _, prod := range desc.Productions {
		line := fmt.Sprintf("%4v %v →", prod.Number, prod.LHS)
		for _, sym := range prod.RHS {
			line += " " + sym
		}
		pterm.Println(line)
	}

	pterm.DefaultSection.Println("Symbol sets")
	setData := pterm.TableData{
		{"non-terminal", "nullable", "FIRST", "FOLLOW"},
	}
	for _, nt := range desc.NonTerminals {
		first := joinSet(nt.First, nt.FirstEmpty, "<empty>")
		follow := joinSet(nt.Follow, nt.FollowEOF, "<eof>")
		setData = append(setData, []string{nt.Name, strconv.FormatBool(nt.Nullable), first, follow})
	}
	err = pterm.DefaultTable.WithHasHeader().WithData(setData).Render()
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("LL(1) table")
	tableData := pterm.TableData{
		{"non-terminal", "lookahead", "production"},
	}
	for _, cell := range desc.Table {
		tableData = append(tableData, []string{cell.NonTerminal, cell.LookAhead, strconv.Itoa(cell.Production)})
	}
	err = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	if err != nil {
		return err
	}

	if desc.LL1 {
		pterm.Success.Println("The grammar is LL(1).")
	} else {
		pterm.Warning.Println("The grammar is not LL(1); conflicting cells were resolved by declaration order.")
		for _, c := range desc.Conflicts {
			pterm.Println(fmt.Sprintf("conflict on (%v, %v): production %v adopted, %v discarded", c.NonTerminal, c.LookAhead, c.Adopted, c.Discarded))
		}
	}

	return nil
}

func joinSet(symbols []string, marker bool, markerText string) string {
	text := ""
	for i, sym := range symbols {
		if i > 0 {
			text += ", "
		}
		text += sym
	}
	if marker {
		if text != "" {
			text += ", "
		}
		text += markerText
	}
	return text
}
