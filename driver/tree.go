package driver

import (
	"fmt"
	"io"

	"github.com/Dalgona/cs-compiler/grammar/symbol"
)

// Node is a parse-tree node labeled with a grammar symbol. A terminal
// node is a childless leaf carrying the text of the token it consumed.
// A non-terminal node expanded by an ε-production is also childless.
type Node struct {
	Sym      symbol.Symbol
	Text     string
	Children []*Node
}

// Leaves returns the terminal leaves of the tree in order. For an
// accepted parse the leaf sequence equals the consumed input.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.collectLeaves(&leaves)
	return leaves
}

func (n *Node) collectLeaves(acc *[]*Node) {
	if n.Sym.IsTerminal() {
		*acc = append(*acc, n)
		return
	}
	for _, child := range n.Children {
		child.collectLeaves(acc)
	}
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch {
	case node.Sym.IsTerminal():
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.Sym, node.Text)
	case len(node.Children) == 0:
		fmt.Fprintf(w, "%v%v ε\n", ruledLine, node.Sym)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.Sym)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
