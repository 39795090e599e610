package mdast

import (
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump returns a printable representation of the source tree rooted at n.
func Dump(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	printer := tp.NewWithRoot(n.String())
	dumpChildren(printer, n)
	return strings.TrimRight(printer.String(), "\n")
}

func dumpChildren(printer tp.Tree, n *Node) {
	for _, ch := range n.Children() {
		if ch.IsContainer() {
			dumpChildren(printer.AddBranch(ch.String()), ch)
		} else {
			printer.AddNode(ch.String())
		}
	}
}
