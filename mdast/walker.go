package mdast

import (
	"github.com/npillmayer/mdtodom/tree"
)

// Step is a single step of a walk over a source tree.
type Step struct {
	Node     *Node
	Entering bool
}

// Walker walks a source tree depth-first. Create one with Node.Walker.
type Walker struct {
	w *tree.Walker[*Node]
}

// Walker returns a new walker for the subtree rooted at n.
func (n *Node) Walker() *Walker {
	var root *tree.Node[*Node]
	if n != nil {
		root = &n.Node
	}
	return &Walker{w: tree.NewWalker(root, isContainer)}
}

func isContainer(n *tree.Node[*Node]) bool {
	return NodeOf(n).IsContainer()
}

// Next returns the next step of the walk, or nil if the walk is exhausted.
// Errors are reported if the tree is empty or has been modified during
// the walk in a way the walker cannot recover from. A nil walker is
// exhausted.
func (w *Walker) Next() (*Step, error) {
	if w == nil || w.w == nil {
		return nil, nil
	}
	step, ok, err := w.w.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &Step{Node: NodeOf(step.Node), Entering: step.Entering}, nil
}
