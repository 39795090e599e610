package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
)

// ErrEmptyTree is returned if a Walker is called with an empty tree. Refer to
// the documentation of NewWalker() for details about this scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrDetachedNode is returned if a node has been cut off from its parent
// while a Walker was visiting it. The walk cannot find its way back up.
var ErrDetachedNode = errors.New("tree node detached during walk")

// Step is a single event of a depth-first walk.
type Step[T comparable] struct {
	Node     *Node[T]
	Entering bool // false if the walker is leaving a container node
}

// Walker holds the cursor of a depth-first traversal over a (sub-)tree.
// It is the analogue of a classic enter/exit node walker: container nodes
// are visited twice, leaf nodes once.
//
// A Walker is not restartable and not safe for concurrent use. The tree
// itself may well be walked by several Walkers at the same time.
type Walker[T comparable] struct {
	root        *Node[T]
	current     *Node[T]
	entering    bool
	isContainer func(*Node[T]) bool
	err         error
}

// NewWalker creates a Walker for the initial node of a (sub-)tree.
// isContainer decides which nodes will be entered and left; if it is nil,
// every node with children is treated as a container.
//
// If initial is nil, NewWalker will return a Walker which reports
// ErrEmptyTree on the first call to Next.
func NewWalker[T comparable](initial *Node[T], isContainer func(*Node[T]) bool) *Walker[T] {
	if isContainer == nil {
		isContainer = func(n *Node[T]) bool { return n.ChildCount() > 0 }
	}
	w := &Walker[T]{
		root:        initial,
		current:     initial,
		entering:    true,
		isContainer: isContainer,
	}
	if initial == nil {
		w.err = ErrEmptyTree
	}
	return w
}

// Next returns the next step of the walk. ok is false as soon as the walk is
// exhausted. A non-nil error ends the walk as well.
func (w *Walker[T]) Next() (step Step[T], ok bool, err error) {
	if w.err != nil {
		err, w.err = w.err, nil
		w.current = nil
		return step, false, err
	}
	cur := w.current
	if cur == nil {
		return step, false, nil
	}
	step = Step[T]{Node: cur, Entering: w.entering}
	if w.entering && w.isContainer(cur) {
		if ch := cur.FirstChild(); ch != nil {
			w.current = ch // stays entering
		} else {
			w.entering = false // leave the empty container next
		}
		return step, true, nil
	}
	if cur == w.root {
		w.current = nil
		return step, true, nil
	}
	if sibling := cur.NextSibling(); sibling != nil {
		w.current, w.entering = sibling, true
		return step, true, nil
	}
	parent := cur.Parent()
	if parent == nil {
		tracer().Errorf("walker lost parent of node %v", cur)
		w.err = ErrDetachedNode
		w.current = nil
		return step, true, nil
	}
	w.current, w.entering = parent, false
	return step, true, nil
}
