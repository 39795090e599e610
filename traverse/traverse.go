/*
Package traverse turns the step walker of a source tree into a uniform
sequence of traversal events.

The sequence is lazy, finite and cannot be restarted; clients request a new
one for every traversal:

    events := traverse.Of(doc)
    for events.Next() {
        ev := events.Event()
        …
    }
    if err := events.Err(); err != nil {
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package traverse

import (
	"github.com/npillmayer/mdtodom/mdast"
)

// Walker is the protocol of step-producing source tree walkers.
// Next returns a nil step when the walk is exhausted.
type Walker interface {
	Next() (*mdast.Step, error)
}

// Event is a single traversal event. Container nodes are reported once
// entering and once exiting, leaf nodes once, entering.
type Event struct {
	Node     *mdast.Node
	Entering bool
}

// Events is a sequence of traversal events, pulled from a Walker.
type Events struct {
	walker  Walker
	current Event
	err     error
	done    bool
}

// Over creates an event sequence for a walker. A nil walker yields an empty
// sequence; a typed nil pointer must have a Next method accepting a nil
// receiver, as *mdast.Walker does.
func Over(w Walker) *Events {
	return &Events{walker: w, done: w == nil}
}

// Of creates an event sequence for a fresh walk of the tree rooted at root.
func Of(root *mdast.Node) *Events {
	return Over(root.Walker())
}

// Next advances to the next event. It returns false when the sequence is
// exhausted or the walker failed; Err tells the two apart.
func (e *Events) Next() bool {
	if e.done {
		return false
	}
	step, err := e.walker.Next()
	if err != nil || step == nil {
		e.done = true
		e.err = err
		e.current = Event{}
		return false
	}
	e.current = Event{Node: step.Node, Entering: step.Entering}
	return true
}

// Event returns the current event. It is valid after a call to Next
// returned true.
func (e *Events) Event() Event {
	return e.current
}

// Err returns the error of the underlying walker, if any.
func (e *Events) Err() error {
	return e.err
}
