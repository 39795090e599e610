/*
Package tree implements an all-purpose tree type.

There are many tree implementations around. This one supports trees
of a fairly simple structure: every node carries a payload and an ordered
list of children. Children may be added, inserted or isolated concurrently.

Walking

A Walker performs a depth-first traversal of a (sub-)tree and reports every
node as a step. Container nodes are reported twice, once when the walker
enters them and once when it leaves them; leaf nodes are reported on
entering only:

   w := tree.NewWalker(root, isContainer)
   for {
       step, ok, err := w.Next()
       if err != nil || !ok {
           break
       }
       … step.Node, step.Entering …
   }

Walkers are single-use. To walk a tree a second time, create a new one.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtodom.tree'.
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.tree")
}
