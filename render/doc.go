/*
Package render converts a Markdown source tree (package mdast) into a tree
of DOM nodes (package w3cdom).

Overview

A Renderer walks the source tree once, depth-first, and builds the output
tree from the stream of entering and exiting events. Every output element is
appended to its parent as soon as it is created; container elements are then
pushed onto an explicit stack of ancestors and become the parent of what
follows, until their exiting event pops them off again.

Two kinds of elements are finalized when they are left:

  - headings get an id attribute, derived from their text content by
    lower-casing it and replacing runs of white space with hyphens;
  - images drop the children collected from their alt description and carry
    its text as alt attribute instead.

Identifiers of headings are not de-duplicated; two headings with the same
text receive the same id.

Raw HTML is never executed. Depending on the RawHTML mode it is inserted as
sanitized markup, as a plain text node, or not at all.

Node types outside the fixed vocabulary degrade gracefully: containers are
rendered as span elements, leafs are skipped. Both are reported as
diagnostics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtodom.render'.
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.render")
}
