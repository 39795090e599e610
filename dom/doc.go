/*
Package dom implements W3C DOM interfaces (package w3cdom) on top of the
HTML node tree of golang.org/x/net/html.

Overview

A Document is a factory for nodes; nodes are wrapped html.Nodes. Renderers
build output trees through the w3cdom interfaces and clients serialize the
result with Render or OuterHTML, or hand the underlying html.Node tree to
other tooling.

Raw markup inserted with InsertHTML is parsed as an HTML fragment in the
context of the receiving element and passed through the document's
sanitizing policy (package sanitize) before it is attached. Nothing is ever
executed while building the tree, and the sanitized result stays inert when
the serialized output is loaded by a browser.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'mdtodom.dom'
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.dom")
}
