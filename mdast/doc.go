/*
Package mdast holds the source tree for rendering: a parsed Markdown
document as produced by a Markdown parser.

Overview

The vocabulary of node types is fixed and mirrors the CommonMark reference
AST (document, heading, paragraph, block quote, list, item, emphasis, strong
emphasis, link, image, code block, inline code, text, soft and hard line
breaks, thematic break, raw HTML). Parsers which produce node kinds outside
this vocabulary map them to nodes of type Other, carrying the parser's name
for the kind and an explicit container flag.

Source trees are built once, by a parser adapter (see package
goldmarkadapter), and are treated as immutable afterwards. They may be
walked by any number of walkers concurrently.

Walking

Node.Walker returns a step walker. Container nodes produce an entering and an
exiting step, leaf nodes an entering step only. Next returns a nil step
as soon as the walk is exhausted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mdast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtodom.mdast'.
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.mdast")
}
