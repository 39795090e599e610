package mdast

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/mdtodom/tree"
)

// Type is the discriminant of source nodes.
type Type int8

// Types of source nodes.
const (
	Other         Type = iota // any node type outside the fixed vocabulary
	Document                  // root of every source tree
	Heading                   // ATX or setext heading, level 1…6
	Paragraph                 // paragraph
	BlockQuote                // block quote
	List                      // ordered or bullet list
	Item                      // list item
	Emph                      // emphasis
	Strong                    // strong emphasis
	Link                      // link with destination and title
	Image                     // image; children form the alt description
	CodeBlock                 // indented or fenced code block
	Code                      // inline code span
	Text                      // literal text
	SoftBreak                 // soft line break
	LineBreak                 // hard line break
	ThematicBreak             // horizontal rule
	HTMLBlock                 // raw HTML block
	HTMLInline                // raw inline HTML
)

var typeNames = [...]string{
	Other:         "other",
	Document:      "document",
	Heading:       "heading",
	Paragraph:     "paragraph",
	BlockQuote:    "block_quote",
	List:          "list",
	Item:          "item",
	Emph:          "emph",
	Strong:        "strong",
	Link:          "link",
	Image:         "image",
	CodeBlock:     "code_block",
	Code:          "code",
	Text:          "text",
	SoftBreak:     "softbreak",
	LineBreak:     "linebreak",
	ThematicBreak: "thematic_break",
	HTMLBlock:     "html_block",
	HTMLInline:    "html_inline",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// IsContainer is true for node types which may have children.
// For Other, containment is decided per node (see Node.IsContainer).
func (t Type) IsContainer() bool {
	switch t {
	case Document, Heading, Paragraph, BlockQuote, List, Item, Emph, Strong, Link, Image:
		return true
	}
	return false
}

// ListType distinguishes ordered from bullet lists.
type ListType int8

// List types.
const (
	Bullet ListType = iota
	Ordered
)

func (lt ListType) String() string {
	if lt == Ordered {
		return "ordered"
	}
	return "bullet"
}

// Node is a node of a source tree.
// Nodes are read-only once the tree has been built.
type Node struct {
	tree.Node[*Node] // we build on top of general purpose tree
	typ              Type
	name             string // type name for Other
	container        bool   // containment for Other
	level            int
	listType         ListType
	listStart        int
	listTight        bool
	destination      string
	title            string
	literal          string
	info             string
}

func newNode(typ Type) *Node {
	n := &Node{typ: typ, container: typ.IsContainer()}
	n.Payload = n // Payload will always reference the node itself
	return n
}

// NodeOf gets the source node from a generic tree node.
func NodeOf(n *tree.Node[*Node]) *Node {
	if n == nil {
		return nil
	}
	return n.Payload
}

// NewDocument creates the root node of a source tree.
func NewDocument() *Node {
	return newNode(Document)
}

// NewHeading creates a heading node. level is clamped to 1…6.
func NewHeading(level int) *Node {
	n := newNode(Heading)
	switch {
	case level < 1:
		level = 1
	case level > 6:
		level = 6
	}
	n.level = level
	return n
}

// NewParagraph creates a paragraph node.
func NewParagraph() *Node {
	return newNode(Paragraph)
}

// NewBlockQuote creates a block quote node.
func NewBlockQuote() *Node {
	return newNode(BlockQuote)
}

// NewList creates a list node. start is meaningful for ordered lists only.
func NewList(listType ListType, start int, tight bool) *Node {
	n := newNode(List)
	n.listType = listType
	n.listStart = start
	n.listTight = tight
	return n
}

// NewItem creates a list item node.
func NewItem() *Node {
	return newNode(Item)
}

// NewEmph creates an emphasis node.
func NewEmph() *Node {
	return newNode(Emph)
}

// NewStrong creates a strong emphasis node.
func NewStrong() *Node {
	return newNode(Strong)
}

// NewLink creates a link node.
func NewLink(destination, title string) *Node {
	n := newNode(Link)
	n.destination = destination
	n.title = title
	return n
}

// NewImage creates an image node. The alt description of the image is
// given by the children of the node.
func NewImage(destination, title string) *Node {
	n := newNode(Image)
	n.destination = destination
	n.title = title
	return n
}

// NewCodeBlock creates a code block node. info is the info string of a
// fenced code block and empty for indented code blocks.
func NewCodeBlock(info, literal string) *Node {
	n := newNode(CodeBlock)
	n.info = info
	n.literal = literal
	return n
}

// NewCode creates an inline code node.
func NewCode(literal string) *Node {
	n := newNode(Code)
	n.literal = literal
	return n
}

// NewText creates a text node.
func NewText(literal string) *Node {
	n := newNode(Text)
	n.literal = literal
	return n
}

// NewSoftBreak creates a soft line break.
func NewSoftBreak() *Node {
	return newNode(SoftBreak)
}

// NewLineBreak creates a hard line break.
func NewLineBreak() *Node {
	return newNode(LineBreak)
}

// NewThematicBreak creates a thematic break.
func NewThematicBreak() *Node {
	return newNode(ThematicBreak)
}

// NewHTMLBlock creates a raw HTML block.
func NewHTMLBlock(literal string) *Node {
	n := newNode(HTMLBlock)
	n.literal = literal
	return n
}

// NewHTMLInline creates a raw inline HTML node.
func NewHTMLInline(literal string) *Node {
	n := newNode(HTMLInline)
	n.literal = literal
	return n
}

// NewOther creates a node of a type outside the fixed vocabulary.
// name is the parser's name for the node type.
func NewOther(name string, container bool, literal string) *Node {
	n := newNode(Other)
	n.name = name
	n.container = container
	n.literal = literal
	return n
}

// Append adds children to n and returns n.
// Leaf nodes do not accept children.
func (n *Node) Append(children ...*Node) *Node {
	if !n.IsContainer() {
		tracer().Errorf("cannot append children to leaf node %s", n.TypeName())
		return n
	}
	for _, ch := range children {
		if ch != nil {
			n.AddChild(&ch.Node)
		}
	}
	return n
}

// Detach removes n from its parent and returns n. Walkers currently
// inside the subtree of n report tree.ErrDetachedNode.
func (n *Node) Detach() *Node {
	n.Isolate()
	return n
}

// Children returns the child nodes of n.
func (n *Node) Children() []*Node {
	chs := n.Node.Children(true)
	nodes := make([]*Node, len(chs))
	for i, ch := range chs {
		nodes[i] = NodeOf(ch)
	}
	return nodes
}

// Parent returns the parent of n, or nil for the root.
func (n *Node) Parent() *Node {
	return NodeOf(n.Node.Parent())
}

// Type returns the node type.
func (n *Node) Type() Type {
	return n.typ
}

// TypeName returns the name of the node type. For nodes of type Other this
// is the name given by the parser.
func (n *Node) TypeName() string {
	if n.typ == Other && n.name != "" {
		return n.name
	}
	return n.typ.String()
}

// IsContainer is true if n may have children.
func (n *Node) IsContainer() bool {
	return n.container
}

// Level is the heading level (1…6), or 0 for other node types.
func (n *Node) Level() int {
	return n.level
}

// ListType returns the kind of a list node.
func (n *Node) ListType() ListType {
	return n.listType
}

// ListStart returns the start number of an ordered list.
func (n *Node) ListStart() int {
	return n.listStart
}

// ListTight is true for tight lists.
func (n *Node) ListTight() bool {
	return n.listTight
}

// Destination returns the destination of a link or image.
func (n *Node) Destination() string {
	return n.destination
}

// Title returns the title of a link or image.
func (n *Node) Title() string {
	return n.title
}

// Literal returns the literal content of text, code and raw HTML nodes.
func (n *Node) Literal() string {
	return n.literal
}

// Info returns the info string of a fenced code block.
func (n *Node) Info() string {
	return n.info
}

func (n *Node) String() string {
	switch n.typ {
	case Heading:
		return fmt.Sprintf("heading(%d)", n.level)
	case List:
		if n.listType == Ordered {
			return fmt.Sprintf("list(ordered, %d)", n.listStart)
		}
		return "list(bullet)"
	case Link, Image:
		return fmt.Sprintf("%s(%q)", n.typ, n.destination)
	case Text, Code, CodeBlock, HTMLBlock, HTMLInline:
		return fmt.Sprintf("%s %q", n.typ, n.literal)
	}
	return n.TypeName()
}
