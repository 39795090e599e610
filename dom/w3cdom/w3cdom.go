/*
Package w3cdom defines an interface type for W3C Document Object Models.

See also https://www.w3schools.com/XML/dom_intro.asp

The interfaces cover the subset of the DOM a renderer needs to build a
document tree: creating elements and text nodes, appending and removing
children, setting attributes, reading text content, and inserting raw
markup.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom

import (
	"golang.org/x/net/html"
)

// Document represents the node factory of a W3C-type Document.
type Document interface {
	CreateElement(tagName string) Node // create a detached element node
	CreateTextNode(data string) Node   // create a detached text node
	CreateDocumentFragment() Node      // create a detached container for a list of nodes
}

// Node represents W3C-type Node
type Node interface {
	NodeType() html.NodeType                // type of the underlying HTML node (ElementNode, TextNode, etc.)
	NodeName() string                       // node name output depends on the node's type
	NodeValue() string                      // node value output depends on the node's type
	ParentNode() Node                       // get the parent node, if any
	HasChildNodes() bool                    // check for existence of sub-nodes
	ChildNodes() NodeList                   // get a list of all children-nodes
	FirstChild() Node                       // get the first children-node
	NextSibling() Node                      // get the Node's next sibling or nil if last
	AppendChild(child Node) Node            // append child as last child, detaching it first; returns child
	RemoveChild(child Node) Node            // remove a child node; returns child
	RemoveChildren()                        // remove all children-nodes
	HasAttributes() bool                    // check for existence of attributes
	Attributes() NamedNodeMap               // get all attributes of a node
	GetAttribute(key string) (string, bool) // get an attribute value and whether it is set
	SetAttribute(key, value string)         // set an attribute, replacing an existing value
	RemoveAttribute(key string)             // remove an attribute, if present
	TextContent() string                    // get text from node and all descendents
	InsertHTML(markup string) error         // parse markup and append the inert result as children
}

// NodeList represents W3C-type NodeList
type NodeList interface {
	Length() int
	Item(int) Node
	String() string
}

// Attr represents W3C-type Attr
type Attr interface {
	Namespace() string
	Key() string
	Value() string
}

// NamedNodeMap represents w3C-type NamedNodeMap
type NamedNodeMap interface {
	Length() int
	Item(int) Attr
	GetNamedItem(string) Attr
}
