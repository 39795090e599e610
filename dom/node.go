package dom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/mdtodom/dom/sanitize"
	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// W3CNode is the type for W3C conformant DOM nodes, wrapping an HTML node.
// Two W3CNodes are the same DOM node if they wrap the same HTML node.
type W3CNode struct {
	h     *html.Node
	owner *Document
}

var _ w3cdom.Node = &W3CNode{}

// HTMLNode returns the underlying HTML node.
func (w *W3CNode) HTMLNode() *html.Node {
	return w.h
}

// OwnerDocument returns the document which created this node.
func (w *W3CNode) OwnerDocument() *Document {
	return w.owner
}

func (w *W3CNode) String() string {
	return fmt.Sprintf("<%s>", w.NodeName())
}

// NodeIsText is true for text nodes.
func NodeIsText(n w3cdom.Node) bool {
	return n != nil && n.NodeType() == html.TextNode
}

// NodeType is part of interface w3cdom.Node
func (w *W3CNode) NodeType() html.NodeType {
	return w.h.Type
}

// NodeName is part of interface w3cdom.Node
func (w *W3CNode) NodeName() string {
	switch w.h.Type {
	case html.DocumentNode:
		return "#document-fragment"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	}
	return w.h.Data
}

// NodeValue is part of interface w3cdom.Node
func (w *W3CNode) NodeValue() string {
	switch w.h.Type {
	case html.TextNode, html.CommentNode:
		return w.h.Data
	}
	return ""
}

// ParentNode is part of interface w3cdom.Node
func (w *W3CNode) ParentNode() w3cdom.Node {
	return w.owner.wrap(w.h.Parent)
}

// HasChildNodes is part of interface w3cdom.Node
func (w *W3CNode) HasChildNodes() bool {
	return w.h.FirstChild != nil
}

// ChildNodes is part of interface w3cdom.Node
func (w *W3CNode) ChildNodes() w3cdom.NodeList {
	var children []*W3CNode
	for ch := w.h.FirstChild; ch != nil; ch = ch.NextSibling {
		children = append(children, w.owner.Wrap(ch))
	}
	return &domNodeList{nodes: children}
}

// FirstChild is part of interface w3cdom.Node
func (w *W3CNode) FirstChild() w3cdom.Node {
	return w.owner.wrap(w.h.FirstChild)
}

// NextSibling is part of interface w3cdom.Node
func (w *W3CNode) NextSibling() w3cdom.Node {
	return w.owner.wrap(w.h.NextSibling)
}

// AppendChild is part of interface w3cdom.Node.
// If child is attached somewhere else, it is moved. AppendChild returns
// child, or nil if child is not a *W3CNode or is an ancestor of w.
func (w *W3CNode) AppendChild(child w3cdom.Node) w3cdom.Node {
	ch, ok := child.(*W3CNode)
	if !ok || ch == nil {
		tracer().Errorf("cannot append %v: %v", child, ErrForeignNode)
		return nil
	}
	for a := w.h; a != nil; a = a.Parent {
		if a == ch.h {
			tracer().Errorf("cannot append ancestor %s to %s", ch, w)
			return nil
		}
	}
	if ch.h.Parent != nil {
		ch.h.Parent.RemoveChild(ch.h)
	}
	w.h.AppendChild(ch.h)
	return ch
}

// RemoveChild is part of interface w3cdom.Node.
// It returns nil if child is not a child of w.
func (w *W3CNode) RemoveChild(child w3cdom.Node) w3cdom.Node {
	ch, ok := child.(*W3CNode)
	if !ok || ch == nil || ch.h.Parent != w.h {
		return nil
	}
	w.h.RemoveChild(ch.h)
	return ch
}

// RemoveChildren is part of interface w3cdom.Node
func (w *W3CNode) RemoveChildren() {
	for ch := w.h.LastChild; ch != nil; ch = w.h.LastChild {
		w.h.RemoveChild(ch)
	}
}

// HasAttributes is part of interface w3cdom.Node
func (w *W3CNode) HasAttributes() bool {
	return len(w.h.Attr) > 0
}

// Attributes is part of interface w3cdom.Node
func (w *W3CNode) Attributes() w3cdom.NamedNodeMap {
	return &attributeMap{attrs: w.h.Attr}
}

// GetAttribute is part of interface w3cdom.Node
func (w *W3CNode) GetAttribute(key string) (string, bool) {
	for _, a := range w.h.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute is part of interface w3cdom.Node.
// Attributes may be set on element nodes only.
func (w *W3CNode) SetAttribute(key, value string) {
	if w.h.Type != html.ElementNode {
		tracer().Errorf("cannot set attribute %q on %s", key, w)
		return
	}
	key = strings.ToLower(key)
	for i, a := range w.h.Attr {
		if a.Namespace == "" && a.Key == key {
			w.h.Attr[i].Val = value
			return
		}
	}
	w.h.Attr = append(w.h.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttribute is part of interface w3cdom.Node
func (w *W3CNode) RemoveAttribute(key string) {
	for i, a := range w.h.Attr {
		if a.Namespace == "" && a.Key == key {
			w.h.Attr = append(w.h.Attr[:i], w.h.Attr[i+1:]...)
			return
		}
	}
}

// TextContent is part of interface w3cdom.Node.
// For text nodes it returns the text, for elements and fragments the
// concatenated text of all descendent text nodes.
func (w *W3CNode) TextContent() string {
	switch w.h.Type {
	case html.TextNode, html.CommentNode:
		return w.h.Data
	}
	var b strings.Builder
	collectText(w.h, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			b.WriteString(ch.Data)
		} else if ch.Type == html.ElementNode || ch.Type == html.DocumentNode {
			collectText(ch, b)
		}
	}
}

// InsertHTML is part of interface w3cdom.Node.
// markup is parsed as a fragment in the context of w, cleaned by the owner
// document's sanitizing policy and appended to w's children. Script content
// is never executed, and is removed by the default policy.
func (w *W3CNode) InsertHTML(markup string) error {
	if w.h.Type != html.ElementNode && w.h.Type != html.DocumentNode {
		return fmt.Errorf("cannot insert markup into %s", w)
	}
	context := w.h
	if context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("cannot parse markup: %w", err)
	}
	var policy *sanitize.Policy
	if w.owner != nil {
		policy = w.owner.policy
	}
	if policy == nil {
		tracer().Errorf("no sanitizing policy for %s, dropping markup", w)
		return nil
	}
	for _, n := range policy.Clean(nodes) {
		w.h.AppendChild(n)
	}
	return nil
}

// --- Node lists and attribute maps -----------------------------------------

type domNodeList struct {
	nodes []*W3CNode
}

// Length is part of interface w3cdom.NodeList
func (l *domNodeList) Length() int {
	return len(l.nodes)
}

// Item is part of interface w3cdom.NodeList
func (l *domNodeList) Item(i int) w3cdom.Node {
	if i < 0 || i >= len(l.nodes) {
		return nil
	}
	return l.nodes[i]
}

func (l *domNodeList) String() string {
	names := make([]string, len(l.nodes))
	for i, n := range l.nodes {
		names[i] = n.NodeName()
	}
	return "[" + strings.Join(names, " ") + "]"
}

type attributeMap struct {
	attrs []html.Attribute
}

type domAttr struct {
	a html.Attribute
}

func (a domAttr) Namespace() string { return a.a.Namespace }
func (a domAttr) Key() string       { return a.a.Key }
func (a domAttr) Value() string     { return a.a.Val }

// Length is part of interface w3cdom.NamedNodeMap
func (m *attributeMap) Length() int {
	return len(m.attrs)
}

// Item is part of interface w3cdom.NamedNodeMap
func (m *attributeMap) Item(i int) w3cdom.Attr {
	if i < 0 || i >= len(m.attrs) {
		return nil
	}
	return domAttr{m.attrs[i]}
}

// GetNamedItem is part of interface w3cdom.NamedNodeMap
func (m *attributeMap) GetNamedItem(key string) w3cdom.Attr {
	for _, a := range m.attrs {
		if a.Key == key {
			return domAttr{a}
		}
	}
	return nil
}
