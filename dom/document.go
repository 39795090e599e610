package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/mdtodom/dom/sanitize"
	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrForeignNode is returned if a node of a different DOM implementation
// is handed to a W3CNode.
var ErrForeignNode = errors.New("node is not a *dom.W3CNode")

// Document is a factory for DOM nodes backed by golang.org/x/net/html.
// A Document holds no mutable state and may be shared between goroutines;
// the nodes it creates may not.
type Document struct {
	policy *sanitize.Policy
}

var _ w3cdom.Document = &Document{}

// NewDocument creates a document. Raw markup inserted into its nodes is
// cleaned by policy; if policy is nil, the default policy is used.
func NewDocument(policy *sanitize.Policy) *Document {
	if policy == nil {
		policy = sanitize.Default()
	}
	return &Document{policy: policy}
}

// CreateElement creates a detached element node for a tag name.
func (doc *Document) CreateElement(tagName string) w3cdom.Node {
	tagName = strings.ToLower(tagName)
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     tagName,
		DataAtom: atom.Lookup([]byte(tagName)),
	}
	return doc.wrap(h)
}

// CreateTextNode creates a detached text node.
func (doc *Document) CreateTextNode(data string) w3cdom.Node {
	return doc.wrap(&html.Node{Type: html.TextNode, Data: data})
}

// CreateDocumentFragment creates a detached container node. Serializing a
// fragment serializes its children only.
func (doc *Document) CreateDocumentFragment() w3cdom.Node {
	return doc.wrap(&html.Node{Type: html.DocumentNode})
}

// Wrap makes an existing HTML node available as a DOM node of doc.
// It returns nil for a nil node.
func (doc *Document) Wrap(h *html.Node) *W3CNode {
	if h == nil {
		return nil
	}
	return &W3CNode{h: h, owner: doc}
}

func (doc *Document) wrap(h *html.Node) w3cdom.Node {
	if h == nil {
		return nil // avoid typed nil interfaces
	}
	return doc.Wrap(h)
}

// --- Serialization ---------------------------------------------------------

// Render writes the HTML serialization of a node and its descendents to w.
// Document fragments are serialized as the sequence of their children.
func Render(w io.Writer, n w3cdom.Node) error {
	node, ok := n.(*W3CNode)
	if !ok {
		return ErrForeignNode
	}
	return html.Render(w, node.h)
}

// OuterHTML returns the HTML serialization of a node. If serialization
// fails, the error text is returned in an HTML comment.
func OuterHTML(n w3cdom.Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		tracer().Errorf("serialization failed: %v", err)
		return "<!-- " + err.Error() + " -->"
	}
	return buf.String()
}

// InnerHTML returns the HTML serialization of a node's children.
func InnerHTML(n w3cdom.Node) string {
	var b strings.Builder
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		b.WriteString(OuterHTML(ch))
	}
	return b.String()
}
