package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"github.com/npillmayer/mdtodom/mdast"
	"github.com/npillmayer/mdtodom/stack"
	"github.com/npillmayer/mdtodom/traverse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Errors returned by rendering.
var (
	ErrNoDocument   = errors.New("render: no output document")
	ErrNoSourceTree = errors.New("render: source tree is nil")
	ErrNotDocument  = errors.New("render: source tree root is not a document node")
	ErrUnbalanced   = errors.New("render: unbalanced enter/exit events")
	ErrTraversal    = errors.New("render: traversal of source tree failed")
)

// DiagnosticCode classifies diagnostics.
type DiagnosticCode int8

// Diagnostic codes.
const (
	DiagFallback   DiagnosticCode = iota // unknown container rendered as span
	DiagSkipped                          // unknown leaf or omitted raw HTML skipped
	DiagUnbalanced                       // ancestor stack out of balance
	DiagRawHTML                          // raw HTML could not be inserted
)

func (c DiagnosticCode) String() string {
	switch c {
	case DiagFallback:
		return "fallback"
	case DiagSkipped:
		return "skipped"
	case DiagUnbalanced:
		return "unbalanced"
	case DiagRawHTML:
		return "raw-html"
	}
	return fmt.Sprintf("diagnostic(%d)", int(c))
}

// Diagnostic is a non-fatal observation made during rendering.
type Diagnostic struct {
	Code     DiagnosticCode
	NodeType string // type name of the source node, if any
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.NodeType, d.Message)
}

// Renderer renders source trees into DOM trees of a document.
// A Renderer holds configuration only; it may be used for any number of
// renderings, concurrently, as long as every rendering targets its own
// output root.
type Renderer struct {
	doc           w3cdom.Document
	rawHTML       RawHTML
	image         ImageElement
	headingIDs    bool
	codeInfoClass bool
	diagnostics   func(Diagnostic)
}

// New creates a renderer which creates output nodes with doc.
func New(doc w3cdom.Document, options ...Option) (*Renderer, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	r := &Renderer{
		doc:        doc,
		rawHTML:    RawHTMLInert,
		image:      ImageAsImg,
		headingIDs: true,
	}
	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render renders a source tree with a one-shot renderer. See Renderer.Render.
func Render(doc w3cdom.Document, tree *mdast.Node, root w3cdom.Node, options ...Option) (w3cdom.Node, error) {
	r, err := New(doc, options...)
	if err != nil {
		return nil, err
	}
	return r.Render(tree, root)
}

// frame is an entry of the ancestor stack: an open source container and
// the output node which was current before it was entered.
type frame struct {
	src   *mdast.Node
	outer w3cdom.Node
}

// rendering holds the state of a single call to Render.
type rendering struct {
	*Renderer
	root      w3cdom.Node
	parent    w3cdom.Node // nil while outside the document
	ancestors *stack.Stack[frame]
	lower     cases.Caser
	document  *mdast.Node // the entered document node
}

// Render converts the source tree into DOM nodes and appends them to root.
// If root is nil, a new document fragment is created. Existing children of
// root are left untouched. Render returns the root.
//
// If the traversal fails or turns out to be unbalanced, Render returns the
// partially populated root together with an error.
func (r *Renderer) Render(tree *mdast.Node, root w3cdom.Node) (w3cdom.Node, error) {
	if tree == nil {
		return root, ErrNoSourceTree
	}
	if tree.Type() != mdast.Document {
		return root, fmt.Errorf("%w: is %s", ErrNotDocument, tree.TypeName())
	}
	return r.renderEvents(traverse.Of(tree), root)
}

// renderEvents builds the output tree from a sequence of traversal events.
func (r *Renderer) renderEvents(events *traverse.Events, root w3cdom.Node) (w3cdom.Node, error) {
	if root == nil {
		root = r.doc.CreateDocumentFragment()
	}
	rnd := &rendering{
		Renderer:  r,
		root:      root,
		ancestors: stack.New[frame](32),
	}
	if r.headingIDs {
		rnd.lower = cases.Lower(language.Und) // a Caser must not be shared between goroutines
	}
	for events.Next() {
		ev := events.Event()
		var err error
		if ev.Entering {
			err = rnd.enter(ev.Node)
		} else {
			err = rnd.exit(ev.Node)
		}
		if err != nil {
			return root, err
		}
	}
	if err := events.Err(); err != nil {
		tracer().Errorf("traversal failed: %v", err)
		return root, fmt.Errorf("%w: %w", ErrTraversal, err)
	}
	if open := rnd.open(); open > 0 {
		rnd.diagnose(DiagUnbalanced, "", fmt.Sprintf("ancestors stack not empty (%d open)", open))
		return root, fmt.Errorf("%w: %d open containers at end of traversal", ErrUnbalanced, open)
	}
	return root, nil
}

// open counts the containers not yet closed, including the document.
func (rnd *rendering) open() int {
	n := rnd.ancestors.Len()
	if rnd.parent != nil {
		n++
	}
	return n
}

// enter handles an entering event. Every container node, except the
// document itself, pushes exactly one element onto the ancestor stack.
func (rnd *rendering) enter(node *mdast.Node) error {
	if node.Type() == mdast.Document && rnd.parent == nil && rnd.document == nil {
		rnd.parent = rnd.root
		rnd.document = node
		return nil
	}
	if rnd.parent == nil {
		rnd.diagnose(DiagUnbalanced, node.TypeName(), "node outside of document")
		return fmt.Errorf("%w: %s entered outside of document", ErrUnbalanced, node.TypeName())
	}
	var child w3cdom.Node // new parent for container nodes
	doc := rnd.doc
	switch node.Type() {
	case mdast.Heading:
		child = rnd.appendElement(fmt.Sprintf("h%d", node.Level()))
	case mdast.Paragraph:
		child = rnd.appendElement("p")
	case mdast.BlockQuote:
		child = rnd.appendElement("blockquote")
	case mdast.List:
		if node.ListType() == mdast.Ordered {
			child = rnd.appendElement("ol")
			if node.ListStart() != 1 {
				child.SetAttribute("start", fmt.Sprintf("%d", node.ListStart()))
			}
		} else {
			child = rnd.appendElement("ul")
		}
	case mdast.Item:
		child = rnd.appendElement("li")
	case mdast.Emph:
		child = rnd.appendElement("em")
	case mdast.Strong:
		child = rnd.appendElement("strong")
	case mdast.Link:
		child = rnd.appendElement("a")
		child.SetAttribute("href", node.Destination())
		if node.Title() != "" {
			child.SetAttribute("title", node.Title())
		}
	case mdast.Image:
		tag, urlAttr := rnd.image.tag()
		child = rnd.appendElement(tag) // container until exit, collecting the alt text
		child.SetAttribute(urlAttr, node.Destination())
		if node.Title() != "" {
			child.SetAttribute("title", node.Title())
		}
	case mdast.CodeBlock:
		pre := rnd.appendElement("pre")
		code := pre.AppendChild(rnd.codeElement(node.Literal()))
		if lang := infoLanguage(node.Info()); rnd.codeInfoClass && lang != "" {
			code.SetAttribute("class", "language-"+lang)
		}
	case mdast.Code:
		rnd.parent.AppendChild(rnd.codeElement(node.Literal()))
	case mdast.Text:
		rnd.parent.AppendChild(doc.CreateTextNode(node.Literal()))
	case mdast.SoftBreak:
		rnd.parent.AppendChild(doc.CreateTextNode("\n"))
	case mdast.LineBreak:
		rnd.appendElement("br")
	case mdast.ThematicBreak:
		rnd.appendElement("hr")
	case mdast.HTMLBlock, mdast.HTMLInline:
		rnd.insertRawHTML(node)
	case mdast.Document, mdast.Other:
		// No flows should come here, except for parser extensions.
		if node.IsContainer() {
			rnd.diagnose(DiagFallback, node.TypeName(), "falling back to span")
			child = rnd.appendElement("span")
		} else {
			rnd.diagnose(DiagSkipped, node.TypeName(), "skipping unknown leaf")
		}
	default:
		return fmt.Errorf("render: no rule for node type %s", node.Type())
	}
	if node.IsContainer() {
		if child == nil { // every container needs a frame on the stack
			return fmt.Errorf("render: container %s produced no element", node.TypeName())
		}
		rnd.ancestors.Push(frame{src: node, outer: rnd.parent})
		rnd.parent = child
	}
	return nil
}

// exit handles an exiting event: finalize the current element, then make
// its parent the current element again.
func (rnd *rendering) exit(node *mdast.Node) error {
	if node == rnd.document && rnd.parent == rnd.root && rnd.ancestors.Empty() {
		rnd.parent = nil // outside the tree
		return nil
	}
	if rnd.parent == nil {
		rnd.diagnose(DiagUnbalanced, node.TypeName(), "exit outside of document")
		return fmt.Errorf("%w: %s exited outside of document", ErrUnbalanced, node.TypeName())
	}
	top, ok := rnd.ancestors.Peek()
	if !ok {
		rnd.diagnose(DiagUnbalanced, node.TypeName(), "exit without matching enter")
		return fmt.Errorf("%w: unexpected exit of %s", ErrUnbalanced, node.TypeName())
	}
	if top.src != node { // exits must match enters in LIFO order
		rnd.diagnose(DiagUnbalanced, node.TypeName(),
			fmt.Sprintf("exit does not match open %s", top.src.TypeName()))
		return fmt.Errorf("%w: exit of %s while %s is open", ErrUnbalanced,
			node.TypeName(), top.src.TypeName())
	}
	switch node.Type() {
	case mdast.Heading:
		if rnd.headingIDs {
			rnd.parent.SetAttribute("id", rnd.headingID(rnd.parent.TextContent()))
		}
	case mdast.Image:
		alt := rnd.parent.TextContent()
		rnd.parent.RemoveChildren()
		rnd.parent.SetAttribute("alt", alt)
	}
	rnd.ancestors.Pop()
	rnd.parent = top.outer
	return nil
}

// appendElement creates an element and appends it to the current parent.
func (rnd *rendering) appendElement(tag string) w3cdom.Node {
	el := rnd.doc.CreateElement(tag)
	rnd.parent.AppendChild(el)
	return el
}

func (rnd *rendering) codeElement(text string) w3cdom.Node {
	code := rnd.doc.CreateElement("code")
	code.AppendChild(rnd.doc.CreateTextNode(text))
	return code
}

func (rnd *rendering) insertRawHTML(node *mdast.Node) {
	switch rnd.rawHTML {
	case RawHTMLEscape:
		rnd.parent.AppendChild(rnd.doc.CreateTextNode(node.Literal()))
	case RawHTMLOmit:
		rnd.diagnose(DiagSkipped, node.TypeName(), "raw HTML omitted")
	default:
		if err := rnd.parent.InsertHTML(node.Literal()); err != nil {
			rnd.diagnose(DiagRawHTML, node.TypeName(), err.Error())
		}
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// headingID lower-cases text and replaces white space runs with hyphens.
func (rnd *rendering) headingID(text string) string {
	return whitespaceRun.ReplaceAllString(rnd.lower.String(text), "-")
}

// infoLanguage extracts the language from the info string of a fenced
// code block.
func infoLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (rnd *rendering) diagnose(code DiagnosticCode, nodeType, msg string) {
	d := Diagnostic{Code: code, NodeType: nodeType, Message: msg}
	if code == DiagUnbalanced {
		tracer().Errorf("render: %s", d)
	} else {
		tracer().Infof("render: %s", d)
	}
	if rnd.diagnostics != nil {
		rnd.diagnostics(d)
	}
}
