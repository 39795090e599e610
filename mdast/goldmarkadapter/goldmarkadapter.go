/*
Package goldmarkadapter builds mdast source trees from Markdown text, using
goldmark as the parser.

Goldmark's node kinds are mapped onto the fixed vocabulary of package mdast.
Kinds outside of it, e.g. nodes created by the GFM extensions, become nodes of
type mdast.Other, named after the goldmark kind.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package goldmarkadapter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/npillmayer/mdtodom/mdast"
	"github.com/npillmayer/schuko/tracing"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// tracer traces with key 'mdtodom.mdast'.
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.mdast")
}

// ErrUnexpectedNode is returned if goldmark produces a tree which cannot be
// converted.
var ErrUnexpectedNode = errors.New("goldmarkadapter: unexpected node")

// Parser parses Markdown text into source trees.
// A Parser may be used concurrently.
type Parser struct {
	gfm       bool
	mdoptions []parser.Option
	md        goldmark.Markdown
}

// Option configures a Parser.
type Option func(p *Parser)

// WithGFM enables the GitHub Flavored Markdown extensions (tables,
// strikethrough, autolinks without brackets, task lists).
func WithGFM() Option {
	return func(p *Parser) {
		p.gfm = true
	}
}

// WithParserOptions passes options on to goldmark's parser.
func WithParserOptions(options ...parser.Option) Option {
	return func(p *Parser) {
		p.mdoptions = append(p.mdoptions, options...)
	}
}

// New creates a Markdown parser.
func New(options ...Option) *Parser {
	p := &Parser{}
	for _, option := range options {
		option(p)
	}
	var mdopts []goldmark.Option
	if p.gfm {
		mdopts = append(mdopts, goldmark.WithExtensions(extension.GFM))
	}
	if len(p.mdoptions) > 0 {
		mdopts = append(mdopts, goldmark.WithParserOptions(p.mdoptions...))
	}
	p.md = goldmark.New(mdopts...)
	return p
}

// Parse parses Markdown text and returns the source tree for it.
// Empty input results in an empty document.
func (p *Parser) Parse(src []byte) (*mdast.Node, error) {
	root := p.md.Parser().Parse(text.NewReader(src))
	if root == nil || root.Kind() != ast.KindDocument {
		return nil, fmt.Errorf("%w: parser did not return a document", ErrUnexpectedNode)
	}
	c := converter{src: src}
	nodes, err := c.convert(root)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: document converted to %d nodes", ErrUnexpectedNode, len(nodes))
	}
	return nodes[0], nil
}

type converter struct {
	src []byte
}

// convert maps a goldmark node and its subtree. Text nodes may expand to
// more than one node, as line breaks are separate nodes in mdast.
func (c converter) convert(n ast.Node) ([]*mdast.Node, error) {
	var node *mdast.Node
	switch n := n.(type) {
	case *ast.Document:
		node = mdast.NewDocument()
	case *ast.Heading:
		node = mdast.NewHeading(n.Level)
	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewParagraph()
	case *ast.Blockquote:
		node = mdast.NewBlockQuote()
	case *ast.List:
		if n.IsOrdered() {
			node = mdast.NewList(mdast.Ordered, n.Start, n.IsTight)
		} else {
			node = mdast.NewList(mdast.Bullet, 0, n.IsTight)
		}
	case *ast.ListItem:
		node = mdast.NewItem()
	case *ast.Emphasis:
		if n.Level == 1 {
			node = mdast.NewEmph()
		} else {
			node = mdast.NewStrong()
		}
	case *ast.Link:
		node = mdast.NewLink(c.unescape(n.Destination), c.unescape(n.Title))
	case *ast.Image:
		node = mdast.NewImage(c.unescape(n.Destination), c.unescape(n.Title))
	case *ast.AutoLink:
		url := n.URL(c.src)
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		link := mdast.NewLink(string(url), "")
		return []*mdast.Node{link.Append(mdast.NewText(string(n.Label(c.src))))}, nil
	case *ast.FencedCodeBlock:
		var info string
		if n.Info != nil {
			info = c.unescape(n.Info.Segment.Value(c.src))
		}
		return []*mdast.Node{mdast.NewCodeBlock(info, c.lines(n))}, nil
	case *ast.CodeBlock:
		return []*mdast.Node{mdast.NewCodeBlock("", c.lines(n))}, nil
	case *ast.CodeSpan:
		return []*mdast.Node{mdast.NewCode(c.codeSpan(n))}, nil
	case *ast.Text:
		return c.text(n), nil
	case *ast.String:
		return []*mdast.Node{mdast.NewText(string(n.Value))}, nil
	case *ast.ThematicBreak:
		return []*mdast.Node{mdast.NewThematicBreak()}, nil
	case *ast.HTMLBlock:
		literal := c.lines(n)
		if n.HasClosure() {
			literal += string(n.ClosureLine.Value(c.src))
		}
		return []*mdast.Node{mdast.NewHTMLBlock(literal)}, nil
	case *ast.RawHTML:
		var b bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		return []*mdast.Node{mdast.NewHTMLInline(b.String())}, nil
	default:
		var literal string
		if n.Type() == ast.TypeBlock && !n.HasChildren() {
			literal = c.lines(n)
		}
		tracer().Debugf("goldmark node kind %s is not part of the vocabulary", n.Kind())
		node = mdast.NewOther(n.Kind().String(), n.HasChildren(), literal)
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		children, err := c.convert(ch)
		if err != nil {
			return nil, err
		}
		if !node.IsContainer() {
			return nil, fmt.Errorf("%w: %s has children", ErrUnexpectedNode, n.Kind())
		}
		node.Append(children...)
	}
	return []*mdast.Node{node}, nil
}

// text converts a text segment. Line break flags become separate nodes.
func (c converter) text(n *ast.Text) []*mdast.Node {
	var nodes []*mdast.Node
	value := n.Segment.Value(c.src)
	if len(value) > 0 {
		if n.IsRaw() {
			nodes = append(nodes, mdast.NewText(string(value)))
		} else {
			nodes = append(nodes, mdast.NewText(c.unescape(value)))
		}
	}
	if n.HardLineBreak() {
		nodes = append(nodes, mdast.NewLineBreak())
	} else if n.SoftLineBreak() {
		nodes = append(nodes, mdast.NewSoftBreak())
	}
	return nodes
}

// codeSpan concatenates the text of a code span. Line endings inside code
// spans are converted to spaces.
func (c converter) codeSpan(n *ast.CodeSpan) string {
	var b bytes.Buffer
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		var value []byte
		switch t := ch.(type) {
		case *ast.Text:
			value = t.Segment.Value(c.src)
		case *ast.String:
			value = t.Value
		}
		if l := len(value); l > 0 && value[l-1] == '\n' {
			b.Write(value[:l-1])
			b.WriteByte(' ')
		} else {
			b.Write(value)
		}
	}
	return b.String()
}

// lines concatenates the source lines of a block node.
func (c converter) lines(n ast.Node) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.src))
	}
	return b.String()
}

// unescape resolves backslash escapes and character references.
func (c converter) unescape(value []byte) string {
	v := util.UnescapePunctuations(value)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}
