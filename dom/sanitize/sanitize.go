/*
Package sanitize makes parsed HTML fragments inert.

Raw HTML embedded in Markdown documents is inserted into the output DOM as
markup. Building the DOM never executes anything, but the serialized output
will eventually be loaded by a browser. A Policy removes everything a browser
would execute from a fragment: script-carrying elements, event handler
attributes, script URLs, and style declarations able to run code or load
resources.

Elements are selected with CSS selectors (cascadia); inline styles are parsed
with douceur.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sanitize

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'mdtodom.dom'.
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.dom")
}

// DefaultDroppedElements is the selector group for elements removed by
// default, including their content.
const DefaultDroppedElements = "script, iframe, frame, frameset, object, embed, applet, " +
	"base, meta, link, style, noscript, template, animate, set"

// alwaysDropped is part of every selector group.
const alwaysDropped = "script"

// animationValues are attributes of SVG animation elements which set the
// value of the attribute named by attributeName.
var animationValues = map[string]bool{
	"values": true,
	"to":     true,
	"from":   true,
	"by":     true,
}

// urlAttributes may carry URLs with a script scheme.
var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"data":       true,
	"xlink:href": true,
	"poster":     true,
	"background": true,
	"srcdoc":     true,
}

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:text/html"}

// Policy removes executable content from HTML fragments.
type Policy struct {
	dropped cascadia.Selector
}

// Option configures a Policy.
type Option func(p *Policy) error

// WithDroppedElements replaces the selector group of elements to remove.
// Script elements are always removed.
func WithDroppedElements(selector string) Option {
	return func(p *Policy) error {
		sel, err := cascadia.Compile(alwaysDropped + ", " + selector)
		if err != nil {
			return fmt.Errorf("sanitize: invalid selector %q: %w", selector, err)
		}
		p.dropped = sel
		return nil
	}
}

// New creates a sanitizing policy.
func New(options ...Option) (*Policy, error) {
	p := &Policy{dropped: cascadia.MustCompile(DefaultDroppedElements)}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Default returns a policy with default settings.
func Default() *Policy {
	p, _ := New()
	return p
}

// Clean sanitizes a list of sibling nodes, as returned by html.ParseFragment.
// It returns the surviving top-level nodes; their subtrees are cleaned
// in place. The nodes must not be attached to a parent.
func (p *Policy) Clean(nodes []*html.Node) []*html.Node {
	holder := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		holder.AppendChild(n)
	}
	for _, n := range p.dropped.MatchAll(holder) {
		if n.Parent != nil {
			tracer().Infof("sanitize: dropping <%s> element", n.Data)
			n.Parent.RemoveChild(n)
		}
	}
	p.cleanAttributes(holder)
	var result []*html.Node
	for n := holder.FirstChild; n != nil; n = holder.FirstChild {
		holder.RemoveChild(n)
		result = append(result, n)
	}
	return result
}

func (p *Policy) cleanAttributes(n *html.Node) {
	if n.Type == html.ElementNode && len(n.Attr) > 0 {
		animatesURL := animatesURLAttribute(n)
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			if a.Namespace != "" {
				key = strings.ToLower(a.Namespace) + ":" + key
			}
			switch {
			case strings.HasPrefix(key, "on"):
				tracer().Infof("sanitize: dropping event handler %s on <%s>", key, n.Data)
				continue
			case urlAttributes[key] && hasUnsafeScheme(a.Val):
				tracer().Infof("sanitize: dropping script URL in %s on <%s>", key, n.Data)
				continue
			case animatesURL && animationValues[key] && hasUnsafeValue(a.Val):
				tracer().Infof("sanitize: dropping animated script URL in %s on <%s>", key, n.Data)
				continue
			case key == "style":
				style, ok := cleanStyle(a.Val)
				if !ok || style == "" {
					continue
				}
				a.Val = style
			}
			attrs = append(attrs, a)
		}
		n.Attr = attrs
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.cleanAttributes(c)
	}
}

// animatesURLAttribute is true for elements which animate an attribute
// carrying a URL, e.g. <animate attributeName="href">.
func animatesURLAttribute(n *html.Node) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "attributename") {
			return urlAttributes[strings.ToLower(strings.TrimSpace(a.Val))]
		}
	}
	return false
}

// hasUnsafeValue checks every entry of a semicolon-separated value list.
func hasUnsafeValue(values string) bool {
	for _, v := range strings.Split(values, ";") {
		if hasUnsafeScheme(v) {
			return true
		}
	}
	return false
}

func hasUnsafeScheme(url string) bool {
	u := strings.Map(func(r rune) rune {
		if r <= ' ' { // browsers ignore control characters and blanks in schemes
			return -1
		}
		return r
	}, strings.ToLower(url))
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(u, scheme) {
			return true
		}
	}
	return false
}

// cleanStyle filters the declarations of an inline style attribute.
// It returns false if the attribute cannot be parsed.
func cleanStyle(style string) (string, bool) {
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		tracer().Infof("sanitize: dropping unparsable style %q", style)
		return "", false
	}
	kept := make([]string, 0, len(decls))
	for _, d := range decls {
		if !isSafeDeclaration(d) {
			tracer().Infof("sanitize: dropping style declaration %s", d.Property)
			continue
		}
		s := d.Property + ": " + d.Value
		if d.Important {
			s += " !important"
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, "; "), true
}

func isSafeDeclaration(d *css.Declaration) bool {
	prop := strings.ToLower(d.Property)
	if prop == "behavior" || prop == "-moz-binding" {
		return false
	}
	v := strings.ToLower(strings.ReplaceAll(d.Value, " ", ""))
	for _, bad := range []string{"expression(", "javascript:", "vbscript:", "url("} {
		if strings.Contains(v, bad) {
			return false
		}
	}
	return true
}
