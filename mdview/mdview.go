/*
Package mdview loads Markdown pages from a file system and renders them into
a container element of a DOM.

Page names usually come from a query string, as in "?view=guide.md".
ResolvePath extracts the page name and refuses names which would reach hidden
files or leave the page tree.

A page which cannot be read is replaced by an error page, stating the status
of the request in a heading (e.g. "404 Not Found").

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mdview

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"github.com/npillmayer/mdtodom/mdast/goldmarkadapter"
	"github.com/npillmayer/mdtodom/render"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtodom.view'.
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.view")
}

// DefaultWelcomePage is loaded if neither the caller nor the container name
// a page.
const DefaultWelcomePage = "welcome.md"

// WelcomePageAttribute is the container attribute naming its welcome page.
const WelcomePageAttribute = "data-welcome-page"

// Errors returned by the viewer.
var (
	ErrNoSource    = errors.New("mdview: no page source")
	ErrNoContainer = errors.New("mdview: no container element")
)

// Viewer renders Markdown pages into containers.
type Viewer struct {
	src           fs.FS
	doc           w3cdom.Document
	parser        *goldmarkadapter.Parser
	renderOptions []render.Option
	renderer      *render.Renderer
	welcome       string
}

// Option configures a Viewer.
type Option func(v *Viewer)

// WithRenderOptions passes options to the renderer.
func WithRenderOptions(options ...render.Option) Option {
	return func(v *Viewer) {
		v.renderOptions = append(v.renderOptions, options...)
	}
}

// WithParser sets the Markdown parser. Default is a goldmark parser with
// CommonMark syntax.
func WithParser(p *goldmarkadapter.Parser) Option {
	return func(v *Viewer) {
		if p != nil {
			v.parser = p
		}
	}
}

// WithWelcomePage sets the page loaded if no page is requested.
func WithWelcomePage(name string) Option {
	return func(v *Viewer) {
		if name != "" {
			v.welcome = name
		}
	}
}

// New creates a viewer for the pages in src, creating DOM nodes with doc.
func New(src fs.FS, doc w3cdom.Document, options ...Option) (*Viewer, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	v := &Viewer{src: src, doc: doc, welcome: DefaultWelcomePage}
	for _, option := range options {
		option(v)
	}
	if v.parser == nil {
		v.parser = goldmarkadapter.New()
	}
	r, err := render.New(doc, v.renderOptions...)
	if err != nil {
		return nil, err
	}
	v.renderer = r
	return v, nil
}

// ResolvePath extracts a page name from a query string. A leading '?' and
// a "view=" prefix are removed. Names of hidden files and names containing
// a hidden path segment are refused, and ResolvePath returns "".
func ResolvePath(query string) string {
	path := strings.TrimPrefix(query, "?")
	path = strings.TrimPrefix(path, "view=")
	if strings.HasPrefix(path, ".") || strings.Contains(path, "/.") {
		tracer().Infof("refusing page name %q", query)
		return ""
	}
	return path
}

// Load reads a page and renders it into container, replacing its children.
// If name is empty, the page named by the container's welcome page
// attribute is loaded, or else the viewer's welcome page.
//
// A page which cannot be read results in an error page; Load fails only if
// rendering fails.
func (v *Viewer) Load(container w3cdom.Node, name string) error {
	if container == nil {
		return ErrNoContainer
	}
	if name == "" {
		if welcome, ok := container.GetAttribute(WelcomePageAttribute); ok && welcome != "" {
			name = welcome
		} else {
			name = v.welcome
		}
	}
	text := v.read(name)
	tree, err := v.parser.Parse(text)
	if err != nil {
		return fmt.Errorf("mdview: cannot parse %s: %w", name, err)
	}
	container.RemoveChildren()
	if _, err = v.renderer.Render(tree, container); err != nil {
		return fmt.Errorf("mdview: cannot render %s: %w", name, err)
	}
	return nil
}

// read returns the Markdown text of a page, or of an error page.
func (v *Viewer) read(name string) []byte {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) {
		tracer().Infof("invalid page name %q", name)
		return errorPage(http.StatusForbidden)
	}
	text, err := fs.ReadFile(v.src, name)
	switch {
	case err == nil:
		tracer().Debugf("loaded page %s, %d bytes", name, len(text))
		return text
	case errors.Is(err, fs.ErrNotExist):
		tracer().Infof("page %s not found", name)
		return errorPage(http.StatusNotFound)
	case errors.Is(err, fs.ErrPermission):
		tracer().Infof("page %s not accessible", name)
		return errorPage(http.StatusForbidden)
	}
	tracer().Errorf("cannot read page %s: %v", name, err)
	return errorPage(http.StatusInternalServerError)
}

func errorPage(status int) []byte {
	return []byte(fmt.Sprintf("# %d %s\n", status, http.StatusText(status)))
}
