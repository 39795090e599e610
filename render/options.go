package render

import (
	"fmt"
	"strings"
)

// RawHTML selects how raw HTML from the source tree is inserted.
type RawHTML int8

// Modes for raw HTML.
const (
	RawHTMLInert  RawHTML = iota // insert as markup, sanitized by the output document
	RawHTMLEscape                // insert the literal as a text node
	RawHTMLOmit                  // drop raw HTML
)

var rawHTMLNames = map[RawHTML]string{
	RawHTMLInert:  "inert",
	RawHTMLEscape: "escape",
	RawHTMLOmit:   "omit",
}

func (m RawHTML) String() string {
	if s, ok := rawHTMLNames[m]; ok {
		return s
	}
	return fmt.Sprintf("rawhtml(%d)", int(m))
}

// ParseRawHTML maps a mode name ("inert", "escape", "omit") to a RawHTML mode.
func ParseRawHTML(s string) (RawHTML, error) {
	for m, name := range rawHTMLNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return RawHTMLInert, fmt.Errorf("unknown raw HTML mode %q", s)
}

// ImageElement selects the output element for images.
type ImageElement int8

// Image elements.
const (
	ImageAsImg    ImageElement = iota // <img src=…>
	ImageAsObject                     // <object data=…>
)

func (e ImageElement) String() string {
	if e == ImageAsObject {
		return "object"
	}
	return "img"
}

// ParseImageElement maps "img" or "object" to an ImageElement.
func ParseImageElement(s string) (ImageElement, error) {
	switch strings.ToLower(s) {
	case "img":
		return ImageAsImg, nil
	case "object":
		return ImageAsObject, nil
	}
	return ImageAsImg, fmt.Errorf("unknown image element %q", s)
}

// tag and URL attribute for an image element.
func (e ImageElement) tag() (string, string) {
	if e == ImageAsObject {
		return "object", "data"
	}
	return "img", "src"
}

// Option configures a Renderer.
type Option func(r *Renderer) error

// WithRawHTML sets the mode for raw HTML. Default is RawHTMLInert.
func WithRawHTML(mode RawHTML) Option {
	return func(r *Renderer) error {
		if _, ok := rawHTMLNames[mode]; !ok {
			return fmt.Errorf("unknown raw HTML mode %d", mode)
		}
		r.rawHTML = mode
		return nil
	}
}

// WithImageElement sets the output element for images. Default is ImageAsImg.
func WithImageElement(e ImageElement) Option {
	return func(r *Renderer) error {
		if e != ImageAsImg && e != ImageAsObject {
			return fmt.Errorf("unknown image element %d", e)
		}
		r.image = e
		return nil
	}
}

// WithHeadingIDs switches synthesis of heading ids on or off. Default is on.
func WithHeadingIDs(flag bool) Option {
	return func(r *Renderer) error {
		r.headingIDs = flag
		return nil
	}
}

// WithCodeInfoClass sets a class "language-<lang>" on the code element of
// fenced code blocks with an info string. Default is off.
func WithCodeInfoClass(flag bool) Option {
	return func(r *Renderer) error {
		r.codeInfoClass = flag
		return nil
	}
}

// WithDiagnostics installs a handler which is called for every diagnostic.
func WithDiagnostics(handler func(Diagnostic)) Option {
	return func(r *Renderer) error {
		r.diagnostics = handler
		return nil
	}
}
