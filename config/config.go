/*
Package config reads the deployment configuration of the Markdown viewer
from YAML.

A configuration file looks like this (all keys are optional):

	render:
	  raw-html: inert        # inert | escape | omit
	  image: img             # img | object
	  heading-ids: true
	  code-info-class: false
	sanitize:
	  dropped-elements: "script, iframe, style"
	parser:
	  gfm: true
	view:
	  welcome-page: welcome.md
	  container-id: mdview
	trace:
	  level: Error           # Debug | Info | Error

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/mdtodom/dom/sanitize"
	"github.com/npillmayer/mdtodom/mdast/goldmarkadapter"
	"github.com/npillmayer/mdtodom/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete configuration.
type Config struct {
	Render   Render   `yaml:"render"`
	Sanitize Sanitize `yaml:"sanitize"`
	Parser   Parser   `yaml:"parser"`
	View     View     `yaml:"view"`
	Trace    Trace    `yaml:"trace"`
}

// Render configures the structural renderer.
type Render struct {
	RawHTML       string `yaml:"raw-html"`
	Image         string `yaml:"image"`
	HeadingIDs    bool   `yaml:"heading-ids"`
	CodeInfoClass bool   `yaml:"code-info-class"`
}

// Sanitize configures the policy for raw HTML.
type Sanitize struct {
	DroppedElements string `yaml:"dropped-elements,omitempty"`
}

// Parser configures the Markdown parser.
type Parser struct {
	GFM bool `yaml:"gfm"`
}

// View configures the page viewer.
type View struct {
	WelcomePage string `yaml:"welcome-page"`
	ContainerID string `yaml:"container-id"`
}

// Trace configures tracing.
type Trace struct {
	Level string `yaml:"level"`
}

var traceLevels = []string{"Debug", "Info", "Error"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Render: Render{
			RawHTML:    render.RawHTMLInert.String(),
			Image:      render.ImageAsImg.String(),
			HeadingIDs: true,
		},
		Parser: Parser{GFM: true},
		View: View{
			WelcomePage: "welcome.md",
			ContainerID: "mdview",
		},
		Trace: Trace{Level: "Error"},
	}
}

// Load reads a configuration file. Values not present in the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse reads configuration from YAML data and validates it. Unknown keys
// are an error.
func Parse(data []byte) (*Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: cannot decode: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the enumerated values of a configuration.
func (conf *Config) Validate() error {
	if _, err := render.ParseRawHTML(conf.Render.RawHTML); err != nil {
		return fmt.Errorf("%w: render.raw-html: %v", ErrInvalid, err)
	}
	if _, err := render.ParseImageElement(conf.Render.Image); err != nil {
		return fmt.Errorf("%w: render.image: %v", ErrInvalid, err)
	}
	if conf.Sanitize.DroppedElements != "" {
		if _, err := conf.SanitizePolicy(); err != nil {
			return fmt.Errorf("%w: sanitize.dropped-elements: %v", ErrInvalid, err)
		}
	}
	if strings.TrimSpace(conf.View.WelcomePage) == "" {
		return fmt.Errorf("%w: view.welcome-page is empty", ErrInvalid)
	}
	if strings.TrimSpace(conf.View.ContainerID) == "" {
		return fmt.Errorf("%w: view.container-id is empty", ErrInvalid)
	}
	for _, level := range traceLevels {
		if strings.EqualFold(level, conf.Trace.Level) {
			return nil
		}
	}
	return fmt.Errorf("%w: trace.level %q is none of %v", ErrInvalid, conf.Trace.Level, traceLevels)
}

// RenderOptions returns the renderer options for a configuration.
func (conf *Config) RenderOptions() ([]render.Option, error) {
	rawHTML, err := render.ParseRawHTML(conf.Render.RawHTML)
	if err != nil {
		return nil, err
	}
	image, err := render.ParseImageElement(conf.Render.Image)
	if err != nil {
		return nil, err
	}
	return []render.Option{
		render.WithRawHTML(rawHTML),
		render.WithImageElement(image),
		render.WithHeadingIDs(conf.Render.HeadingIDs),
		render.WithCodeInfoClass(conf.Render.CodeInfoClass),
	}, nil
}

// ParserOptions returns the Markdown parser options for a configuration.
func (conf *Config) ParserOptions() []goldmarkadapter.Option {
	var options []goldmarkadapter.Option
	if conf.Parser.GFM {
		options = append(options, goldmarkadapter.WithGFM())
	}
	return options
}

// SanitizePolicy creates the policy for raw HTML.
func (conf *Config) SanitizePolicy() (*sanitize.Policy, error) {
	if conf.Sanitize.DroppedElements == "" {
		return sanitize.New()
	}
	return sanitize.New(sanitize.WithDroppedElements(conf.Sanitize.DroppedElements))
}

// TraceLevel returns the trace level name, capitalized as the tracing
// configuration expects it.
func (conf *Config) TraceLevel() string {
	for _, level := range traceLevels {
		if strings.EqualFold(level, conf.Trace.Level) {
			return level
		}
	}
	return "Error"
}
