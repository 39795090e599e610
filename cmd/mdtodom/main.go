/*
Command mdtodom renders a Markdown page from a directory into a complete
HTML page, written to standard output.

	mdtodom -root ./pages -view '?view=guide.md' > guide.html

The page name is resolved like a query string of a viewer URL. Without a
page name the welcome page is rendered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/mdtodom/config"
	"github.com/npillmayer/mdtodom/dom"
	"github.com/npillmayer/mdtodom/dom/domdbg"
	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"github.com/npillmayer/mdtodom/mdast/goldmarkadapter"
	"github.com/npillmayer/mdtodom/mdview"
	"github.com/npillmayer/mdtodom/render"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'mdtodom.view'
func tracer() tracing.Trace {
	return tracing.Select("mdtodom.view")
}

var traceKeys = []string{"mdtodom.tree", "mdtodom.mdast", "mdtodom.render", "mdtodom.dom", "mdtodom.view"}

func main() {
	initDisplay()

	// command line flags
	confpath := flag.String("config", "", "YAML configuration file")
	root := flag.String("root", ".", "Directory holding the Markdown pages")
	view := flag.String("view", "", "Page to render, e.g. '?view=guide.md'")
	containerID := flag.String("container", "", "Id of the container element")
	rawHTML := flag.String("raw-html", "", "Raw HTML mode [inert|escape|omit]")
	image := flag.String("image", "", "Element for images [img|object]")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	dump := flag.Bool("dump", false, "Print the DOM tree to stderr")
	flag.Parse()

	conf := config.Default()
	if *confpath != "" {
		var err error
		if conf, err = config.Load(*confpath); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	overrideConfig(conf, *containerID, *rawHTML, *image, *tlevel)
	if err := conf.Validate(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}

	// set up logging
	if err := initTracing(conf.TraceLevel()); err != nil {
		pterm.Error.Println("error configuring tracing")
		os.Exit(1)
	}
	tracer().Infof("Trace level is %s", conf.TraceLevel())

	doc, page, container, err := setupPage(conf)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	renderOptions, err := conf.RenderOptions()
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	diagnostics := 0
	renderOptions = append(renderOptions, render.WithDiagnostics(func(d render.Diagnostic) {
		diagnostics++
		pterm.Warning.Println(d.String())
	}))
	viewer, err := mdview.New(os.DirFS(*root), doc,
		mdview.WithParser(goldmarkadapter.New(conf.ParserOptions()...)),
		mdview.WithWelcomePage(conf.View.WelcomePage),
		mdview.WithRenderOptions(renderOptions...),
	)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	name := ""
	if *view != "" {
		if name = mdview.ResolvePath(*view); name == "" {
			pterm.Warning.Printf("refusing page name %q, rendering welcome page\n", *view)
		}
	}
	if err := viewer.Load(container, name); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(4)
	}
	if *dump {
		fmt.Fprintln(os.Stderr, domdbg.Tree(container))
	}
	out := bufio.NewWriter(os.Stdout)
	fmt.Fprintln(out, "<!DOCTYPE html>")
	if err := dom.Render(out, page); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(5)
	}
	fmt.Fprintln(out)
	if err := out.Flush(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(5)
	}
	pterm.Success.Printf("rendered page with %d diagnostic(s)\n", diagnostics)
}

// We use pterm for moderately fancy output. Standard output carries the
// HTML page, messages go to stderr.
func initDisplay() {
	pterm.SetDefaultOutput(os.Stderr)
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// overrideConfig lets command line flags take precedence over the
// configuration file.
func overrideConfig(conf *config.Config, containerID, rawHTML, image, tlevel string) {
	if containerID != "" {
		conf.View.ContainerID = containerID
	}
	if rawHTML != "" {
		conf.Render.RawHTML = rawHTML
	}
	if image != "" {
		conf.Render.Image = image
	}
	if tlevel != "" {
		conf.Trace.Level = tlevel
	}
}

// setupPage creates the skeleton of the output page and returns its root
// element and the container for the Markdown content.
func setupPage(conf *config.Config) (*dom.Document, w3cdom.Node, w3cdom.Node, error) {
	policy, err := conf.SanitizePolicy()
	if err != nil {
		return nil, nil, nil, err
	}
	doc := dom.NewDocument(policy)
	page := doc.CreateElement("html")
	head := page.AppendChild(doc.CreateElement("head"))
	meta := head.AppendChild(doc.CreateElement("meta"))
	meta.SetAttribute("charset", "utf-8")
	title := head.AppendChild(doc.CreateElement("title"))
	title.AppendChild(doc.CreateTextNode("mdtodom"))
	body := page.AppendChild(doc.CreateElement("body"))
	container := body.AppendChild(doc.CreateElement("div"))
	container.SetAttribute("id", conf.View.ContainerID)
	return doc, page, container, nil
}
