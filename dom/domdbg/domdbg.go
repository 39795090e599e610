/*
Package domdbg implements helpers to debug a DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/npillmayer/mdtodom/dom/w3cdom"
	tp "github.com/xlab/treeprint"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM and a Writer. Element nodes are labelled with their tag name
// and attributes, text nodes with a shortened version of their text.
func ToGraphViz(doc w3cdom.Node, w io.Writer) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"label":       elementLabel,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	counter := 0
	if _, err = nodes(doc, w, &counter, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

type node struct {
	N    w3cdom.Node
	Name string
}

// nodes writes n and its subtree. Node wrappers are not unique, therefore
// nodes are named by their sequence number in the walk.
func nodes(n w3cdom.Node, w io.Writer, counter *int, gparams *graphParamsType) (string, error) {
	*counter++
	name := fmt.Sprintf("node%05d", *counter)
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		return name, err
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		chname, err := nodes(ch, w, counter, gparams)
		if err != nil {
			return name, err
		}
		e := edge{node{n, name}, node{ch, chname}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return name, err
		}
	}
	return name, nil
}

type edge struct {
	N1, N2 node
}

func shortText(n w3cdom.Node) string {
	h := []rune(n.NodeValue())
	s := "\"\\\""
	if len(h) > 10 {
		s += string(h[:10]) + "...\\\"\""
	} else {
		s += string(h) + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

func elementLabel(n w3cdom.Node) string {
	return fmt.Sprintf("%q", describe(n))
}

// --- Tree print ------------------------------------------------------------

// Tree returns an indented tree view of a DOM (sub-)tree, suitable for
// test logs and debugging output.
func Tree(n w3cdom.Node) string {
	if n == nil {
		return "<nil>"
	}
	printer := tp.NewWithRoot(describe(n))
	treeChildren(printer, n)
	return strings.TrimRight(printer.String(), "\n")
}

func treeChildren(printer tp.Tree, n w3cdom.Node) {
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if ch.HasChildNodes() {
			treeChildren(printer.AddBranch(describe(ch)), ch)
		} else {
			printer.AddNode(describe(ch))
		}
	}
}

func describe(n w3cdom.Node) string {
	switch n.NodeName() {
	case "#text", "#comment":
		return fmt.Sprintf("%s %q", n.NodeName(), n.NodeValue())
	}
	attrs := n.Attributes()
	if attrs.Length() == 0 {
		return n.NodeName()
	}
	kv := make([]string, attrs.Length())
	for i := 0; i < attrs.Length(); i++ {
		a := attrs.Item(i)
		kv[i] = fmt.Sprintf("%s=%q", a.Key(), a.Value())
	}
	sort.Strings(kv)
	return n.NodeName() + " " + strings.Join(kv, " ")
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.NodeName "#text" }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
