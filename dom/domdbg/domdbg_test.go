package domdbg

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/mdtodom/dom"
	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func buildDOM() w3cdom.Node {
	doc := dom.NewDocument(nil)
	root := doc.CreateDocumentFragment()
	h := doc.CreateElement("h1")
	h.SetAttribute("id", "title")
	h.AppendChild(doc.CreateTextNode("Title"))
	root.AppendChild(h)
	p := doc.CreateElement("p")
	p.AppendChild(doc.CreateTextNode("Some longer paragraph text"))
	root.AppendChild(p)
	return root
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtodom.dom")
	defer teardown()
	//
	var buf bytes.Buffer
	if err := ToGraphViz(buildDOM(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph g {") {
		t.Errorf("expected DOT output, have %q", out[:20])
	}
	for _, s := range []string{"node00001 -> node00002", "node00004 -> node00005", `h1 id=\"title\"`} {
		if !strings.Contains(out, s) {
			t.Errorf("expected DOT output to contain %q", s)
		}
	}
	if strings.Count(out, "[weight=1]") != 4 {
		t.Errorf("expected 4 edges, have %d", strings.Count(out, "[weight=1]"))
	}
}

func TestTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtodom.dom")
	defer teardown()
	//
	out := Tree(buildDOM())
	t.Logf("tree =\n%s", out)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines of output, have %d", len(lines))
	}
	if lines[0] != "#document-fragment" {
		t.Errorf("expected root line to be #document-fragment, is %q", lines[0])
	}
	if !strings.Contains(lines[1], `h1 id="title"`) {
		t.Errorf("expected h1 with id in line 2, is %q", lines[1])
	}
	if !strings.Contains(lines[2], `#text "Title"`) {
		t.Errorf("expected heading text in line 3, is %q", lines[2])
	}
	if Tree(nil) != "<nil>" {
		t.Errorf("expected <nil> for nil tree")
	}
}

func TestShortTextCutsRunes(t *testing.T) {
	doc := dom.NewDocument(nil)
	s := shortText(doc.CreateTextNode("äöüäöüäöüäöü"))
	if !utf8.ValidString(s) {
		t.Errorf("expected label to be valid UTF-8, is %q", s)
	}
	if !strings.Contains(s, "äöüäöüäöüä...") {
		t.Errorf("expected label to be cut after 10 characters, is %q", s)
	}
}
