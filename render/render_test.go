package render

import (
	"errors"
	"testing"

	"github.com/npillmayer/mdtodom/dom"
	"github.com/npillmayer/mdtodom/dom/domdbg"
	"github.com/npillmayer/mdtodom/dom/w3cdom"
	"github.com/npillmayer/mdtodom/mdast"
	"github.com/npillmayer/mdtodom/traverse"
	mdtree "github.com/npillmayer/mdtodom/tree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type RenderTestEnviron struct {
	suite.Suite
	doc   *dom.Document
	diags []Diagnostic
}

// listen for 'go test' command --> run test methods
func TestRenderFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtodom.render")
	defer teardown()
	suite.Run(t, new(RenderTestEnviron))
}

// run once, before test suite methods
func (env *RenderTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("mdtodom.render").SetTraceLevel(tracing.LevelError)
	env.doc = dom.NewDocument(nil)
}

// run before every test method
func (env *RenderTestEnviron) SetupTest() {
	env.diags = nil
}

func (env *RenderTestEnviron) collect(d Diagnostic) {
	env.diags = append(env.diags, d)
}

// render renders tree into a fresh fragment and returns its inner HTML.
func (env *RenderTestEnviron) render(tree *mdast.Node, options ...Option) (w3cdom.Node, string) {
	options = append(options, WithDiagnostics(env.collect))
	root, err := Render(env.doc, tree, nil, options...)
	env.Require().NoError(err)
	env.Require().NotNil(root)
	env.T().Logf("DOM =\n%s", domdbg.Tree(root))
	return root, dom.InnerHTML(root)
}

// --- Tests -----------------------------------------------------------------

func (env *RenderTestEnviron) TestHeading() {
	tree := mdast.NewDocument().Append(
		mdast.NewHeading(1).Append(mdast.NewText("Hello World")),
	)
	_, out := env.render(tree)
	env.Equal(`<h1 id="hello-world">Hello World</h1>`, out)
}

func (env *RenderTestEnviron) TestHeadingIDFromNestedText() {
	tree := mdast.NewDocument().Append(
		mdast.NewHeading(2).Append(
			mdast.NewText("The  "),
			mdast.NewEmph().Append(mdast.NewText("Big\tOne")),
		),
		mdast.NewHeading(2).Append(mdast.NewText("the big one")),
	)
	_, out := env.render(tree)
	env.Equal("<h2 id=\"the-big-one\">The  <em>Big\tOne</em></h2><h2 id=\"the-big-one\">the big one</h2>", out)
}

func (env *RenderTestEnviron) TestHeadingIDsOff() {
	tree := mdast.NewDocument().Append(
		mdast.NewHeading(3).Append(mdast.NewText("Plain")),
	)
	_, out := env.render(tree, WithHeadingIDs(false))
	env.Equal(`<h3>Plain</h3>`, out)
}

func (env *RenderTestEnviron) TestParagraphAndInlines() {
	tree := mdast.NewDocument().Append(
		mdast.NewParagraph().Append(
			mdast.NewText("a "),
			mdast.NewStrong().Append(mdast.NewText("b")),
			mdast.NewSoftBreak(),
			mdast.NewCode("x<y"),
			mdast.NewLineBreak(),
			mdast.NewLink("https://example.org", "Ex").Append(mdast.NewText("link")),
			mdast.NewLink("/local", "").Append(mdast.NewText("local")),
		),
		mdast.NewThematicBreak(),
	)
	_, out := env.render(tree)
	env.Equal(`<p>a <strong>b</strong>
<code>x&lt;y</code><br/><a href="https://example.org" title="Ex">link</a><a href="/local">local</a></p><hr/>`, out)
}

func (env *RenderTestEnviron) TestImage() {
	tree := mdast.NewDocument().Append(
		mdast.NewParagraph().Append(
			mdast.NewImage("pic.png", "").Append(
				mdast.NewText("a "),
				mdast.NewEmph().Append(mdast.NewText("cat")),
			),
		),
	)
	root, _ := env.render(tree)
	img := root.FirstChild().FirstChild()
	env.Require().NotNil(img)
	env.Equal("img", img.NodeName())
	src, _ := img.GetAttribute("src")
	env.Equal("pic.png", src)
	alt, ok := img.GetAttribute("alt")
	env.True(ok)
	env.Equal("a cat", alt)
	_, hasTitle := img.GetAttribute("title")
	env.False(hasTitle, "expected image without title attribute")
	env.False(img.HasChildNodes(), "expected image to have no children")
}

func (env *RenderTestEnviron) TestImageWithoutAlt() {
	tree := mdast.NewDocument().Append(
		mdast.NewParagraph().Append(mdast.NewImage("x.svg", "An X")),
	)
	root, _ := env.render(tree, WithImageElement(ImageAsObject))
	obj := root.FirstChild().FirstChild()
	env.Require().NotNil(obj)
	env.Equal("object", obj.NodeName())
	data, _ := obj.GetAttribute("data")
	env.Equal("x.svg", data)
	title, _ := obj.GetAttribute("title")
	env.Equal("An X", title)
	alt, ok := obj.GetAttribute("alt")
	env.True(ok, "expected alt attribute to be present even if empty")
	env.Equal("", alt)
}

func (env *RenderTestEnviron) TestLists() {
	tree := mdast.NewDocument().Append(
		mdast.NewList(mdast.Ordered, 3, true).Append(
			mdast.NewItem().Append(mdast.NewText("three")),
		),
		mdast.NewList(mdast.Ordered, 1, true).Append(
			mdast.NewItem().Append(mdast.NewText("one")),
		),
		mdast.NewList(mdast.Bullet, 0, false).Append(
			mdast.NewItem().Append(mdast.NewParagraph().Append(mdast.NewText("dot"))),
		),
	)
	_, out := env.render(tree)
	env.Equal(`<ol start="3"><li>three</li></ol><ol><li>one</li></ol><ul><li><p>dot</p></li></ul>`, out)
}

func (env *RenderTestEnviron) TestCodeBlock() {
	tree := mdast.NewDocument().Append(
		mdast.NewCodeBlock("go {.numbered}", "if a < b {\n}\n"),
		mdast.NewBlockQuote().Append(mdast.NewCodeBlock("", "plain\n")),
	)
	_, out := env.render(tree)
	env.Equal("<pre><code>if a &lt; b {\n}\n</code></pre><blockquote><pre><code>plain\n</code></pre></blockquote>", out)
	_, out = env.render(tree, WithCodeInfoClass(true))
	env.Equal("<pre><code class=\"language-go\">if a &lt; b {\n}\n</code></pre><blockquote><pre><code>plain\n</code></pre></blockquote>", out)
}

func (env *RenderTestEnviron) TestRawHTMLIsInert() {
	tree := mdast.NewDocument().Append(
		mdast.NewHTMLBlock(`<div class="note" onclick="steal()">Note<script>alert(1)</script></div>`),
		mdast.NewParagraph().Append(
			mdast.NewText("x "),
			mdast.NewHTMLInline(`<script>alert(2)</script>`),
		),
	)
	_, out := env.render(tree)
	env.Equal(`<div class="note">Note</div><p>x </p>`, out)
}

func (env *RenderTestEnviron) TestRawHTMLEscaped() {
	tree := mdast.NewDocument().Append(
		mdast.NewHTMLBlock(`<script>alert(1)</script>`),
	)
	root, out := env.render(tree, WithRawHTML(RawHTMLEscape))
	env.Equal(`&lt;script&gt;alert(1)&lt;/script&gt;`, out)
	env.True(dom.NodeIsText(root.FirstChild()))
}

func (env *RenderTestEnviron) TestRawHTMLOmitted() {
	tree := mdast.NewDocument().Append(
		mdast.NewHTMLBlock(`<b>bold</b>`),
		mdast.NewParagraph(),
	)
	_, out := env.render(tree, WithRawHTML(RawHTMLOmit))
	env.Equal(`<p></p>`, out)
	env.Require().Len(env.diags, 1)
	env.Equal(DiagSkipped, env.diags[0].Code)
}

func (env *RenderTestEnviron) TestUnknownNodes() {
	tree := mdast.NewDocument().Append(
		mdast.NewParagraph().Append(
			mdast.NewOther("Strikethrough", true, "").Append(mdast.NewText("gone")),
			mdast.NewOther("Footnote", false, "[^1]"),
			mdast.NewText(" after"),
		),
		mdast.NewDocument().Append(mdast.NewText("nested")),
	)
	_, out := env.render(tree)
	env.Equal(`<p><span>gone</span> after</p><span>nested</span>`, out)
	env.Require().Len(env.diags, 3)
	env.Equal(DiagFallback, env.diags[0].Code)
	env.Equal("Strikethrough", env.diags[0].NodeType)
	env.Equal(DiagSkipped, env.diags[1].Code)
	env.Equal(DiagFallback, env.diags[2].Code)
}

func (env *RenderTestEnviron) TestEmptyDocument() {
	root, out := env.render(mdast.NewDocument())
	env.Equal("", out)
	env.Equal("#document-fragment", root.NodeName())
}

func (env *RenderTestEnviron) TestExistingChildrenUntouched() {
	target := env.doc.CreateElement("div")
	target.SetAttribute("id", "container")
	target.AppendChild(env.doc.CreateTextNode("before"))
	tree := mdast.NewDocument().Append(
		mdast.NewParagraph().Append(mdast.NewText("new")),
	)
	root, err := Render(env.doc, tree, target)
	env.Require().NoError(err)
	env.Equal(target, root)
	env.Equal(`<div id="container">before<p>new</p></div>`, dom.OuterHTML(root))
}

func (env *RenderTestEnviron) TestRendersAreIndependent() {
	r, err := New(env.doc)
	env.Require().NoError(err)
	tree := mdast.NewDocument().Append(
		mdast.NewHeading(1).Append(mdast.NewText("Once")),
	)
	root1, err := r.Render(tree, nil)
	env.Require().NoError(err)
	root2, err := r.Render(tree, nil)
	env.Require().NoError(err)
	env.Equal(dom.InnerHTML(root1), dom.InnerHTML(root2))
	env.NotSame(root1.FirstChild().(*dom.W3CNode).HTMLNode(), root2.FirstChild().(*dom.W3CNode).HTMLNode())
	root2.FirstChild().SetAttribute("class", "changed")
	env.Equal(`<h1 id="once">Once</h1>`, dom.InnerHTML(root1))
}

func (env *RenderTestEnviron) TestErrors() {
	_, err := New(nil)
	env.ErrorIs(err, ErrNoDocument)
	_, err = Render(env.doc, nil, nil)
	env.ErrorIs(err, ErrNoSourceTree)
	_, err = Render(env.doc, mdast.NewParagraph(), nil)
	env.ErrorIs(err, ErrNotDocument)
	_, err = New(env.doc, WithRawHTML(RawHTML(42)))
	env.Error(err)
	_, err = New(env.doc, WithImageElement(ImageElement(-1)))
	env.Error(err)
}

func (env *RenderTestEnviron) TestParseModes() {
	m, err := ParseRawHTML("Escape")
	env.NoError(err)
	env.Equal(RawHTMLEscape, m)
	_, err = ParseRawHTML("execute")
	env.Error(err)
	e, err := ParseImageElement("object")
	env.NoError(err)
	env.Equal(ImageAsObject, e)
	env.Equal("img", ImageAsImg.String())
}

// --- Unbalanced event streams ----------------------------------------------

// scriptedWalker replays a fixed list of steps.
type scriptedWalker struct {
	steps []*mdast.Step
	err   error
}

func (w *scriptedWalker) Next() (*mdast.Step, error) {
	if len(w.steps) == 0 {
		return nil, w.err
	}
	s := w.steps[0]
	w.steps = w.steps[1:]
	return s, nil
}

func (env *RenderTestEnviron) renderEvents(steps []*mdast.Step, err error) (w3cdom.Node, error) {
	r, e := New(env.doc, WithDiagnostics(env.collect))
	env.Require().NoError(e)
	return r.renderEvents(traverse.Over(&scriptedWalker{steps: steps, err: err}), nil)
}

func (env *RenderTestEnviron) TestUnbalancedOpenContainer() {
	doc, p := mdast.NewDocument(), mdast.NewParagraph()
	root, err := env.renderEvents([]*mdast.Step{
		{Node: doc, Entering: true},
		{Node: p, Entering: true},
		{Node: mdast.NewText("open"), Entering: true},
	}, nil)
	env.ErrorIs(err, ErrUnbalanced)
	env.Require().NotNil(root)
	env.Equal(`<p>open</p>`, dom.InnerHTML(root))
	env.Require().NotEmpty(env.diags)
	env.Equal(DiagUnbalanced, env.diags[len(env.diags)-1].Code)
}

func (env *RenderTestEnviron) TestUnbalancedExtraExit() {
	doc, p := mdast.NewDocument(), mdast.NewParagraph()
	_, err := env.renderEvents([]*mdast.Step{
		{Node: doc, Entering: true},
		{Node: p, Entering: false},
	}, nil)
	env.ErrorIs(err, ErrUnbalanced)
}

func (env *RenderTestEnviron) TestTraversalFailure() {
	doc := mdast.NewDocument()
	broken := errors.New("walker broke")
	_, err := env.renderEvents([]*mdast.Step{
		{Node: doc, Entering: true},
	}, broken)
	env.ErrorIs(err, ErrTraversal)
	env.ErrorIs(err, broken, "expected walker error to be kept in the chain")
}

// detachingWalker detaches a node from the tree after it has seen it.
type detachingWalker struct {
	*mdast.Walker
	at, detach *mdast.Node
}

func (w *detachingWalker) Next() (*mdast.Step, error) {
	step, err := w.Walker.Next()
	if err == nil && step != nil && step.Node == w.at {
		w.detach.Detach()
	}
	return step, err
}

func (env *RenderTestEnviron) TestTreeModifiedDuringTraversal() {
	x := mdast.NewText("x")
	p := mdast.NewParagraph().Append(x)
	tree := mdast.NewDocument().Append(p)
	r, err := New(env.doc)
	env.Require().NoError(err)
	_, err = r.renderEvents(traverse.Over(&detachingWalker{Walker: tree.Walker(), at: x, detach: p}), nil)
	env.ErrorIs(err, ErrTraversal)
	env.ErrorIs(err, mdtree.ErrDetachedNode)
}

func (env *RenderTestEnviron) TestMismatchedExit() {
	doc, p, img := mdast.NewDocument(), mdast.NewParagraph(), mdast.NewImage("x.png", "")
	root, err := env.renderEvents([]*mdast.Step{
		{Node: doc, Entering: true},
		{Node: p, Entering: true},
		{Node: mdast.NewText("keep me"), Entering: true},
		{Node: img, Entering: false},
		{Node: doc, Entering: false},
	}, nil)
	env.ErrorIs(err, ErrUnbalanced)
	env.Equal(`<p>keep me</p>`, dom.InnerHTML(root))
	env.Require().Len(env.diags, 1)
	env.Equal(DiagUnbalanced, env.diags[0].Code)
	env.Equal("image", env.diags[0].NodeType)
}

func (env *RenderTestEnviron) TestSwappedExits() {
	doc, q, p := mdast.NewDocument(), mdast.NewBlockQuote(), mdast.NewParagraph()
	_, err := env.renderEvents([]*mdast.Step{
		{Node: doc, Entering: true},
		{Node: q, Entering: true},
		{Node: p, Entering: true},
		{Node: q, Entering: false},
		{Node: p, Entering: false},
		{Node: doc, Entering: false},
	}, nil)
	env.ErrorIs(err, ErrUnbalanced)
}
