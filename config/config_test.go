package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/mdtodom/dom"
	"github.com/npillmayer/mdtodom/mdast"
	"github.com/npillmayer/mdtodom/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.Validate())
	assert.Equal(t, "inert", conf.Render.RawHTML)
	assert.Equal(t, "img", conf.Render.Image)
	assert.True(t, conf.Render.HeadingIDs)
	assert.Equal(t, "welcome.md", conf.View.WelcomePage)
	assert.Len(t, conf.ParserOptions(), 1)
}

func TestParseEmpty(t *testing.T) {
	conf, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestParse(t *testing.T) {
	conf, err := Parse([]byte(`
render:
  raw-html: Escape
  image: object
  heading-ids: false
parser:
  gfm: false
view:
  welcome-page: index.md
trace:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "Escape", conf.Render.RawHTML)
	assert.False(t, conf.Render.HeadingIDs)
	assert.Equal(t, "index.md", conf.View.WelcomePage)
	assert.Equal(t, "mdview", conf.View.ContainerID, "expected default to survive")
	assert.Equal(t, "Debug", conf.TraceLevel())
	assert.Empty(t, conf.ParserOptions())
}

func TestParseInvalid(t *testing.T) {
	for _, data := range []string{
		"render:\n  raw-html: execute\n",
		"render:\n  image: picture\n",
		"view:\n  welcome-page: \"\"\n",
		"trace:\n  level: Loud\n",
		"sanitize:\n  dropped-elements: \"div[\"\n",
	} {
		_, err := Parse([]byte(data))
		assert.True(t, errors.Is(err, ErrInvalid), "expected %q to be invalid, error is %v", data, err)
	}
	_, err := Parse([]byte("renderer:\n  image: img\n"))
	assert.Error(t, err, "expected unknown key to be rejected")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdtodom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  code-info-class: true\n"), 0o644))
	conf, err := Load(path)
	require.NoError(t, err)
	assert.True(t, conf.Render.CodeInfoClass)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRenderOptions(t *testing.T) {
	conf, err := Parse([]byte("render:\n  raw-html: escape\n  heading-ids: false\n  code-info-class: true\n"))
	require.NoError(t, err)
	options, err := conf.RenderOptions()
	require.NoError(t, err)
	tree := mdast.NewDocument().Append(
		mdast.NewHeading(1).Append(mdast.NewText("Title")),
		mdast.NewHTMLBlock("<i>x</i>"),
		mdast.NewCodeBlock("sh", "ls\n"),
	)
	root, err := render.Render(dom.NewDocument(nil), tree, nil, options...)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>&lt;i&gt;x&lt;/i&gt;<pre><code class=\"language-sh\">ls\n</code></pre>",
		dom.InnerHTML(root))
}

func TestSanitizePolicy(t *testing.T) {
	conf, err := Parse([]byte("sanitize:\n  dropped-elements: \"script, i\"\n"))
	require.NoError(t, err)
	policy, err := conf.SanitizePolicy()
	require.NoError(t, err)
	doc := dom.NewDocument(policy)
	div := doc.CreateElement("div")
	require.NoError(t, div.InsertHTML("<i>x</i><b>y</b>"))
	assert.Equal(t, "<div><b>y</b></div>", dom.OuterHTML(div))
}
