package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleHTML = `<h1>Hello World</h1><p>Some <strong>bold</strong> text</p><ul><li>one</li><li>two</li></ul>`

func TestPlainText_HTMLBlocksBecomeLines(t *testing.T) {
	assert.Equal(t, "Hello World\nSome bold text\none\ntwo\n", PlainText(sampleHTML))
}

func TestPlainText_DecodesEntities(t *testing.T) {
	assert.Equal(t, "Fish & Chips\n", PlainText("<p>Fish &amp; Chips</p>"))
}

func TestPlainText_PlainInputUnchanged(t *testing.T) {
	assert.Equal(t, "just text", PlainText("just text"))
}

func TestMarkdown_HTML(t *testing.T) {
	assert.Equal(t, "# Hello World\n\nSome **bold** text\n\n- one\n- two\n", Markdown(sampleHTML))
}

func TestMarkdown_LinksAndEmphasis(t *testing.T) {
	got := Markdown(`<p><em>see</em> <a href="https://example.com">docs</a></p>`)
	assert.Equal(t, "_see_ [docs](https://example.com)\n", got)
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"Hello World", "Some bold text", "one", "two"}, Lines(sampleHTML))
	assert.Nil(t, Lines(""))
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Hello World", DeriveTitle(sampleHTML))
	assert.Equal(t, DefaultTitle, DeriveTitle(""))
	assert.Equal(t, DefaultTitle, DeriveTitle("<p> </p>"))

	long := "<p></p><p>  A very long first line that keeps going past the forty rune limit</p>"
	assert.Equal(t, "A very long first line that keeps going", DeriveTitle(long))
}

func TestDeriveTitle_Lexical(t *testing.T) {
	content := `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"Lexical title"}]}]}}`
	assert.Equal(t, "Lexical title", DeriveTitle(content))
}
