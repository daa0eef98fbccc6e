// Package richtext converts stored document content (HTML from the editor,
// serialized Lexical state, or plain text) to plain text and Markdown.
package richtext

import (
	"strings"
	"unicode/utf8"

	"ai-writing-be/pkg/lexical"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultTitle  = "Untitled Draft"
	TitleMaxRunes = 40
)

// PlainText returns the text of content with one line per block.
func PlainText(content string) string {
	if lexical.IsLexical(content) {
		return lexical.ParseContent(content, lexical.ModePlain)
	}
	if !looksLikeHTML(content) {
		return content
	}

	root, err := parseFragment(content)
	if err != nil {
		return content
	}
	w := &writer{markdown: false}
	w.walkChildren(root)
	return w.String()
}

// Markdown converts content to Markdown.
func Markdown(content string) string {
	if lexical.IsLexical(content) {
		return lexical.ParseContent(content, lexical.ModeMarkdown)
	}
	if !looksLikeHTML(content) {
		return content
	}

	root, err := parseFragment(content)
	if err != nil {
		return content
	}
	w := &writer{markdown: true}
	w.walkChildren(root)
	return w.String()
}

// Lines splits the plain text of content into lines.
func Lines(content string) []string {
	text := strings.TrimRight(PlainText(content), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// DeriveTitle is the first non-empty line of the plain text, cut to 40 runes.
func DeriveTitle(content string) string {
	for _, line := range strings.Split(PlainText(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > TitleMaxRunes {
			line = strings.TrimSpace(string([]rune(line)[:TitleMaxRunes]))
		}
		return line
	}
	return DefaultTitle
}

func looksLikeHTML(content string) bool {
	return strings.Contains(content, "<") || strings.Contains(content, "&")
}

func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

type writer struct {
	sb       strings.Builder
	markdown bool
	listKind []atom.Atom
	listIdx  []int
}

func (w *writer) String() string {
	out := strings.TrimRight(w.sb.String(), "\n ")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (w *writer) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *writer) endBlock() {
	s := w.sb.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if w.markdown {
		if strings.HasSuffix(s, "\n") {
			w.sb.WriteString("\n")
		} else {
			w.sb.WriteString("\n\n")
		}
		return
	}
	if !strings.HasSuffix(s, "\n") {
		w.sb.WriteString("\n")
	}
}

func (w *writer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if strings.TrimSpace(text) == "" && strings.Contains(text, "\n") {
			return
		}
		w.sb.WriteString(text)
		return
	case html.ElementNode:
	default:
		w.walkChildren(n)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style:
		return

	case atom.Br:
		w.sb.WriteString("\n")

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.endBlock()
		if w.markdown {
			level := int(n.Data[1] - '0')
			w.sb.WriteString(strings.Repeat("#", level) + " ")
		}
		w.walkChildren(n)
		w.endBlock()

	case atom.P, atom.Div, atom.Section, atom.Article:
		w.endBlock()
		w.walkChildren(n)
		w.endBlock()

	case atom.Blockquote:
		w.endBlock()
		if w.markdown {
			w.sb.WriteString("> ")
		}
		w.walkChildren(n)
		w.endBlock()

	case atom.Pre:
		w.endBlock()
		if w.markdown {
			w.sb.WriteString("```\n")
			w.sb.WriteString(textContent(n))
			w.sb.WriteString("\n```")
		} else {
			w.sb.WriteString(textContent(n))
		}
		w.endBlock()

	case atom.Ul, atom.Ol:
		w.endBlock()
		w.listKind = append(w.listKind, n.DataAtom)
		w.listIdx = append(w.listIdx, 0)
		w.walkChildren(n)
		w.listKind = w.listKind[:len(w.listKind)-1]
		w.listIdx = w.listIdx[:len(w.listIdx)-1]
		if len(w.listKind) == 0 {
			w.endBlock()
		}

	case atom.Li:
		if s := w.sb.String(); s != "" && !strings.HasSuffix(s, "\n") {
			w.sb.WriteString("\n")
		}
		if w.markdown && len(w.listKind) > 0 {
			depth := len(w.listKind) - 1
			w.sb.WriteString(strings.Repeat("  ", depth))
			if w.listKind[depth] == atom.Ol {
				w.listIdx[depth]++
				w.sb.WriteString(itoa(w.listIdx[depth]) + ". ")
			} else {
				w.sb.WriteString("- ")
			}
		}
		w.walkChildren(n)
		if s := w.sb.String(); !strings.HasSuffix(s, "\n") {
			w.sb.WriteString("\n")
		}

	case atom.Strong, atom.B:
		w.wrap(n, "**")
	case atom.Em, atom.I:
		w.wrap(n, "_")
	case atom.S, atom.Del, atom.Strike:
		w.wrap(n, "~~")
	case atom.Code:
		w.wrap(n, "`")

	case atom.A:
		if !w.markdown {
			w.walkChildren(n)
			return
		}
		w.sb.WriteString("[")
		w.walkChildren(n)
		w.sb.WriteString("](" + attr(n, "href") + ")")

	case atom.Hr:
		if w.markdown {
			w.endBlock()
			w.sb.WriteString("---")
			w.endBlock()
		}

	default:
		w.walkChildren(n)
	}
}

func (w *writer) wrap(n *html.Node, marker string) {
	if w.markdown {
		w.sb.WriteString(marker)
	}
	w.walkChildren(n)
	if w.markdown {
		w.sb.WriteString(marker)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Trim(sb.String(), "\n")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}
