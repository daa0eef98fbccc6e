package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Mode int

const (
	// ModeMarkdown keeps headings, emphasis, lists and links as Markdown.
	ModeMarkdown Mode = iota
	// ModePlain emits text only, one block per line.
	ModePlain
)

// Parser renders serialized Lexical state.
type Parser struct {
	mode Mode
}

func NewParser(mode Mode) *Parser {
	return &Parser{mode: mode}
}

// IsLexical reports whether content looks like serialized Lexical state.
func IsLexical(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), `{"root":`)
}

func (p *Parser) Parse(jsonContent string) (string, error) {
	var doc Document
	if err := json.Unmarshal([]byte(jsonContent), &doc); err != nil {
		return "", fmt.Errorf("failed to parse lexical json: %w", err)
	}

	var sb strings.Builder
	for _, block := range doc.Root.Children {
		p.walkBlock(block, &sb, 0)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

// ParseContent renders content if it is Lexical state and returns it
// unchanged otherwise.
func ParseContent(content string, mode Mode) string {
	if !IsLexical(content) {
		return content
	}
	out, err := NewParser(mode).Parse(strings.TrimSpace(content))
	if err != nil {
		return content
	}
	return out
}

func (p *Parser) markdown() bool {
	return p.mode == ModeMarkdown
}

func (p *Parser) walkBlock(node Node, sb *strings.Builder, depth int) {
	switch node.Type {
	case "paragraph":
		p.walkInline(node.Children, sb)
		p.endBlock(sb)

	case "heading":
		if p.markdown() {
			level := 1
			if len(node.Tag) == 2 && node.Tag[0] == 'h' {
				level = int(node.Tag[1] - '0')
			}
			sb.WriteString(strings.Repeat("#", level) + " ")
		}
		p.walkInline(node.Children, sb)
		p.endBlock(sb)

	case "quote":
		if p.markdown() {
			sb.WriteString("> ")
		}
		p.walkInline(node.Children, sb)
		p.endBlock(sb)

	case "code":
		if p.markdown() {
			sb.WriteString("```" + node.Language + "\n")
		}
		p.walkInline(node.Children, sb)
		if p.markdown() {
			sb.WriteString("\n```")
		}
		p.endBlock(sb)

	case "list":
		p.handleList(node, sb, depth)
		if depth == 0 && p.markdown() {
			sb.WriteString("\n")
		}

	case "horizontalrule":
		if p.markdown() {
			sb.WriteString("---")
			p.endBlock(sb)
		}

	default:
		if len(node.Children) > 0 {
			p.walkInline(node.Children, sb)
			p.endBlock(sb)
		}
	}
}

func (p *Parser) endBlock(sb *strings.Builder) {
	if p.markdown() {
		sb.WriteString("\n\n")
		return
	}
	sb.WriteString("\n")
}

func (p *Parser) walkInline(nodes []Node, sb *strings.Builder) {
	for _, node := range nodes {
		switch node.Type {
		case "text", "code-highlight":
			p.handleText(node, sb)
		case "linebreak":
			sb.WriteString("\n")
		case "link", "autolink":
			if p.markdown() {
				sb.WriteString("[")
				p.walkInline(node.Children, sb)
				sb.WriteString(fmt.Sprintf("](%s)", node.URL))
			} else {
				p.walkInline(node.Children, sb)
			}
		default:
			p.walkInline(node.Children, sb)
		}
	}
}

func (p *Parser) handleText(node Node, sb *strings.Builder) {
	if !p.markdown() {
		sb.WriteString(node.Text)
		return
	}

	format := 0
	switch f := node.Format.(type) {
	case float64:
		format = int(f)
	case int:
		format = f
	}

	var open, close []string
	wrap := func(bit int, marker string) {
		if format&bit != 0 {
			open = append(open, marker)
			close = append([]string{marker}, close...)
		}
	}
	wrap(FormatCode, "`")
	wrap(FormatBold, "**")
	wrap(FormatItalic, "_")
	wrap(FormatStrikethrough, "~~")

	sb.WriteString(strings.Join(open, ""))
	sb.WriteString(node.Text)
	sb.WriteString(strings.Join(close, ""))
}

func (p *Parser) handleList(node Node, sb *strings.Builder, depth int) {
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, item := range node.Children {
		if item.Type != "listitem" {
			continue
		}

		if p.markdown() {
			sb.WriteString(strings.Repeat("  ", depth))
			switch node.ListType {
			case "number":
				sb.WriteString(fmt.Sprintf("%d. ", index))
				index++
			case "check":
				if item.Checked {
					sb.WriteString("- [x] ")
				} else {
					sb.WriteString("- [ ] ")
				}
			default:
				sb.WriteString("- ")
			}
		}

		var nested []Node
		var inline []Node
		for _, child := range item.Children {
			if child.Type == "list" {
				nested = append(nested, child)
			} else {
				inline = append(inline, child)
			}
		}
		p.walkInline(inline, sb)
		sb.WriteString("\n")
		for _, n := range nested {
			p.handleList(n, sb, depth+1)
		}
	}
}
