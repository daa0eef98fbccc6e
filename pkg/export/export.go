// Package export renders document content to PDF, DOCX and Markdown. Output
// depends only on the title and content, so the same input always yields the
// same bytes.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ai-writing-be/pkg/richtext"
)

type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "md"

	DefaultFileTitle = "Untitled"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

var whitespaceRun = regexp.MustCompile(`\s+`)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatDOCX, FormatMarkdown:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// FileName builds "<title>.<ext>" with the title lowercased and whitespace
// runs collapsed to underscores.
func FileName(title string, f Format) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultFileTitle
	}
	return strings.ToLower(whitespaceRun.ReplaceAllString(title, "_")) + "." + string(f)
}

// Render dispatches to the renderer for f.
func Render(f Format, title, content string) ([]byte, error) {
	switch f {
	case FormatPDF:
		return PDF(title, content)
	case FormatDOCX:
		return DOCX(title, content)
	case FormatMarkdown:
		return []byte(Markdown(title, content)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Markdown returns the title as a level-one heading followed by the content
// converted to Markdown.
func Markdown(title, content string) string {
	var buf bytes.Buffer
	if t := strings.TrimSpace(title); t != "" {
		buf.WriteString("# " + t + "\n\n")
	}
	buf.WriteString(richtext.Markdown(content))
	return buf.String()
}
