package lexical

// Document is the serialized editor state: {"root": {...}}.
type Document struct {
	Root Node `json:"root"`
}

// Node is any node of the editor tree. Fields unused by a node type stay zero.
type Node struct {
	Type     string `json:"type"`
	Version  int    `json:"version"`
	Children []Node `json:"children,omitempty"`

	// text
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // bitmask on text, alignment string on blocks
	Style  string      `json:"style,omitempty"`

	// heading, list
	Tag string `json:"tag,omitempty"` // h1..h6, ul, ol

	// code block
	Language string `json:"language,omitempty"`

	// link
	URL string `json:"url,omitempty"`

	// list, listitem
	ListType string `json:"listType,omitempty"` // check, bullet, number
	Start    int    `json:"start,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
}

// Text format bitmask.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatUnderline     = 8
	FormatCode          = 16
)
