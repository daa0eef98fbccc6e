// Package editor holds the live content string and selection of the active
// document. It is not safe for concurrent use; the session event loop owns it.
package editor

import (
	"ai-writing-be/internal/entity"
	"errors"
	"strings"
)

var (
	ErrInvalidSelection = errors.New("selection does not match content")
	ErrSelectionStale   = errors.New("selected text has changed")
)

type Editor struct {
	content   string
	selection *entity.SelectionRange
	revision  uint64
}

func New(content string) *Editor {
	return &Editor{content: content}
}

func (e *Editor) Content() string {
	return e.content
}

// Revision increases on every content mutation.
func (e *Editor) Revision() uint64 {
	return e.revision
}

func (e *Editor) Selection() (entity.SelectionRange, bool) {
	if e.selection == nil {
		return entity.SelectionRange{}, false
	}
	return *e.selection, true
}

// UpdateContent replaces the whole content and drops the selection, whose
// offsets no longer mean anything. Returns false when text equals the
// current content.
func (e *Editor) UpdateContent(text string) bool {
	if text == e.content {
		return false
	}
	e.setContent(text)
	return true
}

// SetSelection replaces the selection; nil clears it. An invalid range
// leaves the previous selection in place.
func (e *Editor) SetSelection(r *entity.SelectionRange) error {
	if r == nil {
		e.selection = nil
		return nil
	}
	if !e.Matches(*r) || r.Start == r.End {
		return ErrInvalidSelection
	}
	sel := *r
	e.selection = &sel
	return nil
}

func (e *Editor) ClearSelection() {
	e.selection = nil
}

// ReplaceSelection splices text over the current selection and clears it.
// Without a selection it does nothing and returns false.
func (e *Editor) ReplaceSelection(text string) bool {
	if e.selection == nil {
		return false
	}
	return e.ReplaceRange(*e.selection, text) == nil
}

// ReplaceRange splices text over r if the content still holds r.Text at
// r's offsets; otherwise it returns ErrSelectionStale and changes nothing.
func (e *Editor) ReplaceRange(r entity.SelectionRange, text string) error {
	if !e.Matches(r) {
		return ErrSelectionStale
	}
	runes := []rune(e.content)
	var sb strings.Builder
	sb.WriteString(string(runes[:r.Start]))
	sb.WriteString(text)
	sb.WriteString(string(runes[r.End:]))
	e.setContent(sb.String())
	return nil
}

// ReplaceText replaces the first occurrence of original. When original is
// empty or absent the content is left untouched and false is returned.
// Only the first occurrence is ever considered, even if original repeats.
func (e *Editor) ReplaceText(original, replacement string) bool {
	if original == "" {
		return false
	}
	idx := strings.Index(e.content, original)
	if idx < 0 {
		return false
	}
	e.setContent(e.content[:idx] + replacement + e.content[idx+len(original):])
	return true
}

// Contains reports whether needle occurs verbatim in the content.
func (e *Editor) Contains(needle string) bool {
	return strings.Contains(e.content, needle)
}

// Matches reports whether the content still holds r.Text at r's offsets.
func (e *Editor) Matches(r entity.SelectionRange) bool {
	runes := []rune(e.content)
	if r.Start < 0 || r.End < r.Start || r.End > len(runes) {
		return false
	}
	return string(runes[r.Start:r.End]) == r.Text
}

func (e *Editor) setContent(text string) {
	e.content = text
	e.selection = nil
	e.revision++
}
