package editor

import (
	"ai-writing-be/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceSelectionWithoutSelectionIsNoop(t *testing.T) {
	e := New("Hello world")

	ok := e.ReplaceSelection("Bye")

	assert.False(t, ok)
	assert.Equal(t, "Hello world", e.Content())
	assert.Zero(t, e.Revision())
}

func TestReplaceTextFirstOccurrenceOnly(t *testing.T) {
	e := New("The cat sat. The cat sat.")

	ok := e.ReplaceText("The cat sat.", "The cat perched.")

	require.True(t, ok)
	assert.Equal(t, "The cat perched. The cat sat.", e.Content())
}

func TestReplaceTextLengthDelta(t *testing.T) {
	before := "one two three two"
	e := New(before)

	require.True(t, e.ReplaceText("two", "2"))

	assert.Equal(t, len(before)+len("2")-len("two"), len(e.Content()))
}

func TestReplaceTextMissingLeavesContent(t *testing.T) {
	e := New("Hello world")

	ok := e.ReplaceText("Goodbye world", "Hi")

	assert.False(t, ok)
	assert.Equal(t, "Hello world", e.Content())
	assert.Zero(t, e.Revision())
}

func TestReplaceTextEmptyOriginal(t *testing.T) {
	e := New("Hello")

	assert.False(t, e.ReplaceText("", "x"))
	assert.Equal(t, "Hello", e.Content())
}

func TestSetSelectionValidates(t *testing.T) {
	e := New("héllo wörld")

	require.NoError(t, e.SetSelection(&entity.SelectionRange{Start: 6, End: 11, Text: "wörld"}))

	err := e.SetSelection(&entity.SelectionRange{Start: 0, End: 3, Text: "xyz"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, "wörld", sel.Text)

	assert.ErrorIs(t, e.SetSelection(&entity.SelectionRange{Start: 4, End: 40, Text: "o"}), ErrInvalidSelection)
	assert.ErrorIs(t, e.SetSelection(&entity.SelectionRange{Start: 2, End: 2}), ErrInvalidSelection)

	require.NoError(t, e.SetSelection(nil))
	_, ok = e.Selection()
	assert.False(t, ok)
}

func TestReplaceSelectionUsesOffsets(t *testing.T) {
	e := New("ab ab ab")
	require.NoError(t, e.SetSelection(&entity.SelectionRange{Start: 3, End: 5, Text: "ab"}))

	ok := e.ReplaceSelection("XY")

	require.True(t, ok)
	assert.Equal(t, "ab XY ab", e.Content())
	_, has := e.Selection()
	assert.False(t, has)
}

func TestReplaceRangeStale(t *testing.T) {
	e := New("ab cd")
	r := entity.SelectionRange{Start: 3, End: 5, Text: "cd"}
	e.UpdateContent("ab ce")

	err := e.ReplaceRange(r, "zz")

	assert.ErrorIs(t, err, ErrSelectionStale)
	assert.Equal(t, "ab ce", e.Content())
}

func TestUpdateContentClearsSelection(t *testing.T) {
	e := New("abc")
	require.NoError(t, e.SetSelection(&entity.SelectionRange{Start: 0, End: 1, Text: "a"}))

	assert.False(t, e.UpdateContent("abc"))
	_, has := e.Selection()
	assert.True(t, has)

	assert.True(t, e.UpdateContent("abcd"))
	_, has = e.Selection()
	assert.False(t, has)
	assert.Equal(t, uint64(1), e.Revision())
}
