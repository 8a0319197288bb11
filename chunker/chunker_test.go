package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("w%d", i)
	}
	return out
}

func TestSplitOverlap(t *testing.T) {
	pages := []string{strings.Join(words(25), " ")}

	chunks := Split("doc.pdf", pages, 10, 2)
	require.Len(t, chunks, 3)

	// Window i starts size-overlap words after window i-1.
	assert.True(t, strings.HasPrefix(chunks[0].Content, "w0 "))
	assert.True(t, strings.HasPrefix(chunks[1].Content, "w8 "))
	assert.True(t, strings.HasPrefix(chunks[2].Content, "w16 "))

	// Consecutive chunks share the overlap words.
	assert.True(t, strings.HasSuffix(chunks[0].Content, "w8 w9"))

	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, chunks[0].DocID, ch.DocID)
	}
}

func TestSplitDeterministicIDs(t *testing.T) {
	pages := []string{strings.Join(words(30), " ")}

	first := Split("report.pdf", pages, 10, 2)
	second := Split("report.pdf", pages, 10, 2)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}

	other := Split("other.pdf", pages, 10, 2)
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split("doc.pdf", nil, 10, 2))
	assert.Empty(t, Split("doc.pdf", []string{"", "  \n "}, 10, 2))
}

func TestSplitShortDocument(t *testing.T) {
	chunks := Split("doc.pdf", []string{"just a few words"}, 400, 40)
	require.Len(t, chunks, 1)
	assert.Equal(t, "just a few words", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestSplitJoinsPages(t *testing.T) {
	chunks := Split("doc.pdf", []string{"page one text", "page two text"}, 400, 40)
	require.Len(t, chunks, 1)
	assert.Equal(t, "page one text page two text", chunks[0].Content)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "annual report 2024", Title("annual_report-2024.PDF"))
	assert.Equal(t, "notes.txt", Title("notes.txt"))
}
