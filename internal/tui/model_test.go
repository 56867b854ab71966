package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateWords(t *testing.T) {
	content := "one two three four five"

	assert.Equal(t, "one two three...", truncateWords(content, 3))
	assert.Equal(t, content, truncateWords(content, 5))
	assert.Equal(t, content, truncateWords(content, 50))
}

func TestTruncateWordsCollapsesWhitespace(t *testing.T) {
	got := truncateWords("a  b\nc d", 2)
	assert.Equal(t, "a b...", got)
	assert.False(t, strings.Contains(got, "\n"))
}
