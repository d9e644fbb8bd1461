package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "single line", in: "  hello world  ", want: "hello world"},
		{name: "blank lines removed", in: "first\n\n   \nsecond\n", want: "first second"},
		{name: "inner spacing kept", in: "a  b\n c", want: "a  b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestChunkRunes(t *testing.T) {
	assert.Nil(t, ChunkRunes("", 500))
	assert.Nil(t, ChunkRunes("abc", 0))
	assert.Equal(t, []string{"abc"}, ChunkRunes("abc", 500))
	assert.Equal(t, []string{"ab", "cd", "e"}, ChunkRunes("abcde", 2))

	text := strings.Repeat("x", 1200)
	chunks := ChunkRunes(text, 500)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[2], 200)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestChunkRunes_MultiByte(t *testing.T) {
	chunks := ChunkRunes("héllo", 2)
	assert.Equal(t, []string{"hé", "ll", "o"}, chunks)
}
