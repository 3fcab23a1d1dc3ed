package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExcerpt_FirstParagraph(t *testing.T) {
	body := []byte("# Heading\n\nThe *first* paragraph\nspans two lines.\n\nSecond paragraph.\n")

	got := NewExcerpter().Excerpt(body, 0)
	require.Equal(t, "The first paragraph spans two lines.", got)
}

func TestExcerpt_Truncates(t *testing.T) {
	body := []byte("abcdefghij klmnop\n")

	got := NewExcerpter().Excerpt(body, 5)
	require.Equal(t, "abcde…", got)
}

func TestExcerpt_NoParagraph(t *testing.T) {
	require.Equal(t, "", NewExcerpter().Excerpt([]byte("# Only a heading\n"), 10))
}
