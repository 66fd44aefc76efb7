package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentInput_Validate(t *testing.T) {
	blogID := uuid.New()

	t.Run("TrimsBody", func(t *testing.T) {
		in := CreateCommentInput{BlogID: blogID, Body: "  hello  "}
		require.NoError(t, in.Validate())
		assert.Equal(t, "hello", in.Body)
	})

	t.Run("MissingBlogID", func(t *testing.T) {
		in := CreateCommentInput{Body: "hello"}
		assert.Error(t, in.Validate())
	})

	t.Run("WhitespaceOnly", func(t *testing.T) {
		in := CreateCommentInput{BlogID: blogID, Body: "   \n\t "}
		assert.Error(t, in.Validate())
	})

	t.Run("AtLengthLimit", func(t *testing.T) {
		in := CreateCommentInput{BlogID: blogID, Body: strings.Repeat("a", MaxCommentLength)}
		assert.NoError(t, in.Validate())
	})

	t.Run("OverLengthLimit", func(t *testing.T) {
		in := CreateCommentInput{BlogID: blogID, Body: strings.Repeat("a", MaxCommentLength+1)}
		assert.Error(t, in.Validate())
	})
}

func TestNewPageIndicators(t *testing.T) {
	t.Run("MorePagesLeft", func(t *testing.T) {
		p := NewPageIndicators(0, 5, 12)
		assert.True(t, p.HasMore)
		assert.Equal(t, int64(12), p.Total)
	})

	t.Run("LastPartialPage", func(t *testing.T) {
		p := NewPageIndicators(10, 5, 12)
		assert.False(t, p.HasMore)
		assert.Equal(t, 10, p.Skip)
	})

	t.Run("ExactBoundary", func(t *testing.T) {
		// skip+perPage == total means everything has been served.
		p := NewPageIndicators(5, 5, 10)
		assert.False(t, p.HasMore)
	})

	t.Run("Empty", func(t *testing.T) {
		p := NewPageIndicators(0, 5, 0)
		assert.False(t, p.HasMore)
		assert.Equal(t, int64(0), p.Total)
	})
}
