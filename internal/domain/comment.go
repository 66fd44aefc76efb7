package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxCommentLength    = 1000
	CommentsPerPage     = 5
	ThreadChildPageSize = 3
)

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	BlogID    uuid.UUID  `json:"blog_id" db:"blog_id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	IsReply   bool       `json:"is_reply" db:"is_reply"`
	Body      string     `json:"body" db:"body"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	// Children caches direct reply ids for display. Reply totals are always
	// counted from rows, never from this list.
	Children []uuid.UUID `json:"children"`

	Author       *CommentAuthor `json:"author,omitempty"`
	TotalReplies int64          `json:"total_replies"`
	Replies      []Comment      `json:"replies,omitempty"`
}

type CommentAuthor struct {
	ID        uuid.UUID `json:"id" db:"user_id"`
	FullName  string    `json:"full_name" db:"user_full_name"`
	AvatarURL *string   `json:"avatar_url" db:"user_avatar_url"`
}

type CreateCommentInput struct {
	BlogID     uuid.UUID  `json:"blog_id"`
	Body       string     `json:"comment"`
	ReplyingTo *uuid.UUID `json:"replying_to"`
}

// Validate trims the body and rejects empty or over-length comments before
// any transaction is opened.
func (in *CreateCommentInput) Validate() error {
	in.Body = strings.TrimSpace(in.Body)
	if in.BlogID == uuid.Nil {
		return ValidationError("blog_id is required")
	}
	if in.Body == "" {
		return ValidationError("comment must not be empty")
	}
	if len(in.Body) > MaxCommentLength {
		return ValidationError("comment must be at most 1000 characters")
	}
	return nil
}

type CommentPage struct {
	Comments   []Comment      `json:"comments"`
	Pagination PageIndicators `json:"pagination"`
}

type ReplyPage struct {
	Replies    []Comment      `json:"replies"`
	Pagination PageIndicators `json:"pagination"`
}

type PageIndicators struct {
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
	PerPage int   `json:"perPage"`
	Skip    int   `json:"skip"`
}

func NewPageIndicators(skip, perPage int, total int64) PageIndicators {
	return PageIndicators{
		Total:   total,
		HasMore: int64(skip+perPage) < total,
		PerPage: perPage,
		Skip:    skip,
	}
}
