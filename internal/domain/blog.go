package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID          uuid.UUID `json:"id" db:"blog_id"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Content     string    `json:"content" db:"content"`
	BannerURL   *string   `json:"banner_url,omitempty" db:"banner_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Author        *CommentAuthor `json:"author,omitempty"`
	TotalComments int64          `json:"total_comments"`
	TotalLikes    int64          `json:"total_likes"`
}

type CreateBlogInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
}

func (in *CreateBlogInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ValidationError("title must not be empty")
	}
	if strings.TrimSpace(in.Content) == "" {
		return ValidationError("content must not be empty")
	}
	return nil
}

type Like struct {
	BlogID    uuid.UUID `db:"blog_id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type LikeResult struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"total_likes"`
}
