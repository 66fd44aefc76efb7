package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID                 uuid.UUID        `json:"id" db:"notification_id"`
	UserID             uuid.UUID        `json:"user_id" db:"user_id"`
	ActorID            uuid.UUID        `json:"actor_id" db:"actor_id"`
	Type               NotificationType `json:"type" db:"type"`
	BlogID             uuid.UUID        `json:"blog_id" db:"blog_id"`
	CommentID          *uuid.UUID       `json:"comment_id,omitempty" db:"comment_id"`
	ReplyCommentID     *uuid.UUID       `json:"reply_comment_id,omitempty" db:"reply_comment_id"`
	RepliedOnCommentID *uuid.UUID       `json:"replied_on_comment_id,omitempty" db:"replied_on_comment_id"`
	Seen               bool             `json:"seen" db:"seen"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`

	Actor *CommentAuthor `json:"actor,omitempty"`
}

type NotificationType string

const (
	NotifLike    NotificationType = "like"
	NotifComment NotificationType = "comment"
	NotifReply   NotificationType = "reply"
)
