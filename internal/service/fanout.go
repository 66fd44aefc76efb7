package service

import (
	"github.com/google/uuid"

	"inkwell/internal/domain"
)

// CommentNotifications derives the notification rows for a freshly created
// comment. Each rule is gated independently, so an action produces zero, one,
// or two rows. A user is never notified about their own activity.
//
// Rule 1: the blog author hears about every comment on their blog, typed
// "comment" for top-level comments and "reply" for replies.
// Rule 2: on a reply, the parent comment's author also hears about it, unless
// they are the replier or already covered as the blog author.
func CommentNotifications(blog *domain.Blog, comment *domain.Comment, parent *domain.Comment) []*domain.Notification {
	var notifications []*domain.Notification

	notifType := domain.NotifComment
	if comment.IsReply {
		notifType = domain.NotifReply
	}

	if blog.AuthorID != comment.AuthorID {
		notifications = append(notifications, &domain.Notification{
			ID:        uuid.New(),
			UserID:    blog.AuthorID,
			ActorID:   comment.AuthorID,
			Type:      notifType,
			BlogID:    blog.ID,
			CommentID: &comment.ID,
		})
	}

	if comment.IsReply && parent != nil &&
		parent.AuthorID != comment.AuthorID && parent.AuthorID != blog.AuthorID {
		notifications = append(notifications, &domain.Notification{
			ID:                 uuid.New(),
			UserID:             parent.AuthorID,
			ActorID:            comment.AuthorID,
			Type:               domain.NotifReply,
			BlogID:             blog.ID,
			CommentID:          &parent.ID,
			ReplyCommentID:     &comment.ID,
			RepliedOnCommentID: &parent.ID,
		})
	}

	return notifications
}
