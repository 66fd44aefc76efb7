package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkwell/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, notif *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unseenOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkSeen(ctx context.Context, id, userID uuid.UUID) error
	MarkAllSeen(ctx context.Context, userID uuid.UUID) error
	CountUnseen(ctx context.Context, userID uuid.UUID) (int64, error)
	Dismiss(ctx context.Context, id, userID uuid.UUID) (bool, error)
	DeleteByCommentIDs(ctx context.Context, ext sqlx.ExtContext, commentIDs []uuid.UUID) error
	DeleteLike(ctx context.Context, ext sqlx.ExtContext, blogID, actorID uuid.UUID) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, ext sqlx.ExtContext, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, actor_id, type, blog_id, comment_id, reply_comment_id, replied_on_comment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return ext.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.ActorID, notif.Type, notif.BlogID,
		notif.CommentID, notif.ReplyCommentID, notif.RepliedOnCommentID,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unseenOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	filter := ``
	if unseenOnly {
		filter = ` AND n.seen = false`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications n WHERE n.user_id = $1` + filter
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			n.notification_id, n.user_id, n.actor_id, n.type, n.blog_id,
			n.comment_id, n.reply_comment_id, n.replied_on_comment_id, n.seen, n.created_at,
			u.user_id, u.full_name, u.avatar_url
		FROM notifications n
		INNER JOIN users u ON n.actor_id = u.user_id
		WHERE n.user_id = $1` + filter + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var actor domain.CommentAuthor
		err := rows.Scan(
			&n.ID, &n.UserID, &n.ActorID, &n.Type, &n.BlogID,
			&n.CommentID, &n.ReplyCommentID, &n.RepliedOnCommentID, &n.Seen, &n.CreatedAt,
			&actor.ID, &actor.FullName, &actor.AvatarURL,
		)
		if err != nil {
			return nil, 0, err
		}
		n.Actor = &actor
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

func (r *notificationRepository) MarkSeen(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET seen = true WHERE notification_id = $1 AND user_id = $2 AND seen = false`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET seen = true WHERE user_id = $1 AND seen = false`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *notificationRepository) CountUnseen(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND seen = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) Dismiss(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM notifications WHERE notification_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// DeleteByCommentIDs removes every notification referencing any of the given
// comments, in any reference column, so deleted comments never leave dangling
// notifications behind.
func (r *notificationRepository) DeleteByCommentIDs(ctx context.Context, ext sqlx.ExtContext, commentIDs []uuid.UUID) error {
	if len(commentIDs) == 0 {
		return nil
	}
	query := `
		DELETE FROM notifications
		WHERE comment_id = ANY($1) OR reply_comment_id = ANY($1) OR replied_on_comment_id = ANY($1)`
	_, err := ext.ExecContext(ctx, query, pq.Array(commentIDs))
	return err
}

func (r *notificationRepository) DeleteLike(ctx context.Context, ext sqlx.ExtContext, blogID, actorID uuid.UUID) error {
	query := `DELETE FROM notifications WHERE type = 'like' AND blog_id = $1 AND actor_id = $2`
	_, err := ext.ExecContext(ctx, query, blogID, actorID)
	return err
}
