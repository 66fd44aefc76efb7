package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkwell/internal/domain"
)

type CommentRepository interface {
	Insert(ctx context.Context, ext sqlx.ExtContext, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	GetForUpdate(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*domain.Comment, error)
	AppendChild(ctx context.Context, ext sqlx.ExtContext, parentID, childID uuid.UUID) error
	RemoveChild(ctx context.Context, ext sqlx.ExtContext, parentID, childID uuid.UUID) error
	Delete(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ext sqlx.ExtContext, ids []uuid.UUID) error
	ListTopLevel(ctx context.Context, blogID uuid.UUID, skip, limit int) ([]domain.Comment, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, skip, limit int) ([]domain.Comment, error)
	CountTopLevel(ctx context.Context, blogID uuid.UUID) (int64, error)
	CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error)
	CountByBlog(ctx context.Context, ext sqlx.ExtContext, blogID uuid.UUID) (int64, error)
	ReplyCounts(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `comment_id, blog_id, author_id, parent_id, is_reply, body, children, created_at`

func (r *commentRepository) Insert(ctx context.Context, ext sqlx.ExtContext, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, blog_id, author_id, parent_id, is_reply, body, children)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return ext.QueryRowxContext(ctx, query,
		comment.ID, comment.BlogID, comment.AuthorID, comment.ParentID, comment.IsReply,
		comment.Body, pq.Array(comment.Children),
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return r.get(ctx, r.db, id, false)
}

func (r *commentRepository) GetForUpdate(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*domain.Comment, error) {
	return r.get(ctx, ext, id, true)
}

func (r *commentRepository) get(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, forUpdate bool) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var c domain.Comment
	err := ext.QueryRowxContext(ctx, query, id).Scan(
		&c.ID, &c.BlogID, &c.AuthorID, &c.ParentID, &c.IsReply, &c.Body,
		pq.Array(&c.Children), &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) AppendChild(ctx context.Context, ext sqlx.ExtContext, parentID, childID uuid.UUID) error {
	query := `UPDATE comments SET children = array_append(children, $2) WHERE comment_id = $1`
	_, err := ext.ExecContext(ctx, query, parentID, childID)
	return err
}

func (r *commentRepository) RemoveChild(ctx context.Context, ext sqlx.ExtContext, parentID, childID uuid.UUID) error {
	query := `UPDATE comments SET children = array_remove(children, $2) WHERE comment_id = $1`
	_, err := ext.ExecContext(ctx, query, parentID, childID)
	return err
}

func (r *commentRepository) Delete(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE comment_id = $1`
	_, err := ext.ExecContext(ctx, query, id)
	return err
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ext sqlx.ExtContext, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM comments WHERE comment_id = ANY($1)`
	_, err := ext.ExecContext(ctx, query, pq.Array(ids))
	return err
}

func (r *commentRepository) ListTopLevel(ctx context.Context, blogID uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	query := `
		SELECT
			c.comment_id, c.blog_id, c.author_id, c.parent_id, c.is_reply, c.body, c.children, c.created_at,
			u.user_id, u.full_name, u.avatar_url
		FROM comments c
		INNER JOIN users u ON c.author_id = u.user_id
		WHERE c.blog_id = $1 AND c.is_reply = false
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, blogID, limit, skip)
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	// Oldest reply first: replies read as a conversation, unlike top-level
	// comments which show newest first.
	query := `
		SELECT
			c.comment_id, c.blog_id, c.author_id, c.parent_id, c.is_reply, c.body, c.children, c.created_at,
			u.user_id, u.full_name, u.avatar_url
		FROM comments c
		INNER JOIN users u ON c.author_id = u.user_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, parentID, limit, skip)
}

func (r *commentRepository) list(ctx context.Context, query string, anchor uuid.UUID, limit, skip int) ([]domain.Comment, error) {
	rows, err := r.db.QueryxContext(ctx, query, anchor, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author domain.CommentAuthor
		err := rows.Scan(
			&c.ID, &c.BlogID, &c.AuthorID, &c.ParentID, &c.IsReply, &c.Body,
			pq.Array(&c.Children), &c.CreatedAt,
			&author.ID, &author.FullName, &author.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		c.Author = &author
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *commentRepository) CountTopLevel(ctx context.Context, blogID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM comments WHERE blog_id = $1 AND is_reply = false`
	err := r.db.GetContext(ctx, &count, query, blogID)
	return count, err
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM comments WHERE parent_id = $1`
	err := r.db.GetContext(ctx, &count, query, parentID)
	return count, err
}

// CountByBlog runs on the pooled connection when ext is nil, or inside the
// caller's transaction otherwise.
func (r *commentRepository) CountByBlog(ctx context.Context, ext sqlx.ExtContext, blogID uuid.UUID) (int64, error) {
	if ext == nil {
		ext = r.db
	}
	var count int64
	query := `SELECT COUNT(*) FROM comments WHERE blog_id = $1`
	err := ext.QueryRowxContext(ctx, query, blogID).Scan(&count)
	return count, err
}

// ReplyCounts returns the live reply count for each parent in one query.
// Listing pages attach these instead of len(children) so concurrent writes
// never surface a stale total.
func (r *commentRepository) ReplyCounts(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	query := `SELECT parent_id, COUNT(*) FROM comments WHERE parent_id = ANY($1) GROUP BY parent_id`
	rows, err := r.db.QueryxContext(ctx, query, pq.Array(parentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var parentID uuid.UUID
		var count int64
		if err := rows.Scan(&parentID, &count); err != nil {
			return nil, err
		}
		counts[parentID] = count
	}

	return counts, rows.Err()
}
