package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkwell/internal/domain"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	// LockByID takes a row lock on the blog, serializing concurrent comment
	// and like writers on the same post.
	LockByID(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*domain.Blog, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Blog, int64, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, bannerURL string) error
	HasLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) (bool, error)
	InsertLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) error
	DeleteLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) error
	CountLikes(ctx context.Context, ext sqlx.ExtContext, blogID uuid.UUID) (int64, error)
}

type blogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query := `
		INSERT INTO blogs (blog_id, author_id, title, description, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		blog.ID, blog.AuthorID, blog.Title, blog.Description, blog.Content,
	).Scan(&blog.CreatedAt, &blog.UpdatedAt)
}

func (r *blogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	query := `
		SELECT
			b.blog_id, b.author_id, b.title, b.description, b.content, b.banner_url,
			b.created_at, b.updated_at,
			u.user_id, u.full_name, u.avatar_url
		FROM blogs b
		INNER JOIN users u ON b.author_id = u.user_id
		WHERE b.blog_id = $1`

	var b domain.Blog
	var author domain.CommentAuthor
	err := r.db.QueryRowxContext(ctx, query, id).Scan(
		&b.ID, &b.AuthorID, &b.Title, &b.Description, &b.Content, &b.BannerURL,
		&b.CreatedAt, &b.UpdatedAt,
		&author.ID, &author.FullName, &author.AvatarURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Author = &author
	return &b, nil
}

func (r *blogRepository) LockByID(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*domain.Blog, error) {
	query := `
		SELECT blog_id, author_id, title, description, content, banner_url, created_at, updated_at
		FROM blogs WHERE blog_id = $1 FOR UPDATE`

	var b domain.Blog
	err := ext.QueryRowxContext(ctx, query, id).Scan(
		&b.ID, &b.AuthorID, &b.Title, &b.Description, &b.Content, &b.BannerURL,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Blog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM blogs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			b.blog_id, b.author_id, b.title, b.description, b.content, b.banner_url,
			b.created_at, b.updated_at,
			u.user_id, u.full_name, u.avatar_url,
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.blog_id) AS total_comments,
			(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.blog_id) AS total_likes
		FROM blogs b
		INNER JOIN users u ON b.author_id = u.user_id
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryxContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var b domain.Blog
		var author domain.CommentAuthor
		err := rows.Scan(
			&b.ID, &b.AuthorID, &b.Title, &b.Description, &b.Content, &b.BannerURL,
			&b.CreatedAt, &b.UpdatedAt,
			&author.ID, &author.FullName, &author.AvatarURL,
			&b.TotalComments, &b.TotalLikes,
		)
		if err != nil {
			return nil, 0, err
		}
		b.Author = &author
		blogs = append(blogs, b)
	}

	return blogs, total, rows.Err()
}

func (r *blogRepository) UpdateBanner(ctx context.Context, id uuid.UUID, bannerURL string) error {
	query := `UPDATE blogs SET banner_url = $2, updated_at = NOW() WHERE blog_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, bannerURL)
	return err
}

func (r *blogRepository) HasLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) (bool, error) {
	if ext == nil {
		ext = r.db
	}
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE blog_id = $1 AND user_id = $2)`
	err := ext.QueryRowxContext(ctx, query, blogID, userID).Scan(&exists)
	return exists, err
}

func (r *blogRepository) InsertLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) error {
	query := `INSERT INTO likes (blog_id, user_id) VALUES ($1, $2)`
	_, err := ext.ExecContext(ctx, query, blogID, userID)
	return err
}

func (r *blogRepository) DeleteLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) error {
	query := `DELETE FROM likes WHERE blog_id = $1 AND user_id = $2`
	_, err := ext.ExecContext(ctx, query, blogID, userID)
	return err
}

func (r *blogRepository) CountLikes(ctx context.Context, ext sqlx.ExtContext, blogID uuid.UUID) (int64, error) {
	if ext == nil {
		ext = r.db
	}
	var count int64
	query := `SELECT COUNT(*) FROM likes WHERE blog_id = $1`
	err := ext.QueryRowxContext(ctx, query, blogID).Scan(&count)
	return count, err
}
