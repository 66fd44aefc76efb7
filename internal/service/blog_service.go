package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

type BlogService interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateBlogInput) (*domain.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error)
	ToggleLike(ctx context.Context, blogID, userID uuid.UUID) (domain.LikeResult, error)
}

type blogService struct {
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
	notifRepo   repository.NotificationRepository
	tx          repository.TxManager
}

func NewBlogService(
	blogRepo repository.BlogRepository,
	commentRepo repository.CommentRepository,
	notifRepo repository.NotificationRepository,
	tx repository.TxManager,
) BlogService {
	return &blogService{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		notifRepo:   notifRepo,
		tx:          tx,
	}
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateBlogInput) (*domain.Blog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, domain.NotFoundError("blog")
	}

	blog.TotalComments, err = s.commentRepo.CountByBlog(ctx, nil, blog.ID)
	if err != nil {
		return nil, err
	}
	blog.TotalLikes, err = s.blogRepo.CountLikes(ctx, nil, blog.ID)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Blog], error) {
	blogs, total, err := s.blogRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Blog]{}, err
	}

	return domain.NewPaginatedResponse(blogs, params.Page, params.PageSize, total), nil
}

// ToggleLike flips the caller's like on a blog inside one transaction, under
// the same blog row lock used for comment creation. Liking someone else's
// blog emits a like notification; unliking withdraws it.
func (s *blogService) ToggleLike(ctx context.Context, blogID, userID uuid.UUID) (domain.LikeResult, error) {
	var result domain.LikeResult

	err := s.tx.RunInTx(ctx, func(tx sqlx.ExtContext) error {
		blog, err := s.blogRepo.LockByID(ctx, tx, blogID)
		if err != nil {
			return err
		}
		if blog == nil {
			return domain.NotFoundError("blog")
		}

		liked, err := s.blogRepo.HasLike(ctx, tx, blogID, userID)
		if err != nil {
			return err
		}

		if liked {
			if err := s.blogRepo.DeleteLike(ctx, tx, blogID, userID); err != nil {
				return err
			}
			if err := s.notifRepo.DeleteLike(ctx, tx, blogID, userID); err != nil {
				return err
			}
			result.Liked = false
		} else {
			if err := s.blogRepo.InsertLike(ctx, tx, blogID, userID); err != nil {
				return err
			}
			if blog.AuthorID != userID {
				notif := &domain.Notification{
					ID:      uuid.New(),
					UserID:  blog.AuthorID,
					ActorID: userID,
					Type:    domain.NotifLike,
					BlogID:  blogID,
				}
				if err := s.notifRepo.Create(ctx, tx, notif); err != nil {
					return err
				}
			}
			result.Liked = true
		}

		result.TotalLikes, err = s.blogRepo.CountLikes(ctx, tx, blogID)
		return err
	})
	if err != nil {
		return domain.LikeResult{}, err
	}

	return result, nil
}
