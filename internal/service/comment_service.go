package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

type CommentService interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, int64, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
	ListByBlog(ctx context.Context, blogID uuid.UUID, skip int) (domain.CommentPage, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, skip int) (domain.ReplyPage, error)
	ListThread(ctx context.Context, parentID uuid.UUID, maxDepth, skip, limit int) (domain.ReplyPage, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	tx          repository.TxManager
	redis       *redis.Client
	emailSvc    EmailService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	blogRepo repository.BlogRepository,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	tx repository.TxManager,
	redis *redis.Client,
	emailSvc EmailService,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		tx:          tx,
		redis:       redis,
		emailSvc:    emailSvc,
	}
}

// Create persists a comment, links it to its parent, and fans out
// notifications, all in one transaction. The blog row is locked first so
// concurrent writers on the same post are serialized; a reply additionally
// locks its parent so the children list cannot lose an append.
func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, int64, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	var (
		comment *domain.Comment
		blog    *domain.Blog
		total   int64
	)

	err := s.tx.RunInTx(ctx, func(tx sqlx.ExtContext) error {
		b, err := s.blogRepo.LockByID(ctx, tx, input.BlogID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFoundError("blog")
		}
		blog = b

		var parent *domain.Comment
		if input.ReplyingTo != nil {
			parent, err = s.commentRepo.GetForUpdate(ctx, tx, *input.ReplyingTo)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.NotFoundError("parent comment")
			}
			if parent.BlogID != blog.ID {
				return domain.ValidationError("parent comment belongs to a different blog")
			}
		}

		c := &domain.Comment{
			ID:       uuid.New(),
			BlogID:   blog.ID,
			AuthorID: authorID,
			ParentID: input.ReplyingTo,
			IsReply:  input.ReplyingTo != nil,
			Body:     input.Body,
			Children: []uuid.UUID{},
		}
		if err := s.commentRepo.Insert(ctx, tx, c); err != nil {
			return err
		}

		if parent != nil {
			if err := s.commentRepo.AppendChild(ctx, tx, parent.ID, c.ID); err != nil {
				return err
			}
		}

		for _, notif := range CommentNotifications(blog, c, parent) {
			if err := s.notifRepo.Create(ctx, tx, notif); err != nil {
				return err
			}
		}

		total, err = s.commentRepo.CountByBlog(ctx, tx, blog.ID)
		if err != nil {
			return err
		}

		comment = c
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.invalidateCache(ctx, comment.BlogID)

	if s.emailSvc != nil && blog.AuthorID != authorID {
		go s.sendCommentEmail(blog, comment)
	}

	return comment, total, nil
}

// Delete removes a comment, its direct children, and every notification
// referencing any of them. The cascade is intentionally shallow: replies to
// replies are not chased further down.
func (s *commentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	existing, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundError("comment")
	}
	if existing.AuthorID != userID {
		return domain.ForbiddenError("you can only delete your own comments")
	}

	err = s.tx.RunInTx(ctx, func(tx sqlx.ExtContext) error {
		c, err := s.commentRepo.GetForUpdate(ctx, tx, commentID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NotFoundError("comment")
		}

		if c.ParentID != nil {
			if err := s.commentRepo.RemoveChild(ctx, tx, *c.ParentID, c.ID); err != nil {
				return err
			}
		}

		if err := s.commentRepo.DeleteByIDs(ctx, tx, c.Children); err != nil {
			return err
		}

		removed := make([]uuid.UUID, 0, len(c.Children)+1)
		removed = append(removed, c.Children...)
		removed = append(removed, c.ID)
		if err := s.notifRepo.DeleteByCommentIDs(ctx, tx, removed); err != nil {
			return err
		}

		return s.commentRepo.Delete(ctx, tx, c.ID)
	})
	if err != nil {
		return err
	}

	s.invalidateCache(ctx, existing.BlogID)
	return nil
}

func (s *commentService) ListByBlog(ctx context.Context, blogID uuid.UUID, skip int) (domain.CommentPage, error) {
	if skip < 0 {
		skip = 0
	}

	cacheKey := fmt.Sprintf("comments:%s:skip:%d", blogID, skip)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var page domain.CommentPage
			if json.Unmarshal([]byte(cached), &page) == nil {
				return page, nil
			}
		}
	}

	comments, err := s.commentRepo.ListTopLevel(ctx, blogID, skip, domain.CommentsPerPage)
	if err != nil {
		return domain.CommentPage{}, err
	}
	if err := s.attachReplyCounts(ctx, comments); err != nil {
		return domain.CommentPage{}, err
	}

	total, err := s.commentRepo.CountTopLevel(ctx, blogID)
	if err != nil {
		return domain.CommentPage{}, err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	page := domain.CommentPage{
		Comments:   comments,
		Pagination: domain.NewPageIndicators(skip, domain.CommentsPerPage, total),
	}

	if s.redis != nil {
		if pageJSON, err := json.Marshal(page); err == nil {
			_ = s.redis.Set(ctx, cacheKey, pageJSON, 5*time.Minute).Err()
		}
	}

	return page, nil
}

// ListReplies pages through direct replies oldest-first. A parent with no
// rows, including one that no longer exists, yields an empty page.
func (s *commentService) ListReplies(ctx context.Context, parentID uuid.UUID, skip int) (domain.ReplyPage, error) {
	if skip < 0 {
		skip = 0
	}

	replies, err := s.commentRepo.ListReplies(ctx, parentID, skip, domain.CommentsPerPage)
	if err != nil {
		return domain.ReplyPage{}, err
	}
	if err := s.attachReplyCounts(ctx, replies); err != nil {
		return domain.ReplyPage{}, err
	}

	total, err := s.commentRepo.CountReplies(ctx, parentID)
	if err != nil {
		return domain.ReplyPage{}, err
	}

	if replies == nil {
		replies = []domain.Comment{}
	}
	return domain.ReplyPage{
		Replies:    replies,
		Pagination: domain.NewPageIndicators(skip, domain.CommentsPerPage, total),
	}, nil
}

// ListThread returns a bounded-depth preview of a reply subtree. Nested
// levels carry a small fixed page of children each; below the depth limit
// only the live counts are reported. Depth 0 is a direct reply to the anchor.
func (s *commentService) ListThread(ctx context.Context, parentID uuid.UUID, maxDepth, skip, limit int) (domain.ReplyPage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = domain.CommentsPerPage
	}
	if maxDepth <= 0 {
		maxDepth = 1
	}

	replies, err := s.thread(ctx, parentID, 0, maxDepth, skip, limit)
	if err != nil {
		return domain.ReplyPage{}, err
	}

	total, err := s.commentRepo.CountReplies(ctx, parentID)
	if err != nil {
		return domain.ReplyPage{}, err
	}

	if replies == nil {
		replies = []domain.Comment{}
	}
	return domain.ReplyPage{
		Replies:    replies,
		Pagination: domain.NewPageIndicators(skip, limit, total),
	}, nil
}

func (s *commentService) thread(ctx context.Context, parentID uuid.UUID, depth, maxDepth, skip, limit int) ([]domain.Comment, error) {
	replies, err := s.commentRepo.ListReplies(ctx, parentID, skip, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachReplyCounts(ctx, replies); err != nil {
		return nil, err
	}

	if depth < maxDepth-1 {
		for i := range replies {
			if replies[i].TotalReplies == 0 {
				continue
			}
			children, err := s.thread(ctx, replies[i].ID, depth+1, maxDepth, 0, domain.ThreadChildPageSize)
			if err != nil {
				return nil, err
			}
			replies[i].Replies = children
		}
	}

	return replies, nil
}

func (s *commentService) attachReplyCounts(ctx context.Context, comments []domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}

	counts, err := s.commentRepo.ReplyCounts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		comments[i].TotalReplies = counts[comments[i].ID]
	}
	return nil
}

func (s *commentService) invalidateCache(ctx context.Context, blogID uuid.UUID) {
	if s.redis == nil {
		return
	}
	cachePattern := fmt.Sprintf("comments:%s:*", blogID)
	keys, _ := s.redis.Keys(ctx, cachePattern).Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

func (s *commentService) sendCommentEmail(blog *domain.Blog, comment *domain.Comment) {
	ctx := context.Background()

	recipient, err := s.userRepo.GetByID(ctx, blog.AuthorID)
	if err != nil || recipient == nil {
		return
	}
	actor, err := s.userRepo.GetByID(ctx, comment.AuthorID)
	if err != nil || actor == nil {
		return
	}

	if err := s.emailSvc.SendCommentEmail(ctx, recipient.Email, recipient.FullName, actor.FullName, blog.Title, comment.IsReply); err != nil {
		log.Printf("Failed to send comment email: %v", err)
	}
}
