package unit_test

import (
	"context"
	"testing"

	"inkwell/internal/domain"
	"inkwell/internal/service"
	"inkwell/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommentService(commentRepo *mocks.CommentRepository, blogRepo *mocks.BlogRepository, notifRepo *mocks.NotificationRepository) service.CommentService {
	return service.NewCommentService(commentRepo, blogRepo, notifRepo, nil, &mocks.TxManager{}, nil, nil)
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	blogAuthor := uuid.New()
	commenter := uuid.New()
	blogID := uuid.New()

	blog := &domain.Blog{ID: blogID, AuthorID: blogAuthor, Title: "First post"}

	t.Run("TopLevel", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		blogRepo.On("LockByID", ctx, mock.Anything, blogID).Return(blog, nil).Once()
		commentRepo.On("Insert", ctx, mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.BlogID == blogID && c.AuthorID == commenter && !c.IsReply && c.ParentID == nil && c.Children != nil
		})).Return(nil).Once()
		notifRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == blogAuthor && n.ActorID == commenter && n.Type == domain.NotifComment
		})).Return(nil).Once()
		commentRepo.On("CountByBlog", ctx, mock.Anything, blogID).Return(int64(7), nil).Once()

		comment, total, err := svc.Create(ctx, commenter, domain.CreateCommentInput{
			BlogID: blogID,
			Body:   "nice one",
		})

		require.NoError(t, err)
		require.NotNil(t, comment)
		assert.Equal(t, "nice one", comment.Body)
		assert.Equal(t, int64(7), total)
		commentRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("ReplyLinksParent", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		parentAuthor := uuid.New()
		parent := &domain.Comment{ID: uuid.New(), BlogID: blogID, AuthorID: parentAuthor}

		blogRepo.On("LockByID", ctx, mock.Anything, blogID).Return(blog, nil).Once()
		commentRepo.On("GetForUpdate", ctx, mock.Anything, parent.ID).Return(parent, nil).Once()
		commentRepo.On("Insert", ctx, mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.IsReply && c.ParentID != nil && *c.ParentID == parent.ID
		})).Return(nil).Once()
		commentRepo.On("AppendChild", ctx, mock.Anything, parent.ID, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()
		notifRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil).Twice()
		commentRepo.On("CountByBlog", ctx, mock.Anything, blogID).Return(int64(2), nil).Once()

		comment, _, err := svc.Create(ctx, commenter, domain.CreateCommentInput{
			BlogID:     blogID,
			Body:       "replying",
			ReplyingTo: &parent.ID,
		})

		require.NoError(t, err)
		assert.True(t, comment.IsReply)
		commentRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("MissingBlog", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		blogRepo.On("LockByID", ctx, mock.Anything, blogID).Return(nil, nil).Once()

		_, _, err := svc.Create(ctx, commenter, domain.CreateCommentInput{BlogID: blogID, Body: "hi"})

		require.Error(t, err)
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindNotFound, domainErr.Kind)
	})

	t.Run("MissingParent", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		missing := uuid.New()
		blogRepo.On("LockByID", ctx, mock.Anything, blogID).Return(blog, nil).Once()
		commentRepo.On("GetForUpdate", ctx, mock.Anything, missing).Return(nil, nil).Once()

		_, _, err := svc.Create(ctx, commenter, domain.CreateCommentInput{
			BlogID:     blogID,
			Body:       "orphan",
			ReplyingTo: &missing,
		})

		require.Error(t, err)
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindNotFound, domainErr.Kind)
		commentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ParentFromOtherBlog", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		parent := &domain.Comment{ID: uuid.New(), BlogID: uuid.New(), AuthorID: uuid.New()}
		blogRepo.On("LockByID", ctx, mock.Anything, blogID).Return(blog, nil).Once()
		commentRepo.On("GetForUpdate", ctx, mock.Anything, parent.ID).Return(parent, nil).Once()

		_, _, err := svc.Create(ctx, commenter, domain.CreateCommentInput{
			BlogID:     blogID,
			Body:       "cross post",
			ReplyingTo: &parent.ID,
		})

		require.Error(t, err)
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindValidation, domainErr.Kind)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		_, _, err := svc.Create(ctx, commenter, domain.CreateCommentInput{BlogID: blogID, Body: "   "})

		require.Error(t, err)
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindValidation, domainErr.Kind)
		blogRepo.AssertNotCalled(t, "LockByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	blogID := uuid.New()

	t.Run("CascadesDirectChildren", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		parentID := uuid.New()
		childA := uuid.New()
		childB := uuid.New()
		target := &domain.Comment{
			ID:       uuid.New(),
			BlogID:   blogID,
			AuthorID: owner,
			ParentID: &parentID,
			IsReply:  true,
			Children: []uuid.UUID{childA, childB},
		}

		commentRepo.On("GetByID", ctx, target.ID).Return(target, nil).Once()
		commentRepo.On("GetForUpdate", ctx, mock.Anything, target.ID).Return(target, nil).Once()
		commentRepo.On("RemoveChild", ctx, mock.Anything, parentID, target.ID).Return(nil).Once()
		commentRepo.On("DeleteByIDs", ctx, mock.Anything, []uuid.UUID{childA, childB}).Return(nil).Once()
		notifRepo.On("DeleteByCommentIDs", ctx, mock.Anything, []uuid.UUID{childA, childB, target.ID}).Return(nil).Once()
		commentRepo.On("Delete", ctx, mock.Anything, target.ID).Return(nil).Once()

		err := svc.Delete(ctx, owner, target.ID)

		require.NoError(t, err)
		commentRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		target := &domain.Comment{ID: uuid.New(), BlogID: blogID, AuthorID: owner}
		commentRepo.On("GetByID", ctx, target.ID).Return(target, nil).Once()

		err := svc.Delete(ctx, uuid.New(), target.ID)

		require.Error(t, err)
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindForbidden, domainErr.Kind)
		commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingComment", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		id := uuid.New()
		commentRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.Delete(ctx, owner, id)

		require.Error(t, err)
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindNotFound, domainErr.Kind)
	})
}

func TestCommentService_ListByBlog(t *testing.T) {
	ctx := context.Background()
	blogID := uuid.New()

	t.Run("AttachesLiveReplyCounts", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		first := domain.Comment{ID: uuid.New(), BlogID: blogID, Children: []uuid.UUID{uuid.New()}}
		second := domain.Comment{ID: uuid.New(), BlogID: blogID}

		commentRepo.On("ListTopLevel", ctx, blogID, 0, domain.CommentsPerPage).
			Return([]domain.Comment{first, second}, nil).Once()
		commentRepo.On("ReplyCounts", ctx, []uuid.UUID{first.ID, second.ID}).
			Return(map[uuid.UUID]int64{first.ID: 3}, nil).Once()
		commentRepo.On("CountTopLevel", ctx, blogID).Return(int64(12), nil).Once()

		page, err := svc.ListByBlog(ctx, blogID, 0)

		require.NoError(t, err)
		require.Len(t, page.Comments, 2)
		assert.Equal(t, int64(3), page.Comments[0].TotalReplies)
		assert.Equal(t, int64(0), page.Comments[1].TotalReplies)
		assert.Equal(t, int64(12), page.Pagination.Total)
		assert.True(t, page.Pagination.HasMore)
	})

	t.Run("EmptyBlogYieldsEmptyPage", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		commentRepo.On("ListTopLevel", ctx, blogID, 0, domain.CommentsPerPage).
			Return([]domain.Comment{}, nil).Once()
		commentRepo.On("CountTopLevel", ctx, blogID).Return(int64(0), nil).Once()

		page, err := svc.ListByBlog(ctx, blogID, 0)

		require.NoError(t, err)
		assert.NotNil(t, page.Comments)
		assert.Empty(t, page.Comments)
		assert.False(t, page.Pagination.HasMore)
	})

	t.Run("NegativeSkipClamped", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		commentRepo.On("ListTopLevel", ctx, blogID, 0, domain.CommentsPerPage).
			Return([]domain.Comment{}, nil).Once()
		commentRepo.On("CountTopLevel", ctx, blogID).Return(int64(0), nil).Once()

		_, err := svc.ListByBlog(ctx, blogID, -5)

		require.NoError(t, err)
		commentRepo.AssertExpectations(t)
	})
}

func TestCommentService_ListThread(t *testing.T) {
	ctx := context.Background()

	t.Run("RecursesOnlyIntoCommentsWithReplies", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		anchor := uuid.New()
		withReplies := domain.Comment{ID: uuid.New()}
		leaf := domain.Comment{ID: uuid.New()}
		nested := domain.Comment{ID: uuid.New()}

		commentRepo.On("ListReplies", ctx, anchor, 0, 5).
			Return([]domain.Comment{withReplies, leaf}, nil).Once()
		commentRepo.On("ReplyCounts", ctx, []uuid.UUID{withReplies.ID, leaf.ID}).
			Return(map[uuid.UUID]int64{withReplies.ID: 1}, nil).Once()

		commentRepo.On("ListReplies", ctx, withReplies.ID, 0, domain.ThreadChildPageSize).
			Return([]domain.Comment{nested}, nil).Once()
		commentRepo.On("ReplyCounts", ctx, []uuid.UUID{nested.ID}).
			Return(map[uuid.UUID]int64{}, nil).Once()

		commentRepo.On("CountReplies", ctx, anchor).Return(int64(2), nil).Once()

		page, err := svc.ListThread(ctx, anchor, 2, 0, 5)

		require.NoError(t, err)
		require.Len(t, page.Replies, 2)
		require.Len(t, page.Replies[0].Replies, 1)
		assert.Equal(t, nested.ID, page.Replies[0].Replies[0].ID)
		assert.Empty(t, page.Replies[1].Replies)
		commentRepo.AssertExpectations(t)
	})

	t.Run("DepthOneStaysShallow", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		blogRepo := new(mocks.BlogRepository)
		notifRepo := new(mocks.NotificationRepository)
		svc := newCommentService(commentRepo, blogRepo, notifRepo)

		anchor := uuid.New()
		reply := domain.Comment{ID: uuid.New()}

		commentRepo.On("ListReplies", ctx, anchor, 0, 5).
			Return([]domain.Comment{reply}, nil).Once()
		commentRepo.On("ReplyCounts", ctx, []uuid.UUID{reply.ID}).
			Return(map[uuid.UUID]int64{reply.ID: 4}, nil).Once()
		commentRepo.On("CountReplies", ctx, anchor).Return(int64(1), nil).Once()

		page, err := svc.ListThread(ctx, anchor, 1, 0, 5)

		require.NoError(t, err)
		require.Len(t, page.Replies, 1)
		assert.Equal(t, int64(4), page.Replies[0].TotalReplies)
		assert.Empty(t, page.Replies[0].Replies)
	})
}
