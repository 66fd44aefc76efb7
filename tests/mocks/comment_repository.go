package mocks

import (
	"context"

	"inkwell/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Insert(ctx context.Context, ext sqlx.ExtContext, comment *domain.Comment) error {
	args := m.Called(ctx, ext, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) GetForUpdate(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) AppendChild(ctx context.Context, ext sqlx.ExtContext, parentID, childID uuid.UUID) error {
	args := m.Called(ctx, ext, parentID, childID)
	return args.Error(0)
}

func (m *CommentRepository) RemoveChild(ctx context.Context, ext sqlx.ExtContext, parentID, childID uuid.UUID) error {
	args := m.Called(ctx, ext, parentID, childID)
	return args.Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) error {
	args := m.Called(ctx, ext, id)
	return args.Error(0)
}

func (m *CommentRepository) DeleteByIDs(ctx context.Context, ext sqlx.ExtContext, ids []uuid.UUID) error {
	args := m.Called(ctx, ext, ids)
	return args.Error(0)
}

func (m *CommentRepository) ListTopLevel(ctx context.Context, blogID uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	args := m.Called(ctx, blogID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	args := m.Called(ctx, parentID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) CountTopLevel(ctx context.Context, blogID uuid.UUID) (int64, error) {
	args := m.Called(ctx, blogID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) CountByBlog(ctx context.Context, ext sqlx.ExtContext, blogID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ext, blogID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) ReplyCounts(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}
