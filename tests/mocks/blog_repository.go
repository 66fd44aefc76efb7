package mocks

import (
	"context"

	"inkwell/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type BlogRepository struct {
	mock.Mock
}

func (m *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogRepository) LockByID(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*domain.Blog, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *BlogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Blog, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *BlogRepository) UpdateBanner(ctx context.Context, id uuid.UUID, bannerURL string) error {
	args := m.Called(ctx, id, bannerURL)
	return args.Error(0)
}

func (m *BlogRepository) HasLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ext, blogID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *BlogRepository) InsertLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) error {
	args := m.Called(ctx, ext, blogID, userID)
	return args.Error(0)
}

func (m *BlogRepository) DeleteLike(ctx context.Context, ext sqlx.ExtContext, blogID, userID uuid.UUID) error {
	args := m.Called(ctx, ext, blogID, userID)
	return args.Error(0)
}

func (m *BlogRepository) CountLikes(ctx context.Context, ext sqlx.ExtContext, blogID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ext, blogID)
	return args.Get(0).(int64), args.Error(1)
}
