package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

type MediaService interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	UploadBlogBanner(ctx context.Context, userID, blogID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
}

type mediaService struct {
	userRepo    repository.UserRepository
	blogRepo    repository.BlogRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewMediaService(userRepo repository.UserRepository, blogRepo repository.BlogRepository, minioClient *minio.Client, cfg *config.Config) MediaService {
	return &mediaService{
		userRepo:    userRepo,
		blogRepo:    blogRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// UploadAvatar stores the image and persists its public URL on the user row.
// Old avatars are left in the bucket; objects are cheap and the URL embeds a
// fresh UUID so clients never see a stale cache.
func (s *mediaService) UploadAvatar(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if err := validateImageType(mimeType); err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("avatars/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectPath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	publicURL := s.getPublicURL(objectPath)
	if err := s.userRepo.UpdateAvatar(ctx, userID, publicURL); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectPath, minio.RemoveObjectOptions{})
		return "", err
	}

	return publicURL, nil
}

func (s *mediaService) UploadBlogBanner(ctx context.Context, userID, blogID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if err := validateImageType(mimeType); err != nil {
		return "", err
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return "", err
	}
	if blog == nil {
		return "", domain.NotFoundError("blog")
	}
	if blog.AuthorID != userID {
		return "", domain.ForbiddenError("you can only change banners on your own blogs")
	}

	objectPath := fmt.Sprintf("banners/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectPath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	publicURL := s.getPublicURL(objectPath)
	if err := s.blogRepo.UpdateBanner(ctx, blogID, publicURL); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectPath, minio.RemoveObjectOptions{})
		return "", err
	}

	return publicURL, nil
}

func (s *mediaService) getPublicURL(objectPath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(objectPath))
}

func validateImageType(mimeType string) error {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return nil
	}
	return domain.ValidationError("unsupported image type")
}
