package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/config"
	"inkwell/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Blog         BlogService
	Comment      CommentService
	Notification NotificationService
	Media        MediaService
	Email        EmailService
}

func NewServices(repos *repository.Repositories, tx repository.TxManager, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, repos.Session, emailService, cfg)
	userService := NewUserService(repos.User)
	blogService := NewBlogService(repos.Blog, repos.Comment, repos.Notification, tx)
	commentService := NewCommentService(repos.Comment, repos.Blog, repos.Notification, repos.User, tx, redis, emailService)
	notificationService := NewNotificationService(repos.Notification)
	mediaService := NewMediaService(repos.User, repos.Blog, minioClient, cfg)

	return &Services{
		Auth:         authService,
		User:         userService,
		Blog:         blogService,
		Comment:      commentService,
		Notification: notificationService,
		Media:        mediaService,
		Email:        emailService,
	}
}
