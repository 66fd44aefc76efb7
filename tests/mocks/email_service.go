package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendCommentEmail(ctx context.Context, toEmail, recipientName, actorName, blogTitle string, isReply bool) error {
	args := m.Called(ctx, toEmail, recipientName, actorName, blogTitle, isReply)
	return args.Error(0)
}
