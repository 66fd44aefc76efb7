package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"inkwell/internal/config"
)

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendCommentEmail(ctx context.Context, toEmail, recipientName, actorName, blogTitle string, isReply bool) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	subject := "Welcome to Inkwell!"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Welcome to Inkwell</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb;">

	<!-- Header -->
	<div style="background: linear-gradient(135deg, #6366f1 0%%, #4f46e5 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0; font-size: 28px;">
			Inkwell
		</h1>
		<p style="color: #e0e7ff; margin: 10px 0 0 0; font-size: 16px;">
			Write, read, and talk about what matters
		</p>
	</div>

	<!-- Content -->
	<div style="background-color: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">

		<h2 style="color: #111827; margin-top: 0;">
			Hi, %s!
		</h2>

		<p>
			Thanks for joining <strong>Inkwell</strong>. Your account is ready,
			so you can start publishing stories and joining the conversation.
		</p>

		<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<h3 style="margin-top: 0; color: #111827;">
				Account details
			</h3>
			<div style="margin-bottom: 10px;">
				<strong>Email:</strong> %s
			</div>
			<div>
				<strong>Name:</strong> %s
			</div>
		</div>

		<!-- Button -->
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s"
			   style="background-color: #6366f1; color: #ffffff; padding: 14px 28px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
				Sign in to your account
			</a>
		</div>

		<hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">

		<p style="font-size: 14px; color: #6b7280;">
			Happy writing,<br>
			<strong>The Inkwell Team</strong>
		</p>
	</div>

</body>
</html>`, fullName, toEmail, fullName, fmt.Sprintf("https://%s/signin", s.config.Domain))

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Inkwell <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *emailService) SendCommentEmail(ctx context.Context, toEmail, recipientName, actorName, blogTitle string, isReply bool) error {
	action := "commented on"
	if isReply {
		action = "replied to a comment on"
	}
	subject := fmt.Sprintf("%s %s your blog", actorName, action)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>New activity on your blog</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb;">

	<!-- Header -->
	<div style="background: linear-gradient(135deg, #6366f1 0%%, #4f46e5 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0; font-size: 28px;">
			Inkwell
		</h1>
	</div>

	<!-- Content -->
	<div style="background-color: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">

		<h2 style="color: #111827; margin-top: 0;">
			Hi, %s!
		</h2>

		<p>
			<strong>%s</strong> %s your blog <strong>%s</strong>.
		</p>

		<!-- Button -->
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s"
			   style="background-color: #6366f1; color: #ffffff; padding: 14px 28px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
				View the conversation
			</a>
		</div>

		<p style="font-size: 14px; color: #6b7280;">
			You receive these emails when someone comments on your blogs.
		</p>

		<hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">

		<p style="font-size: 14px; color: #6b7280;">
			Happy writing,<br>
			<strong>The Inkwell Team</strong>
		</p>
	</div>

</body>
</html>`, recipientName, actorName, action, blogTitle, fmt.Sprintf("https://%s/notifications", s.config.Domain))

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Inkwell <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
