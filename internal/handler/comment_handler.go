package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, totalComments, err := h.commentService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"comment":        comment,
		"total_comments": totalComments,
	})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), userID, commentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":            true,
		"deleted_comment_id": commentID,
	})
}

func (h *CommentHandler) ListByBlog(c *fiber.Ctx) error {
	blogID, err := uuid.Parse(c.Params("blogId"))
	if err != nil {
		return middleware.BadRequest("Invalid blog ID")
	}

	skip := c.QueryInt("skip", 0)

	page, err := h.commentService.ListByBlog(c.Context(), blogID, skip)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"comments":   page.Comments,
		"pagination": page.Pagination,
	})
}

func (h *CommentHandler) ListReplies(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	skip := c.QueryInt("skip", 0)

	page, err := h.commentService.ListReplies(c.Context(), parentID, skip)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"replies":    page.Replies,
		"pagination": page.Pagination,
	})
}

func (h *CommentHandler) ListThread(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", domain.CommentsPerPage)
	maxDepth := c.QueryInt("max_depth", 2)
	if maxDepth > 5 {
		maxDepth = 5
	}

	page, err := h.commentService.ListThread(c.Context(), parentID, maxDepth, skip, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"replies":    page.Replies,
		"pagination": page.Pagination,
	})
}
