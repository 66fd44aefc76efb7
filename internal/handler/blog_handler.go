package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

type BlogHandler struct {
	blogService  service.BlogService
	mediaService service.MediaService
}

func NewBlogHandler(blogService service.BlogService, mediaService service.MediaService) *BlogHandler {
	return &BlogHandler{
		blogService:  blogService,
		mediaService: mediaService,
	}
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateBlogInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	blog, err := h.blogService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

func (h *BlogHandler) GetByID(c *fiber.Ctx) error {
	blogID, err := uuid.Parse(c.Params("blogId"))
	if err != nil {
		return middleware.BadRequest("Invalid blog ID")
	}

	blog, err := h.blogService.GetByID(c.Context(), blogID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(blog)
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.blogService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BlogHandler) ToggleLike(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	blogID, err := uuid.Parse(c.Params("blogId"))
	if err != nil {
		return middleware.BadRequest("Invalid blog ID")
	}

	result, err := h.blogService.ToggleLike(c.Context(), blogID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BlogHandler) UploadBanner(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	blogID, err := uuid.Parse(c.Params("blogId"))
	if err != nil {
		return middleware.BadRequest("Invalid blog ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if file.Size > 10*1024*1024 {
		return middleware.BadRequest("File size must be less than 10MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	bannerURL, err := h.mediaService.UploadBlogBanner(c.Context(), userID, blogID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"banner_url": bannerURL,
	})
}
