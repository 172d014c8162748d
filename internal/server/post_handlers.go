package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// GetPosts handles GET /api/posts. The index is public.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// GetPost handles GET /api/posts/:id. The detail view is public and carries
// the full comment section.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// CreatePost handles POST /api/posts (admin only).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id (admin only). The editor becomes the
// post's author.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		EditorID: currentUserID(c),
		PostID:   id,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (admin only). The post's comments
// go with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
