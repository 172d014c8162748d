package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments. Reading the comment
// section is public.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"comments": comments,
		"count":    len(comments),
	})
}

// CreateComment handles POST /api/posts/:id/comments. Requires a logged-in
// user; the route gate returns 401 before this runs for anonymous requests.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		AuthorID: currentUserID(c),
		PostID:   postID,
		Text:     req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
