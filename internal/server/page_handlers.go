package server

import (
	"github.com/gofiber/fiber/v2"
)

// AboutPage handles GET /api/pages/about.
func (s *Server) AboutPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"title":   "About Me",
		"heading": "Hi, I write about things here.",
		"body":    "This is the about page of the blog.",
	})
}

// ContactPage handles GET /api/pages/contact.
func (s *Server) ContactPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"title":   "Contact Me",
		"heading": "Have questions? I have answers.",
		"body":    "Reach out and say hello.",
	})
}
