package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// setSessionCookie attaches the signed session token to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessions.TTL()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Signup handles POST /api/auth/signup. A successful registration logs the
// new user straight in; registering an email that already has an account
// returns a conflict pointing at the login form.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.authService.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	s.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":    token,
		"user":     user,
		"redirect": "/",
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.authService.Login(c.Context(), service.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	s.setSessionCookie(c, token)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token":    token,
		"user":     user,
		"redirect": "/",
	})
}

// Logout handles POST /api/auth/logout. Logging out while not logged in
// succeeds the same way.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.Context(), sessionToken(c)); err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	s.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"redirect": "/",
	})
}

// CurrentUser handles GET /api/auth/me. It reports the logged-in identity,
// or logged_in: false for anonymous requests, so the frontend can pick which
// navigation links to render.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"logged_in": false,
		})
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		// The session outlived the account; treat it as anonymous.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"logged_in": false,
		})
	}
	user.Avatar = user.GravatarURL()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"logged_in": true,
		"user":      user,
		"is_admin":  user.IsAdmin(),
	})
}
