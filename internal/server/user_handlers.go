package server

import (
	"photogram/internal/models"
	"photogram/internal/service"
	"photogram/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users with an optional ?username= substring filter.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context(), c.Query("username"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// GetUserByUsername handles GET /api/users/username/:username, returning
// the profile with owned and saved posts.
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return nil
	}

	updates, err := updatesFromRequest(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		TargetID: id,
		Updates:  updates,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// ChangePassword handles PUT /api/users/:id/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return nil
	}

	var req struct {
		Password           string `json:"password"`
		NewPassword        string `json:"newPassword"`
		ConfirmNewPassword string `json:"confirmNewPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:             id,
		CurrentPassword:    req.Password,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// UpdateAvatar handles PUT /api/users/:id/avatar with a multipart "avatar"
// file.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return nil
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file selected"))
	}

	filename, err := s.assets.Save(file, storage.CollectionAvatars)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	uri := storage.PublicURL(requestBaseURL(c), storage.CollectionAvatars, filename)
	user, err := s.userService.ChangeAvatar(c.Context(), id, uri)
	if err != nil {
		_ = s.assets.Remove(storage.CollectionAvatars, filename)
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id, cascading over the user's
// posts, comments, likes, favorites, and assets.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		return nil
	}

	user, err := s.userService.DeleteUser(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}
