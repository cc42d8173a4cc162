package server

import (
	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/service"
	"photogram/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts with a multipart "image" file plus
// title/description fields.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file selected"))
	}

	filename, err := s.assets.Save(file, storage.CollectionPosts)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       storage.PublicURL(requestBaseURL(c), storage.CollectionPosts, filename),
	})
	if err != nil {
		_ = s.assets.Remove(storage.CollectionPosts, filename)
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts with page/pagination query parameters.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePage(c)

	posts, err := s.postService.ListPosts(c.Context(), page.Page, page.PageSize)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}

// GetPostCount handles GET /api/posts/count/max
func (s *Server) GetPostCount(c *fiber.Ctx) error {
	count, err := s.postService.CountPosts(c.Context())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// UpdatePost handles PUT /api/posts/:id. Body fields go through the
// allow-list; an optional multipart "image" file replaces the stored asset.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	updates, err := updatesFromRequest(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	var newImage string
	if file, err := c.FormFile("image"); err == nil {
		filename, err := s.assets.Save(file, storage.CollectionPosts)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		newImage = storage.PublicURL(requestBaseURL(c), storage.CollectionPosts, filename)
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		Actor:    middleware.CurrentUser(c),
		PostID:   id,
		Updates:  updates,
		NewImage: newImage,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id via the cascade.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.DeletePost(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}

// ToggleLike handles PUT /api/posts/likes/:id
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, err := s.postService.ToggleLike(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}

// ToggleFavorite handles PUT /api/posts/saved/:id
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, err := s.postService.ToggleFavorite(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}
