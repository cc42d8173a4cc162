// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"encoding/json"
	"errors"

	"photogram/internal/models"
	"photogram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds the parsed page/pagination query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// parsePage extracts the "page" and "pagination" query parameters. Missing
// or non-positive values fall back to the first page and the default size.
func parsePage(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}
	size := c.QueryInt("pagination", service.DefaultPageSize)
	if size <= 0 {
		size = service.DefaultPageSize
	}
	return Pagination{Page: page, PageSize: size}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// mapServiceError translates a service-layer error into the HTTP status the
// API contract prescribes. Ownership violations surface as NOT_FOUND and
// map to 404; authentication failures keep the legacy 501.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeValidation, models.CodeConflict, models.CodeInvalidCredentials:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthenticated:
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

// requestBaseURL reconstructs the public base URL of the request, used to
// build asset URIs.
func requestBaseURL(c *fiber.Ctx) string {
	return c.Protocol() + "://" + string(c.Request().Host())
}

// updatesFromRequest extracts the update fields of a PUT request as a flat
// string map. Multipart requests contribute their form values; otherwise the
// body is decoded as a flat JSON object. The full key set is returned so the
// allow-list check sees every field the client sent.
func updatesFromRequest(c *fiber.Ctx) (map[string]string, error) {
	updates := make(map[string]string)

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for key, values := range form.Value {
			if len(values) > 0 {
				updates[key] = values[0]
			}
		}
		return updates, nil
	}

	if len(c.Body()) == 0 {
		return updates, nil
	}
	if err := json.Unmarshal(c.Body(), &updates); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}
	return updates, nil
}
