package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wishlisted/internal/errors"
	"wishlisted/internal/service"
)

// MediaHandler hands out presigned upload URLs and deletes uploaded pictures.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadURLResponse carries the storage key and the presigned PUT URL.
type UploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// CreateUploadURL godoc
// @Summary Get a presigned URL for a picture upload
// @Tags media
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UploadURLResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /media/upload-url [post]
func (h *MediaHandler) CreateUploadURL(c echo.Context) error {
	if _, ok := currentClaims(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	key, url, err := h.mediaService.CreateUploadURL(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create upload url")
	}
	return c.JSON(http.StatusOK, UploadURLResponse{Key: key, URL: url})
}

// DeleteFile godoc
// @Summary Delete an uploaded picture and clear the profile reference
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param key path string true "Storage key"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /media/{key} [delete]
func (h *MediaHandler) DeleteFile(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	// Storage keys contain slashes, so the route uses a wildcard.
	key := c.Param("*")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing key")
	}

	if err := h.mediaService.DeleteFile(c.Request().Context(), claims.UserID, key); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "file deleted"})
}
