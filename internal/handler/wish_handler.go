package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"wishlisted/internal/auth"
	"wishlisted/internal/errors"
	"wishlisted/internal/service"
)

// WishHandler handles wish CRUD and the reserve/cancel endpoints.
type WishHandler struct {
	wishService service.WishService
	jwtService  *auth.JWTService
}

// NewWishHandler creates a new wish handler.
func NewWishHandler(wishService service.WishService, jwtService *auth.JWTService) *WishHandler {
	return &WishHandler{wishService: wishService, jwtService: jwtService}
}

// CreateWishRequest represents a new wish.
type CreateWishRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CanBeAnon   bool            `json:"canBeAnon"`
	IsHidden    bool            `json:"isHidden"`
	Picture     string          `json:"picture"`
}

// UpdateWishRequest represents a wish PATCH; absent fields stay untouched.
type UpdateWishRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CanBeAnon   *bool            `json:"canBeAnon"`
	IsHidden    *bool            `json:"isHidden"`
	Picture     *string          `json:"picture"`
}

// CreateWish godoc
// @Summary Create a wish
// @Tags wishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWishRequest true "Wish data"
// @Success 201 {object} service.WishView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /wishes [post]
func (h *WishHandler) CreateWish(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req CreateWishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wish, err := h.wishService.Create(c.Request().Context(), claims.UserID, service.CreateWishInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CanBeAnon:   req.CanBeAnon,
		IsHidden:    req.IsHidden,
		Picture:     req.Picture,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, wish)
}

// ListWishes godoc
// @Summary List a user's wishes and reservations
// @Tags wishes
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} service.WishLists
// @Router /wishes/{userId} [get]
func (h *WishHandler) ListWishes(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	lists, err := h.wishService.FindAll(c.Request().Context(), userID, h.viewerID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, lists)
}

// UpdateWish godoc
// @Summary Update an owned wish
// @Tags wishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Param request body UpdateWishRequest true "Fields to update"
// @Success 200 {object} service.WishView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/{id} [patch]
func (h *WishHandler) UpdateWish(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	wishID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateWishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	wish, err := h.wishService.Update(c.Request().Context(), claims.UserID, wishID, service.UpdateWishInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CanBeAnon:   req.CanBeAnon,
		IsHidden:    req.IsHidden,
		Picture:     req.Picture,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, wish)
}

// DeleteWish godoc
// @Summary Delete an owned wish
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Success 200 {object} map[string]int64
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/{id} [delete]
func (h *WishHandler) DeleteWish(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	wishID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	affected, err := h.wishService.Remove(c.Request().Context(), claims.UserID, wishID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

// ReserveWish godoc
// @Summary Reserve a wish for the authenticated user
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Success 200 {object} service.WishView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/reserve/{id} [post]
func (h *WishHandler) ReserveWish(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	wishID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	wish, err := h.wishService.Reserve(c.Request().Context(), claims.UserID, wishID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, wish)
}

// CancelReservation godoc
// @Summary Cancel the authenticated user's reservation
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Success 200 {object} service.WishView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/cancel/{id} [post]
func (h *WishHandler) CancelReservation(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	wishID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	wish, err := h.wishService.Cancel(c.Request().Context(), claims.UserID, wishID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, wish)
}

// viewerID identifies the caller on the public listing route. The route takes
// no auth, but a bearer token, when present and valid, deanonymizes the
// caller's own reservations.
func (h *WishHandler) viewerID(c echo.Context) uint {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return 0
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		return 0
	}
	return claims.UserID
}
