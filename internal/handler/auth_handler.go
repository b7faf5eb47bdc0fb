package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"wishlisted/internal/auth"
	"wishlisted/internal/errors"
	"wishlisted/internal/service"
)

const refreshCookieName = "refreshToken"

// AuthHandler handles login, logout, and refresh. The refresh token never
// appears in a response body; it travels in an httpOnly cookie.
type AuthHandler struct {
	authService  service.AuthService
	jwtService   *auth.JWTService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, jwtService *auth.JWTService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		jwtService:   jwtService,
		cookieSecure: cookieSecure,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the public user plus the access token.
type LoginResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Picture     string `json:"picture,omitempty"`
	AccessToken string `json:"accessToken"`
}

// RefreshResponse carries the new access token after a rotation.
type RefreshResponse struct {
	ID          uint   `json:"id"`
	AccessToken string `json:"accessToken"`
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.JSON(http.StatusOK, LoginResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Surname:     user.Surname,
		Picture:     user.Picture,
		AccessToken: pair.AccessToken,
	})
}

// Logout godoc
// @Summary Sign out the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	affected, err := h.authService.SignOut(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.clearRefreshCookie(c)

	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

// Refresh godoc
// @Summary Rotate the token pair using the refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [get]
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	claims, err := h.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	pair, err := h.authService.Refresh(c.Request().Context(), claims.Email, cookie.Value)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.JSON(http.StatusOK, RefreshResponse{
		ID:          claims.UserID,
		AccessToken: pair.AccessToken,
	})
}

// Cookie expiry tracks the token's own lifetime.
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.jwtService.RefreshTTL()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// currentClaims pulls the validated access token claims set by the jwt middleware.
func currentClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get("user").(*auth.Claims)
	return claims, ok
}
