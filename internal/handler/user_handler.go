package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wishlisted/internal/errors"
	"wishlisted/internal/service"
)

// UserHandler handles user registration, profile, and friend endpoints.
type UserHandler struct {
	userService   service.UserService
	friendService service.FriendService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, friendService service.FriendService) *UserHandler {
	return &UserHandler{userService: userService, friendService: friendService}
}

// RegisterRequest represents a new user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
}

// UpdateUserRequest represents a profile PATCH; absent fields stay untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Picture  *string `json:"picture"`
	IsActive *bool   `json:"isActive"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.PublicUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.Surname)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get public user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.PublicUser
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.GetPublicUser(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.PublicUser
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.PublicUser
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := requireSelf(c, id); err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), id, service.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Picture:  req.Picture,
		IsActive: req.IsActive,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete own account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]int64
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := requireSelf(c, id); err != nil {
		return err
	}

	affected, err := h.userService.Remove(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

// GetFriends godoc
// @Summary List a user's followings and followers
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} service.Friends
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/friends [get]
func (h *UserHandler) GetFriends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	friends, err := h.friendService.GetFriends(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, friends)
}

// AddFriend godoc
// @Summary Follow another user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{userId}/friends/{friendId} [post]
func (h *UserHandler) AddFriend(c echo.Context) error {
	userID, friendID, err := friendPathIDs(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, userID); err != nil {
		return err
	}

	if err := h.friendService.AddFriend(c.Request().Context(), userID, friendID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "friend added"})
}

// RemoveFriend godoc
// @Summary Unfollow another user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{userId}/friends/{friendId} [delete]
func (h *UserHandler) RemoveFriend(c echo.Context) error {
	userID, friendID, err := friendPathIDs(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, userID); err != nil {
		return err
	}

	if err := h.friendService.RemoveFriend(c.Request().Context(), userID, friendID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "friend removed"})
}

func friendPathIDs(c echo.Context) (uint, uint, error) {
	userID, err := pathID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return 0, 0, err
	}
	return userID, friendID, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// requireSelf rejects requests acting on a user other than the authenticated one.
func requireSelf(c echo.Context, id uint) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if claims.UserID != id {
		httpErr := errors.MapErrorToHTTP(errors.ErrNotOwner)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return nil
}
