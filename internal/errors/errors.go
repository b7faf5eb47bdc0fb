package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user cannot be resolved by id or email.
	ErrUserNotFound = errors.New("User not found")
	// ErrFriendNotFound is returned when the friend id does not resolve to a user.
	ErrFriendNotFound = errors.New("Friend not found")
	// ErrWishNotFound is returned when a wish cannot be resolved by id.
	ErrWishNotFound = errors.New("Wish not found")
	// ErrUserAlreadyExists is returned on registration with a taken email.
	ErrUserAlreadyExists = errors.New("User already exist")
	// ErrWishAlreadyReserved is returned when reserving a wish with a reserver set.
	ErrWishAlreadyReserved = errors.New("Wish is already reserved")
	// ErrWishNotReserved is returned when cancelling a wish with no reserver.
	ErrWishNotReserved = errors.New("Wish is not reserved")
	// ErrNotReserver is returned when a cancel comes from someone other than the reserver.
	ErrNotReserver = errors.New("User is not the reserver")
	// ErrBadCredentials is returned when the email/password pair does not verify.
	ErrBadCredentials = errors.New("Bad credentials")
	// ErrSelfFriend is returned when a user tries to follow themself.
	ErrSelfFriend = errors.New("Cannot follow yourself")
	// ErrNotOwner is returned when a mutation comes from someone other than the owner.
	ErrNotOwner = errors.New("User is not the owner")
	// ErrInvalidToken is returned for missing, malformed, or rotated-out tokens.
	ErrInvalidToken = errors.New("Invalid token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrWishNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "WISH_NOT_FOUND")
	case errors.Is(err, ErrFriendNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FRIEND_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrWishAlreadyReserved):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WISH_ALREADY_RESERVED")
	case errors.Is(err, ErrWishNotReserved):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WISH_NOT_RESERVED")
	case errors.Is(err, ErrNotReserver):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_RESERVER")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrBadCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "BAD_CREDENTIALS")
	case errors.Is(err, ErrSelfFriend):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_FRIEND")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
