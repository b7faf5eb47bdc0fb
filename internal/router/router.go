package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"wishlisted/internal/auth"
	"wishlisted/internal/config"
	"wishlisted/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	wishHandler *handler.WishHandler,
	mediaHandler *handler.MediaHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Register)
	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/users/:id/friends", userHandler.GetFriends)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/wishes/:userId", wishHandler.ListWishes)

	// Secured routes require a valid access token. Validation goes through
	// the JWT service so the middleware and the handlers agree on claims.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}))

	secured.POST("/auth/logout", authHandler.Logout)

	secured.PATCH("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)
	secured.POST("/users/:userId/friends/:friendId", userHandler.AddFriend)
	secured.DELETE("/users/:userId/friends/:friendId", userHandler.RemoveFriend)

	secured.POST("/wishes", wishHandler.CreateWish)
	secured.PATCH("/wishes/:id", wishHandler.UpdateWish)
	secured.DELETE("/wishes/:id", wishHandler.DeleteWish)
	secured.POST("/wishes/reserve/:id", wishHandler.ReserveWish)
	secured.POST("/wishes/cancel/:id", wishHandler.CancelReservation)

	secured.POST("/media/upload-url", mediaHandler.CreateUploadURL)
	secured.DELETE("/media/*", mediaHandler.DeleteFile)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
