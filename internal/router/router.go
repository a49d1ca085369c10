package router // package router wires HTTP routes to their handlers and middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/token"
)

// Handlers bundles everything route registration needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Internal *handler.InternalUserHandler
	Payments *handler.PaymentMethodHandler
	Codec    *token.Codec
}

// Register wires all routes.
//
// Session endpoints (/login, /reissue) bypass the request authenticator: they
// are the endpoints that create tokens. Everything under /api runs through
// it, and the routes operating on an existing account additionally require a
// caller identity. The /internal surface carries no end-user authentication;
// it is reachable only inside the trusted network.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)

	e.POST("/login", h.Auth.Login)
	e.POST("/reissue", h.Auth.Reissue)

	api := e.Group("/api", middleware.Authenticate(h.Codec))
	users := api.Group("/users")
	users.POST("", h.Users.Register) // open: registration needs no session

	owned := users.Group("/:id", middleware.RequireIdentity)
	owned.GET("", h.Users.Profile)
	owned.PUT("", h.Users.Update)
	owned.DELETE("", h.Users.Delete)
	owned.PUT("/password", h.Users.ChangePassword)

	methods := owned.Group("/payment-methods")
	methods.POST("", h.Payments.Register)
	methods.GET("", h.Payments.List)
	methods.DELETE("/:methodId", h.Payments.Delete)
	methods.PUT("/:methodId/default", h.Payments.SetDefault)

	internal := e.Group("/internal/api/users")
	internal.POST("", h.Internal.Register)
	internal.GET("/:userId", h.Internal.Lookup)
	internal.GET("/:userId/payment-methods/default", h.Internal.DefaultPaymentMethod)
}
