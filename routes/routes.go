package routes

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/Bala-Chandrudu/project/handlers"
	"github.com/Bala-Chandrudu/project/middlewares"
	"github.com/Bala-Chandrudu/project/relay"
)

// Register wires all HTTP routes. The three route tiers mirror the three
// portal views: public auth (signed-out), /portal (applicant), /admin.
func Register(e *echo.Echo, rc *relay.Client) {
	auth := handlers.NewAuthHandler()
	leave := handlers.NewLeaveHandler(rc)
	admin := handlers.NewAdminHandler()

	e.GET("/health", handlers.Health)

	// ===== Public Auth =====
	e.POST("/auth/signup", auth.SignUp)
	e.POST("/auth/signin", auth.SignIn)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	authMW := middlewares.RequireAuth(secret)

	e.POST("/auth/signout", auth.SignOut, authMW)
	e.GET("/auth/session", auth.Session, authMW)

	// ===== Applicant routes =====
	portal := e.Group("/portal", authMW)
	portal.POST("/leave", leave.Create)
	portal.GET("/leave", leave.History)

	// ===== Admin routes (fail-closed) =====
	adm := e.Group("/admin", authMW, middlewares.RequireAdmin())
	adm.GET("/users", admin.ListUsers)
	adm.POST("/access-keys/validate", admin.ValidateAccessKey)
}
