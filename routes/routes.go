package routes

import (
	"net/http"

	"clementus360/goal-tracker/handlers"
	"clementus360/goal-tracker/middleware"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, h *handlers.Handler) {
	auth := middleware.AuthMiddleware(h)

	RegisterAuthRoutes(mux, h, auth)
	RegisterGoalRoutes(mux, h, auth)
	RegisterGenerateRoutes(mux, h)
}
