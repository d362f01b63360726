package routes

import (
	"net/http"

	"clementus360/goal-tracker/handlers"
)

// RegisterAuthRoutes registers account routes. Signup and login are public.
func RegisterAuthRoutes(mux *http.ServeMux, h *handlers.Handler, auth func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /auth/signup", h.SignupHandler)
	mux.HandleFunc("POST /auth/login", h.LoginHandler)

	mux.Handle("POST /auth/logout", auth(http.HandlerFunc(h.LogoutHandler)))
	mux.Handle("GET /auth/me", auth(http.HandlerFunc(h.MeHandler)))
	mux.Handle("PATCH /auth/profile", auth(http.HandlerFunc(h.UpdateProfileHandler)))
	mux.Handle("POST /auth/password", auth(http.HandlerFunc(h.ChangePasswordHandler)))
}
