package routes

import (
	"net/http"

	"clementus360/goal-tracker/handlers"
)

func RegisterGenerateRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /api/generate", h.GenerateHandler)
}
