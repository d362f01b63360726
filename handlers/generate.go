package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/llm"
	"clementus360/goal-tracker/types"
)

const maxPromptBytes = 1 << 20

// GenerateHandler proxies a prompt to the configured LLM provider.
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.generator.Ready(); err != nil {
		writeJSON(w, http.StatusInternalServerError, types.GenerateResponse{Error: err.Error()})
		return
	}

	var req types.GenerateRequest
	if err := decodeGenerate(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, types.GenerateResponse{Error: "Prompt is required."})
		return
	}

	text, err := h.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			config.Logger.WithField("status", upstream.StatusCode).Warn("LLM provider rejected request")
			writeJSON(w, upstream.StatusCode, types.GenerateResponse{Error: upstream.Body})
			return
		}
		config.Logger.WithError(err).Error("LLM request failed")
		writeJSON(w, http.StatusInternalServerError, types.GenerateResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, types.GenerateResponse{Text: text})
}

func decodeGenerate(r *http.Request, into *types.GenerateRequest) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxPromptBytes)).Decode(into)
}
