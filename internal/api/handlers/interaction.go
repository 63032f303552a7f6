package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindfold-ai/mindfold/internal/service"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

type logInteractionRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags,omitempty"`
}

func (h *InteractionHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req logInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	interaction, err := h.svc.Log(r.Context(), req.Question, req.Answer, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionEmpty),
			errors.Is(err, service.ErrAnswerEmpty):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to log interaction")
		}
		return
	}

	writeJSON(w, http.StatusCreated, interaction)
}
