package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mindfold-ai/mindfold/internal/service"
)

type ReflectHandler struct {
	svc *service.ReflectionService
}

func NewReflectHandler(svc *service.ReflectionService) *ReflectHandler {
	return &ReflectHandler{svc: svc}
}

type reflectRequest struct {
	Window int `json:"window,omitempty"`
}

func (h *ReflectHandler) Reflect(w http.ResponseWriter, r *http.Request) {
	var req reflectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	beliefs, err := h.svc.RunReflection(r.Context(), req.Window)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyWindow):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrOracleFailure):
			writeError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, service.ErrOracleResponse):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "reflection failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"beliefs": beliefs,
		"count":   len(beliefs),
	})
}
