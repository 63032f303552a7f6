package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mindfold-ai/mindfold/internal/service"
)

type SynthesizeHandler struct {
	svc *service.SynthesisService
}

func NewSynthesizeHandler(svc *service.SynthesisService) *SynthesizeHandler {
	return &SynthesizeHandler{svc: svc}
}

type synthesizeRequest struct {
	TransferSituation string `json:"transfer_situation,omitempty"`
}

func (h *SynthesizeHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RunSynthesis(r.Context(), req.TransferSituation)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoBeliefs):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrOracleFailure),
			errors.Is(err, service.ErrOracleResponse):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "synthesis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
