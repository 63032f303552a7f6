package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/ingest"
)

type IngestHandler struct {
	svc *ingest.Service
}

func NewIngestHandler(svc *ingest.Service) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type ingestRequest struct {
	Content    string `json:"content"`
	Platform   string `json:"platform,omitempty"`
	Filename   string `json:"filename,omitempty"`
	UserHandle string `json:"user_handle,omitempty"`
}

// Ingest accepts a raw data export and normalizes it into the episodic
// log. The platform may be given explicitly or detected from the
// filename and content; detection failure is a client error.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	platform := domain.Platform(req.Platform)
	if req.Platform == "" {
		detected, err := ingest.DetectPlatform(req.Filename, req.Content)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not detect platform; specify it explicitly")
			return
		}
		platform = detected
	}

	result, err := h.svc.Ingest(r.Context(), req.Content, platform, req.UserHandle)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnknownPlatform),
			errors.Is(err, ingest.ErrUnreadableInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "ingestion failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
