package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mindfold-ai/mindfold/internal/service"
)

// ContextHandler gates and formats profile injection for chat prompts.
type ContextHandler struct {
	gate      *service.RelevanceGate
	formatter *service.Formatter
}

func NewContextHandler(gate *service.RelevanceGate, formatter *service.Formatter) *ContextHandler {
	return &ContextHandler{gate: gate, formatter: formatter}
}

type contextRequest struct {
	Message string `json:"message"`
}

type contextResponse struct {
	Inject  bool   `json:"inject"`
	Context string `json:"context"`
}

// GetContext returns the prompt-ready profile block for a message, or
// an empty block when the message does not warrant injection.
func (h *ContextHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if !h.gate.ShouldInjectContext(req.Message) {
		writeJSON(w, http.StatusOK, contextResponse{Inject: false, Context: ""})
		return
	}

	block, err := h.formatter.ContextBlock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build context")
		return
	}

	writeJSON(w, http.StatusOK, contextResponse{Inject: block != "", Context: block})
}
