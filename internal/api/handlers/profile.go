package handlers

import (
	"net/http"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

// ProfileHandler serves read-only views of the stored profile.
type ProfileHandler struct {
	beliefs  domain.BeliefStore
	patterns domain.PatternStore
	tensions domain.TensionStore
}

func NewProfileHandler(beliefs domain.BeliefStore, patterns domain.PatternStore, tensions domain.TensionStore) *ProfileHandler {
	return &ProfileHandler{beliefs: beliefs, patterns: patterns, tensions: tensions}
}

func (h *ProfileHandler) GetBeliefs(w http.ResponseWriter, r *http.Request) {
	beliefs, err := h.beliefs.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load beliefs")
		return
	}
	count, err := h.beliefs.ReflectionCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load beliefs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"beliefs":          beliefs,
		"count":            len(beliefs),
		"reflection_count": count,
	})
}

func (h *ProfileHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	doc, err := h.patterns.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load patterns")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ProfileHandler) GetTensions(w http.ResponseWriter, r *http.Request) {
	tensions, err := h.tensions.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load tensions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tensions": tensions,
		"count":    len(tensions),
	})
}
