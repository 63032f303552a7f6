package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindfold-ai/mindfold/internal/service"
	"github.com/mindfold-ai/mindfold/internal/store"
)

func TestInteractionHandler_Log(t *testing.T) {
	episodic := store.NewEpisodicStore(filepath.Join(t.TempDir(), "episodic_log.jsonl"))
	h := NewInteractionHandler(service.NewInteractionService(episodic, zap.NewNop()))

	body := `{"question": "Where should the data live?", "answer": "On my own hardware, always."}`
	req := httptest.NewRequest(http.MethodPost, "/v1/interactions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Log(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["seq"])
	assert.Equal(t, "chat", resp["platform"])
}

func TestInteractionHandler_Log_MissingFields(t *testing.T) {
	episodic := store.NewEpisodicStore(filepath.Join(t.TempDir(), "episodic_log.jsonl"))
	h := NewInteractionHandler(service.NewInteractionService(episodic, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/v1/interactions", strings.NewReader(`{"question": "q"}`))
	rec := httptest.NewRecorder()

	h.Log(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newTestContextHandler(t *testing.T) *ContextHandler {
	t.Helper()
	dir := t.TempDir()
	beliefs := store.NewBeliefStore(filepath.Join(dir, "beliefs.json"))
	patterns := store.NewPatternStore(filepath.Join(dir, "cognitive_patterns.json"))
	tensions := store.NewTensionStore(filepath.Join(dir, "tensions.json"))
	formatter := service.NewFormatter(beliefs, patterns, tensions)
	return NewContextHandler(service.NewRelevanceGate(), formatter)
}

func TestContextHandler_GatedMessage(t *testing.T) {
	h := newTestContextHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/context", strings.NewReader(`{"message": "hi"}`))
	rec := httptest.NewRecorder()

	h.GetContext(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp contextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Inject)
	assert.Empty(t, resp.Context)
}

func TestContextHandler_SubstantiveMessageEmptyProfile(t *testing.T) {
	h := newTestContextHandler(t)

	body := `{"message": "Should I migrate my storage layer to a managed service given my current constraints?"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/context", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GetContext(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp contextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Gate passes, but with no stored profile there is nothing to inject.
	assert.False(t, resp.Inject)
}

func TestContextHandler_MissingMessage(t *testing.T) {
	h := newTestContextHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/context", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.GetContext(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
