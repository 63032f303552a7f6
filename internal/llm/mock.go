package llm

import (
	"context"
)

// OracleCall records one invocation of the mock oracle.
type OracleCall struct {
	Prompt      string
	Temperature float32
}

// MockOracle is a configurable oracle for testing. Responses are
// consumed in order; the last one repeats once the queue is exhausted.
type MockOracle struct {
	Responses []string
	Err       error

	// Call tracking for assertions
	Calls []OracleCall
}

func NewMockOracle(responses ...string) *MockOracle {
	return &MockOracle{Responses: responses}
}

func (m *MockOracle) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.Calls = append(m.Calls, OracleCall{Prompt: prompt, Temperature: temperature})
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := len(m.Calls) - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}

// Reset clears all recorded calls and configured responses.
func (m *MockOracle) Reset() {
	m.Responses = nil
	m.Err = nil
	m.Calls = nil
}
