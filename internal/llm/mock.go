package llm

import (
	"context"
	"encoding/json"
	"sync"
)

const mockModelID = "mock"

// MockResponse is one scripted step for a MockProvider: either canned
// quiz JSON (with usage numbers) or an error to inject.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is the in-memory Provider behind the "mock" config
// value. It replays its script in order and records every request, so
// tests can assert on the prompts the quiz generator builds. Safe for
// concurrent use.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	next  int

	// Calls holds every request seen, in order.
	Calls []Request
}

// NewMockProvider creates a MockProvider scripted with the given
// responses.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{queue: script}
}

// AddResponse appends one step to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// Generate replays the next scripted step. An exhausted script behaves
// like an unreachable backend.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.next >= len(m.queue) {
		return nil, &ErrProviderUnavailable{}
	}
	step := m.queue[m.next]
	m.next++

	if step.Err != nil {
		return nil, step.Err
	}
	return &Response{
		Content:    step.Content,
		Usage:      step.Usage,
		Model:      mockModelID,
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return mockModelID }

// CallCount returns how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
