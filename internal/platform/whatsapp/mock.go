package whatsapp

import (
	"context"
	"fmt"
	"sync"
)

// MockSender records sends for tests. When ShouldFail is set, every send
// reports a provider failure.
type MockSender struct {
	mu         sync.Mutex
	ShouldFail bool
	sent       []MockCall
}

type MockCall struct {
	Phone   string
	Message string
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) SendText(_ context.Context, phone, message string) SendResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, MockCall{Phone: phone, Message: message})

	if m.ShouldFail {
		return SendResult{Success: false, Error: "mock provider failure"}
	}
	return SendResult{Success: true, MessageID: fmt.Sprintf("mock-%d", len(m.sent))}
}

// Calls returns a copy of everything sent so far.
func (m *MockSender) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.sent))
	copy(out, m.sent)
	return out
}
