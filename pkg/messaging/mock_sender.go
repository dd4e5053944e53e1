package messaging

// MockSender is a Sender that records every message, for tests.
type MockSender struct {
	Messages []*ExecutionMessage
}

// NewMockSender creates a new MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// SendExecutionMessage stores the message.
func (m *MockSender) SendExecutionMessage(msg *ExecutionMessage) error {
	m.Messages = append(m.Messages, msg)
	return nil
}

// Close does nothing.
func (m *MockSender) Close() error {
	return nil
}

// Reset drops the recorded messages.
func (m *MockSender) Reset() {
	m.Messages = nil
}

// Ensure MockSender implements Sender
var _ Sender = (*MockSender)(nil)
