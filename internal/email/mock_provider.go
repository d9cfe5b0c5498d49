package email

import "sync"

// MockProvider - провайдер для тестов и локальной разработки.
// Складывает письма в память вместо отправки.
type MockProvider struct {
	mu   sync.Mutex
	sent []Message

	// FailNext заставляет следующий Send вернуть ошибку
	FailNext error
}

// NewMockProvider создает mock провайдер
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailNext != nil {
		err := p.FailNext
		p.FailNext = nil
		return err
	}

	p.sent = append(p.sent, *msg)
	return nil
}

func (p *MockProvider) Validate() error { return nil }
func (p *MockProvider) Close() error    { return nil }

// Sent возвращает копию отправленных писем
func (p *MockProvider) Sent() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Message, len(p.sent))
	copy(out, p.sent)
	return out
}
