package services

import (
	"context"
	"errors"
	"sync"

	"portfolio_backend/internal/email"
)

// fakeMailer records messages and fails for the addresses in failFor.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []*email.Email
	failFor map[string]bool
	// release, when set, holds every Send until it is closed or ctx ends
	release chan struct{}
	ctxErrs []error
}

func (m *fakeMailer) Send(ctx context.Context, e *email.Email) error {
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.failFor[e.To[0]] || m.failFor["*"] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *fakeMailer) Validate() error { return nil }
func (m *fakeMailer) Close() error    { return nil }

func (m *fakeMailer) Sent() map[string]*email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*email.Email, len(m.sent))
	for _, e := range m.sent {
		out[e.To[0]] = e
	}
	return out
}

func (m *fakeMailer) CtxErrs() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.ctxErrs...)
}
