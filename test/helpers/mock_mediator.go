package helpers

import (
	"context"
	"reflect"
	"sync"

	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
)

// RecordingMediator captures every request sent through it
type RecordingMediator struct {
	mu       sync.Mutex
	Requests []mediator.Request

	// SendErr, when set, is returned by Send
	SendErr error
}

// NewRecordingMediator creates an empty recording mediator
func NewRecordingMediator() *RecordingMediator {
	return &RecordingMediator{}
}

// Send records the request
func (m *RecordingMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, request)
	return nil, m.SendErr
}

// Register is a no-op
func (m *RecordingMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// Use is a no-op
func (m *RecordingMediator) Use(middleware mediator.Middleware) {}

// Sent returns a copy of the recorded requests
func (m *RecordingMediator) Sent() []mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mediator.Request(nil), m.Requests...)
}
