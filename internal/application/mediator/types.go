package mediator

import "context"

// Request is a trading command or a read query; handlers are keyed by its
// concrete pointer type.
type Request any

// Response is whatever the handler returns, usually a *game.XxxResult
// or a query response struct.
type Response any

type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a plain function to the dispatch chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps dispatch for logging, metrics or session bookkeeping.
// It must call next exactly once unless it rejects the request.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
