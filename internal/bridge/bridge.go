package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// DefaultChannel is the only channel allowed unless configured otherwise.
const DefaultChannel = "get-videos"

// Request is one invocation read from the shell.
type Request struct {
	ID      string            `json:"id"`
	Channel string            `json:"channel"`
	Method  string            `json:"method"`
	Args    []json.RawMessage `json:"args"`
}

// Response answers exactly one [Request].
//
// Result is null for rejected channels and for failed calls.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Handler runs one method call.
type Handler func(ctx context.Context, req *Request) (any, error)

// Middleware wraps a Handler and returns a new Handler with additional behavior.
type Middleware func(Handler) Handler

// Bridge routes requests on allowed channels to registered handlers.
type Bridge struct {
	channels    map[string]struct{}
	handlers    map[string]Handler
	middlewares []Middleware
	logger      *log.Logger
}

// New creates a Bridge accepting the given channels. No channels means [DefaultChannel] only.
func New(channels []string, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	if len(channels) == 0 {
		channels = []string{DefaultChannel}
	}

	allowed := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		allowed[ch] = struct{}{}
	}

	return &Bridge{
		channels:    allowed,
		handlers:    map[string]Handler{},
		middlewares: []Middleware{},
		logger:      logger,
	}
}

// Use adds [Middleware] to the stack, applied in the order it's added.
//
// Only handlers registered afterwards are wrapped.
func (b *Bridge) Use(middleware ...Middleware) {
	b.middlewares = append(b.middlewares, middleware...)
}

// Handle registers a [Handler] for method, wrapped with all registered middleware.
func (b *Bridge) Handle(method string, handler Handler) {
	b.handlers[method] = b.Apply(handler)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (b *Bridge) Apply(handler Handler) Handler {
	wrapped := handler

	for i := len(b.middlewares) - 1; i >= 0; i-- {
		wrapped = b.middlewares[i](wrapped)
	}

	return wrapped
}

// Allowed reports whether requests on channel are dispatched.
func (b *Bridge) Allowed(channel string) bool {
	_, ok := b.channels[channel]
	return ok
}

// Invoke dispatches req and returns its response.
//
// A request on a channel outside the allow list is dropped with a null result and no error.
func (b *Bridge) Invoke(ctx context.Context, req *Request) Response {
	if req.ID == "" {
		req.ID = shared.GenerateID()
	}
	resp := Response{ID: req.ID}

	if !b.Allowed(req.Channel) {
		b.logger.Debug("channel rejected", "id", req.ID, "channel", req.Channel)
		return resp
	}

	handler, ok := b.handlers[req.Method]
	if !ok {
		resp.Error = fmt.Errorf("%w: unknown method %q", shared.ErrInvalidInput, req.Method).Error()
		return resp
	}

	result, err := handler(ctx, req)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.Result = result
	return resp
}
