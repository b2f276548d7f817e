package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Logging logs every call with its method, duration and outcome.
func Logging(logger *log.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (any, error) {
			start := time.Now()
			result, err := next(ctx, req)

			if err != nil {
				logger.Warn("call failed", "id", req.ID, "method", req.Method, "took", time.Since(start), "error", err)
			} else {
				logger.Debug("call", "id", req.ID, "method", req.Method, "took", time.Since(start))
			}
			return result, err
		}
	}
}

// Recover turns a panic inside a handler into an error response.
func Recover(logger *log.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panicked", "id", req.ID, "method", req.Method, "panic", r)
					result, err = nil, fmt.Errorf("internal error in %s", req.Method)
				}
			}()
			return next(ctx, req)
		}
	}
}
