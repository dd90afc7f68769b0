package export

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Policy bounds repeated export attempts.
type Policy struct {
	Attempts int
	Backoff  time.Duration
	Max      time.Duration
}

// Delay returns pause before given attempt (attempt 0 is never delayed).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 || p.Backoff <= 0 {
		return 0
	}
	d := p.Backoff << (attempt - 1)
	if d <= 0 || (p.Max > 0 && d > p.Max) {
		d = p.Max
	}
	return d
}

// Transient reports whether export failed in a way that may go away on its
// own: transport errors including a single attempt timing out, rate limits
// and server errors. Malformed responses, client errors and cancellation are
// permanent. Expiration of the caller's context is checked by ExportWithRetry.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrEmptyBody) || errors.Is(err, ErrNotBinary) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	return true
}

// ExportWithRetry repeats Export with exponential backoff while failures are
// transient. Request is reused as is.
func (c *Client) ExportWithRetry(ctx context.Context, req *Request, p Policy) (*Result, error) {
	attempts := max(p.Attempts, 1)

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.Delay(attempt)):
			}
		}

		res, err := c.Export(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !Transient(err) {
			return nil, err
		}
		c.log.Warn("Transient export failure",
			zap.Int("attempt", attempt+1),
			zap.Int("attempts", attempts),
			zap.Error(err))
	}
	return nil, lastErr
}
