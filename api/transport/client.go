package transport

import (
	"net/http"
	"time"

	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/logging"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Middleware wraps a RoundTripper, the client-side mirror of a gin handler chain.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain applies middlewares so the first one listed sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// NewHTTPClient builds the client used for every session service call.
// Redirects are not followed: the join endpoint answers with one and the
// cookie it sets is the payload.
func NewHTTPClient(timeout time.Duration, authToken string) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Chain(http.DefaultTransport, RequestIDMiddleware(), AuthTokenMiddleware(authToken), LoggingMiddleware()),
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// RequestIDMiddleware tags each request so client and service logs line up.
func RequestIDMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(models.HeaderRequestID) != "" {
				return next.RoundTrip(r)
			}
			id, err := gonanoid.Generate(requestIDAlphabet, 12)
			if err != nil {
				logging.Log.Warnf("API: failed to generate request id: %v", err)
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set(models.HeaderRequestID, id)
			return next.RoundTrip(r)
		})
	}
}

// AuthTokenMiddleware sends the owner's token; an empty token sends nothing.
func AuthTokenMiddleware(token string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if token == "" {
			return next
		}
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			r.Header.Set(models.HeaderAuthToken, token)
			return next.RoundTrip(r)
		})
	}
}

func LoggingMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			res, err := next.RoundTrip(r)
			id := r.Header.Get(models.HeaderRequestID)
			if err != nil {
				logging.Log.Debugf("API: %s %s [%s] failed after %s: %v", r.Method, r.URL.Path, id, time.Since(start), err)
				return nil, err
			}
			logging.Log.Debugf("API: %s %s [%s] -> %d in %s", r.Method, r.URL.Path, id, res.StatusCode, time.Since(start))
			return res, nil
		})
	}
}
