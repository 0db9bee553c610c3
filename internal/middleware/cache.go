package middleware

// cache.go implements a Redis-backed response cache for GET endpoints.
// The catalog listings (destinations, flights, hotels) are read far more
// often than they change, so successful GET responses are stored for a
// short TTL keyed by path and query string.  When Redis is unavailable
// the middleware is a pass-through; a cache failure must never fail a
// request.

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/flightagency/backend/internal/config"
)

// cachedResponse is the envelope stored in Redis.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder tees the response body so it can be stored after the
// handler runs.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// ResponseCache returns a middleware that serves GET responses from Redis
// when possible.  Only 200 responses up to cfg.MaxBodyBytes are stored.
// A nil client or a disabled config disables caching entirely.
func ResponseCache(client *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cfg.Prefix + ":" + c.Request().URL.Path
			if q := c.Request().URL.RawQuery; q != "" {
				key += "?" + q
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
			defer cancel()
			if raw, err := client.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && rec.buf.Len() <= cfg.MaxBodyBytes {
				entry, err := json.Marshal(cachedResponse{
					Status:      rec.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        rec.buf.Bytes(),
				})
				if err == nil {
					// best effort; ignore store failures
					sctx, scancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
					defer scancel()
					_ = client.Set(sctx, key, entry, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}
