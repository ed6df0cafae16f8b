package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// RequestLogger attaches the global logger to each request context and emits
// one access line per request. It expects chi's RequestID middleware to run
// first.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			var ev *zerolog.Event
			switch {
			case status >= 500:
				ev = hlog.FromRequest(r).Error()
			case status >= 400:
				ev = hlog.FromRequest(r).Warn()
			default:
				ev = hlog.FromRequest(r).Info()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
		return hlog.NewHandler(log.Logger)(access(next))
	}
}
