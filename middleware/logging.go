package middleware

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
)

// Logger writes one log line per request once the handler has returned.
func Logger(logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}

	// Lines go through logger rather than the writer so its prefix and flags apply.
	format := func(_ io.Writer, p handlers.LogFormatterParams) {
		logger.Printf("%s %s %d %s request_id=%s",
			p.Request.Method, p.URL.Path, p.StatusCode,
			time.Since(p.TimeStamp).Round(time.Microsecond), RequestIDFromContext(p.Request.Context()))
	}

	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(logger.Writer(), next, format)
	}
}
