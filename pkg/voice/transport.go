package voice

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs every hop of a request, redirects included. Cookie
// values never reach the log; only the names of cookies being set do.
type loggingTransport struct {
	next http.RoundTripper
}

func newLoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if _, ok := next.(*loggingTransport); ok {
		return next
	}
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		slog.Debug("HTTP hop failed",
			slog.String("method", req.Method),
			slog.String("host", req.URL.Host),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, err
	}

	attrs := []any{
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		names := make([]string, 0, len(cookies))
		for _, c := range cookies {
			names = append(names, c.Name)
		}
		attrs = append(attrs, slog.Any("set_cookie_names", names))
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		attrs = append(attrs, slog.String("location", loc))
	}
	slog.Debug("HTTP hop", attrs...)
	return resp, nil
}
