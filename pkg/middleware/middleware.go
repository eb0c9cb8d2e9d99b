package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// RouteMiddleware wraps a single route's handler func.
type RouteMiddleware func(next http.HandlerFunc) http.HandlerFunc

// SetRouteChain applies route middlewares right-to-left, so the first
// middleware listed is the outermost.
func SetRouteChain(handler http.HandlerFunc, middlewares ...RouteMiddleware) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

// SetChain applies handler-level middlewares right-to-left.
func SetChain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

// HTTPResponseTraceInjection copies the active trace id onto the
// response so support can correlate a client report with traces.
func HTTPResponseTraceInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if sc := span.SpanContext(); sc.HasTraceID() {
			w.Header().Set("X-Trace-Id", sc.TraceID().String())
		}

		next.ServeHTTP(w, r)
	})
}
