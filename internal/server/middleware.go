package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	methodField    = "_method"
	overrideHeader = "X-HTTP-Method-Override"
	requestIDKey   = "X-Request-ID"
)

// methodOverride lets HTML forms issue PUT and DELETE by posting a
// _method field or the X-HTTP-Method-Override header.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get(overrideHeader)
			if method == "" {
				method = r.PostFormValue(methodField)
			}
			switch m := strings.ToUpper(method); m {
			case http.MethodPut, http.MethodDelete, http.MethodPatch:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument tags the request with an id, then logs and counts it.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDKey)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(requestIDKey, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := s.routeName(r)
		elapsed := time.Since(start)
		s.metrics.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		s.metrics.Duration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Info("Request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		)
	})
}

func (s *Server) routeName(r *http.Request) string {
	var match mux.RouteMatch
	if s.router.Match(r, &match) && match.MatchErr == nil && match.Route != nil {
		if name := match.Route.GetName(); name != "" {
			return name
		}
	}
	return "not_found"
}
