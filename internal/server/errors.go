package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blockgrid/pkg/errors"
)

// errorResponse is the JSON body written for failed requests.
type errorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	if errors.IsFatalBuild(err) {
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// handlerFunc is like http.HandlerFunc but returns an error.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc into an http.HandlerFunc that logs and writes
// returned errors.
func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		status := statusFor(err)
		logger := s.Logger.With("job", JobID(r.Context()), "path", r.URL.Path)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "err", err)
		} else {
			logger.Warn("request rejected", "err", err)
		}

		if ww, ok := w.(middleware.WrapResponseWriter); ok && ww.Status() != 0 {
			// headers already sent
			return
		}
		writeJSON(s.Logger, w, status, errorResponse{
			Code:  string(errors.GetCode(err)),
			Error: errors.UserMessage(err),
		})
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(logger *log.Logger, w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("json marshal error", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}
