// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs handler failures with request context and renders the
// matching error page.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err at Error level and renders a 500 page showing
// userMsg. The internal error text is never shown to the viewer.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	el.Log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderServerError(w, r, userMsg, backURL)
}

// LogNotFound logs at Info level and renders a 404 page showing userMsg.
func (el *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	fields := []zap.Field{zap.String("path", r.URL.Path)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	el.Log.Info(msg, fields...)
	RenderNotFound(w, r, userMsg, backURL)
}
