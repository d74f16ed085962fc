package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jflam/ai-starter-app-postgis/internal/apperror"
	"github.com/jflam/ai-starter-app-postgis/internal/logger"
	"github.com/jflam/ai-starter-app-postgis/internal/metrics"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	unmatchedRoute  = "unmatched"
	maxRequestIDLen = 128
)

const msgUnexpected = "An unexpected error occurred"

type errorResponse struct {
	Error *apperror.Error `json:"error"`
}

// RequestID keeps the X-Request-ID sent by the client, or generates one,
// and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// RequestLogger logs every request once it has been served.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		log.Log(c.Request.Context(), level, "Request served",
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		)
	}
}

// Metrics records request counts and latencies labeled by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ErrorHandler renders the last error attached to the context as
// {"error":{"code","message","fields"}}. Validation and not-found errors keep
// their status and message; everything else becomes a 500 whose message is
// hidden outside development profiles.
func ErrorHandler(log *slog.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		body := toResponse(err, env)

		if body.Status >= http.StatusInternalServerError {
			log.ErrorContext(c.Request.Context(), "Request failed",
				"request_id", c.GetString(ctxRequestID), "error", err)
		} else {
			log.InfoContext(c.Request.Context(), "Request rejected",
				"request_id", c.GetString(ctxRequestID), "code", body.Code, "error", err)
		}

		c.AbortWithStatusJSON(body.Status, errorResponse{Error: body})
	}
}

func toResponse(err error, env string) *apperror.Error {
	if appErr := apperror.From(err); appErr != nil {
		switch appErr.Code {
		case apperror.CodeValidation, apperror.CodeNotFound:
			return &apperror.Error{
				Status:  appErr.Status,
				Code:    appErr.Code,
				Message: appErr.Message,
				Fields:  appErr.Fields,
			}
		}
	}

	message := msgUnexpected
	if env == logger.EnvLocal || env == logger.EnvDev {
		message = err.Error()
	}

	return &apperror.Error{
		Status:  http.StatusInternalServerError,
		Code:    apperror.CodeInternal,
		Message: message,
	}
}
