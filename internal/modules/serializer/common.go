package serializer

import (
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger sets the logger used to record internal errors before they are hidden from clients.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string               `json:"message" example:"Invalid project data"`
	Errors  []service.FieldError `json:"errors,omitempty"`
	TraceID string               `json:"traceId,omitempty"`
}

// Success acknowledges a write that has nothing else to return.
type Success struct {
	Success bool `json:"success" example:"true"`
}

func OK() Success { return Success{Success: true} }

// ParamErr
func ParamErr(msg string, fields ...service.FieldError) ErrorResponse {
	if msg == "" {
		msg = "parameter error"
	}
	return ErrorResponse{Message: msg, Errors: fields}
}

// ValidationErr
func ValidationErr(verr *service.ValidationError) ErrorResponse {
	return ErrorResponse{Message: verr.Msg, Errors: verr.Fields}
}

// NotFound
func NotFound(msg string) ErrorResponse {
	if msg == "" {
		msg = "not found"
	}
	return ErrorResponse{Message: msg}
}

// InternalErr logs err with the request path and returns a body that carries only msg.
func InternalErr(c *gin.Context, msg string, err error) ErrorResponse {
	if msg == "" {
		msg = "internal server error"
	}
	traceID := telemetry.TraceID(c.Request.Context())
	logger.Error(msg,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("trace_id", traceID),
		zap.Error(err))
	return ErrorResponse{Message: msg, TraceID: traceID}
}

// Abort writes res with status and stops the handler chain.
func Abort(c *gin.Context, status int, res ErrorResponse) {
	c.AbortWithStatusJSON(status, res)
}

// Internal is shorthand for a 500 built by InternalErr.
func Internal(c *gin.Context, msg string, err error) {
	Abort(c, http.StatusInternalServerError, InternalErr(c, msg, err))
}
