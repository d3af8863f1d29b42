package handler

import (
	"errors"
	"net/http"

	"github.com/dappwork/marketplace/internal/modules/serializer"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/dappwork/marketplace/internal/pkg/jsonbody"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterValidation makes gin's binding validator report fields by their JSON or query name.
func RegisterValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(service.FieldName)
	}
}

// writeError maps a service error onto the response. failMsg is what clients see for
// anything that is neither a validation nor a not-found failure.
func writeError(c *gin.Context, err error, failMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		serializer.Abort(c, http.StatusBadRequest, serializer.ValidationErr(verr))
	case errors.Is(err, service.ErrNotFound):
		serializer.Abort(c, http.StatusNotFound, serializer.NotFound(err.Error()))
	default:
		serializer.Internal(c, failMsg, err)
	}
}

// bindError reports a binding or decoding failure as a 400.
func bindError(c *gin.Context, msg string, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		serializer.Abort(c, http.StatusBadRequest, serializer.ValidationErr(service.FromValidator(msg, verrs)))
		return
	}
	serializer.Abort(c, http.StatusBadRequest, serializer.ParamErr(msg, service.FieldError{Field: "body", Message: err.Error()}))
}

// decodeCreate reads a create payload. Unknown fields are ignored.
func decodeCreate(c *gin.Context, msg string, dst any) bool {
	if err := jsonbody.Decode(c.Request.Body, dst); err != nil {
		bindError(c, msg, err)
		return false
	}
	return true
}

// decodePatch reads a partial update. Unknown fields are rejected so that
// immutable or misspelled fields never pass silently.
func decodePatch(c *gin.Context, msg string, dst any) bool {
	if err := jsonbody.DecodeStrict(c.Request.Body, dst); err != nil {
		bindError(c, msg, err)
		return false
	}
	return true
}

// pathID parses the uuid path parameter name.
func pathID(c *gin.Context, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		serializer.Abort(c, http.StatusBadRequest, serializer.ParamErr(msg, service.FieldError{Field: name, Message: "must be a UUID"}))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses a query value that passed the uuid binding rule.
func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
