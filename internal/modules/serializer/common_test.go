package serializer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidationErr(t *testing.T) {
	res := ValidationErr(&service.ValidationError{
		Msg:    "Invalid user data",
		Fields: []service.FieldError{{Field: "email", Message: "is required"}},
	})
	assert.Equal(t, "Invalid user data", res.Message)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "email", res.Errors[0].Field)
}

func TestParamErr_Default(t *testing.T) {
	assert.Equal(t, "parameter error", ParamErr("").Message)
	assert.Empty(t, ParamErr("").Errors)
}

func TestInternal_HidesDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/projects", nil)

	Internal(c, "Failed to fetch projects", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")

	var body ErrorResponse
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch projects", body.Message)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "/api/projects", entry.ContextMap()["path"])
	assert.Equal(t, "pq: connection refused", entry.ContextMap()["error"])
}
