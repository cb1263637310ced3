package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appErrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/logger"
)

func newErrorContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/deal-rooms", nil)
	return c, w
}

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	restore := logger.Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestErrorLogsInternalCauseForServerErrors(t *testing.T) {
	logs := captureLogs(t)
	c, w := newErrorContext(t)

	Error(c, appErrors.FromError(errors.New("disk exploded")))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, appErrors.ErrInternalServer.Code, body.Error.Code)
	require.NotContains(t, w.Body.String(), "disk exploded")

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, appErrors.ErrInternalServer.Code, fields["code"])
	require.Equal(t, "/api/deal-rooms", fields["path"])
	require.Equal(t, "disk exploded", fields["error"])
}

func TestErrorStaysQuietForClientErrors(t *testing.T) {
	logs := captureLogs(t)
	c, w := newErrorContext(t)

	Error(c, appErrors.ErrNotFound.WithInternal(errors.New("record not found")))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Empty(t, logs.FilterMessage("request failed").All())
}
