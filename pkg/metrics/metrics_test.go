package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveProviderCall(t *testing.T) {
	before := testutil.ToFloat64(ProviderCalls.WithLabelValues("gemini", "chat", "error"))

	ObserveProviderCall("gemini", "chat", 10*time.Millisecond, errors.New("boom"))

	after := testutil.ToFloat64(ProviderCalls.WithLabelValues("gemini", "chat", "error"))
	assert.InDelta(t, before+1, after, 0.0001)
}

func TestHandlerExposesCollectors(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	ChatMessages.WithLabelValues("appended").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "learnpath_chat_messages_total")
}
