package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	process "github.com/s-larionov/process-manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitDefaultHandler(t *testing.T) {
	t.Run("running manager reports ok", func(t *testing.T) {
		handler := DefaultHandler(process.NewManager())

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"service":"openchain-ir"`)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("missing manager is unavailable", func(t *testing.T) {
		handler := DefaultHandler(nil)

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
