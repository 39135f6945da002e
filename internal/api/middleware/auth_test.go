package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	call := func(header string) (int64, bool) {
		var (
			userID int64
			found  bool
		)
		handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, found = GetUserID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("X-User-ID", header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		return userID, found
	}

	t.Run("валидный заголовок попадает в контекст", func(t *testing.T) {
		userID, found := call("42")
		require.True(t, found)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("без заголовка пользователя нет", func(t *testing.T) {
		_, found := call("")
		assert.False(t, found)
	})

	t.Run("нечисловой заголовок игнорируется", func(t *testing.T) {
		_, found := call("not-a-number")
		assert.False(t, found)
	})
}
