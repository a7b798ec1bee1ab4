package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func issueToken(t *testing.T, sub interface{}) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": "investor@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func performRequest(authHeader string) (*httptest.ResponseRecorder, int64, bool) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	var userId int64
	var ok bool

	r := gin.New()
	r.GET("/probe", JwtAuth(testSecret), func(c *gin.Context) {
		userId, ok = CurrentUserId(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w, userId, ok
}

func TestJwtAuth(t *testing.T) {
	t.Run("valid token exposes user id", func(t *testing.T) {
		w, userId, ok := performRequest("Bearer " + issueToken(t, "42"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ok)
		assert.Equal(t, int64(42), userId)
	})

	t.Run("numeric sub claim accepted", func(t *testing.T) {
		w, userId, ok := performRequest("Bearer " + issueToken(t, 42))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ok)
		assert.Equal(t, int64(42), userId)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w, _, _ := performRequest("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w, _, _ := performRequest("Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with wrong secret rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"})
		signed, err := token.SignedString([]byte("another-secret"))
		require.NoError(t, err)

		w, _, _ := performRequest("Bearer " + signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
