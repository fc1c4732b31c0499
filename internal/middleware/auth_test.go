package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(handler gin.HandlerFunc, headers map[string]string) (*httptest.ResponseRecorder, bool, string) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	router := gin.New()

	reached := false
	var token string
	router.GET("/protected", handler, func(c *gin.Context) {
		reached = true
		token = TokenFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w, reached, token
}

func TestUserTokenRejectsMissingHeader(t *testing.T) {
	w, reached, _ := performRequest(UserToken(), nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestUserTokenRejectsEmptyHeader(t *testing.T) {
	w, reached, _ := performRequest(UserToken(), map[string]string{"user-token": ""})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestUserTokenAttachesTokenAndProceeds(t *testing.T) {
	w, reached, token := performRequest(UserToken(), map[string]string{"user-token": "T1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Equal(t, "T1", token)
}

func TestOptionalUserTokenProceedsWithoutHeader(t *testing.T) {
	w, reached, token := performRequest(OptionalUserToken(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Empty(t, token)
}

func TestOptionalUserTokenAttachesWhenPresent(t *testing.T) {
	_, _, token := performRequest(OptionalUserToken(), map[string]string{"user-token": "T1"})
	assert.Equal(t, "T1", token)
}

func TestRequireJSONRejectsNonJSONWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", RequireJSON(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_MEDIA_TYPE")
}

func TestRequireJSONAllowsJSONWritesAndReads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", RequireJSON(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/subjects", RequireJSON(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/subjects", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
