package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptale-app/triptale-backend/internal/auth"
)

func passthrough(c *gin.Context) { c.Next() }

func newTokenRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(tokens).Register(r, passthrough)
	return r
}

func TestIssueToken_ReturnsParseableToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	r := newTokenRouter(tokens)

	body := `{"email":"user@gmail.com","role":"guide"}`
	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", claims.Email)
	assert.Equal(t, "guide", claims.Role)
}

func TestIssueToken_RequiresEmail(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	r := newTokenRouter(tokens)

	for _, body := range []string{`{}`, `{"email":"  "}`, `not json`} {
		req := httptest.NewRequest("POST", "/jwt", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
	}
}

func TestIssueToken_TrimsEmail(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	r := newTokenRouter(tokens)

	body := `{"email":"  user@gmail.com  ","role":"tourist"}`
	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", claims.Email)
}
