package stories

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func passthrough(c *gin.Context) { c.Next() }

// nil repo: validation failures must be caught before any query runs.
func newStoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(nil).Register(r, passthrough)
	return r
}

func TestCreateStory_MissingFields(t *testing.T) {
	r := newStoryRouter(t)

	cases := []string{
		`{}`,
		`{"title":"My Trip"}`,
		`{"title":"My Trip","text":"It was great","images":[],"userEmail":"u@gmail.com","userName":"U","userPhoto":"p.jpg"}`,
		`{"title":"My Trip","text":"It was great","images":["a.jpg"],"userEmail":"  ","userName":"U","userPhoto":"p.jpg"}`,
	}

	for _, body := range cases {
		req := httptest.NewRequest("POST", "/stories", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
		assert.Contains(t, rr.Body.String(), "Missing required fields")
	}
}

func TestUpdateStory_InvalidID(t *testing.T) {
	r := newStoryRouter(t)

	req := httptest.NewRequest("PUT", "/stories/abc", strings.NewReader(`{"title":"T","text":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid story ID.")
}

func TestUpdateStory_RequiresTitleAndText(t *testing.T) {
	r := newStoryRouter(t)

	req := httptest.NewRequest("PUT", "/stories/11111111-1111-1111-1111-111111111111", strings.NewReader(`{"title":"","text":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing required fields")
}

func TestDeleteStory_InvalidID(t *testing.T) {
	r := newStoryRouter(t)

	req := httptest.NewRequest("DELETE", "/stories/oops", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
