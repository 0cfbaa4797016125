package packages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthrough(c *gin.Context) { c.Next() }

// newPackageRouter wires the handler with a nil repo: every test below must
// be satisfied before the database would be touched.
func newPackageRouter(t *testing.T, cache *Cache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(nil, cache).Register(r, passthrough, passthrough)
	return r
}

func TestCreatePackage_MissingFields(t *testing.T) {
	cache, _ := newTestCache(t)
	r := newPackageRouter(t, cache)

	cases := []string{
		`{}`,
		`{"title":"Ella Rock Hike"}`,
		`{"title":"T","description":"D","tourType":"hiking","duration":"2 days","price":0,"images":["a"],"tourPlan":["day 1"]}`,
		`{"title":"T","description":"D","tourType":"hiking","duration":"2 days","price":100,"images":[],"tourPlan":["day 1"]}`,
		`{"title":"  ","description":"D","tourType":"hiking","duration":"2 days","price":100,"images":["a"],"tourPlan":["day 1"]}`,
		`not json`,
	}

	for _, body := range cases {
		req := httptest.NewRequest("POST", "/packages", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
		assert.Contains(t, rr.Body.String(), "Missing or invalid fields.")
	}
}

func TestGetPackage_InvalidID(t *testing.T) {
	cache, _ := newTestCache(t)
	r := newPackageRouter(t, cache)

	req := httptest.NewRequest("GET", "/packages/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid package ID.")
}

func TestUpdatePackage_InvalidID(t *testing.T) {
	cache, _ := newTestCache(t)
	r := newPackageRouter(t, cache)

	req := httptest.NewRequest("PUT", "/packages/123", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid package ID.")
}

func TestDeletePackage_InvalidID(t *testing.T) {
	cache, _ := newTestCache(t)
	r := newPackageRouter(t, cache)

	req := httptest.NewRequest("DELETE", "/packages/oops", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListPackages_ServedFromCache(t *testing.T) {
	cache, _ := newTestCache(t)
	require.NoError(t, cache.SetList(context.Background(), []TourPackage{
		{ID: "11111111-1111-1111-1111-111111111111", Title: "Ella Rock Hike"},
	}))

	// nil repo: a cache hit must never reach the database
	r := newPackageRouter(t, cache)

	req := httptest.NewRequest("GET", "/packages", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ella Rock Hike")
}

func TestRandomPackages_ServedFromFeaturedSnapshot(t *testing.T) {
	cache, _ := newTestCache(t)
	require.NoError(t, cache.SetFeatured(context.Background(), []TourPackage{
		{ID: "22222222-2222-2222-2222-222222222222", Title: "Galle Fort Walk"},
	}))

	r := newPackageRouter(t, cache)

	req := httptest.NewRequest("GET", "/packages/random", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Galle Fort Walk")
}

func TestPackageReq_Validate(t *testing.T) {
	valid := packageReq{
		Title:       "Ella Rock Hike",
		Images:      []string{"a.jpg"},
		Description: "Sunrise hike",
		TourType:    "hiking",
		Duration:    "2 days",
		Price:       120,
		TourPlan:    []string{"day 1"},
	}
	assert.True(t, valid.validate())

	negative := valid
	negative.Price = -1
	assert.False(t, negative.validate())

	noPlan := valid
	noPlan.TourPlan = nil
	assert.False(t, noPlan.validate())
}
