package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptale-app/triptale-backend/internal/auth"
	"github.com/triptale-app/triptale-backend/internal/auth/middleware"
	"github.com/triptale-app/triptale-backend/internal/users/domain"
)

type fakeStore struct {
	users map[string]*domain.User

	upsertEmail   string
	upsertRole    string
	profileName   string
	profilePhoto  string
	roleUpdates   int
	profileCalls  int
	adminListPage int
	adminListSize int
}

func newFakeStore(users ...*domain.User) *fakeStore {
	s := &fakeStore{users: map[string]*domain.User{}}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeStore) Upsert(ctx context.Context, email, name, photo, requestedRole string) (*domain.User, error) {
	s.upsertEmail = email
	s.upsertRole = requestedRole
	u, ok := s.users[email]
	if !ok {
		u = &domain.User{Email: email, Name: name, Photo: photo, Role: domain.SignupRole(requestedRole)}
		s.users[email] = u
	}
	return u, nil
}

func (s *fakeStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeStore) UpdateProfile(ctx context.Context, email, name, photo string) (*domain.User, error) {
	s.profileCalls++
	s.profileName = name
	s.profilePhoto = photo
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = name
	u.Photo = photo
	return u, nil
}

func (s *fakeStore) UpdateRole(ctx context.Context, email, role string) (*domain.User, error) {
	s.roleUpdates++
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

func (s *fakeStore) UpdateRoleByID(ctx context.Context, id, role string) (*domain.User, error) {
	s.roleUpdates++
	for _, u := range s.users {
		if u.ID == id {
			u.Role = role
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeStore) List(ctx context.Context, role string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeStore) AdminList(ctx context.Context, role, search string, page, limit int) ([]domain.User, int, error) {
	s.adminListPage = page
	s.adminListSize = limit
	all, _ := s.List(ctx, role)
	return all, len(all), nil
}

func (s *fakeStore) RoleOf(ctx context.Context, email string) (string, error) {
	u, ok := s.users[email]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return u.Role, nil
}

func (s *fakeStore) RandomGuides(ctx context.Context, limit int) ([]domain.User, error) {
	guides, _ := s.List(ctx, domain.RoleGuide)
	if len(guides) > limit {
		guides = guides[:limit]
	}
	return guides, nil
}

func identityAs(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.SetIdentity(c, auth.Identity{Email: email})
		c.Next()
	}
}

func newUserRouter(store *fakeStore, callerEmail string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authn := identityAs(callerEmail)
	New(store).Register(r, authn, middleware.RequireOwner("email"), middleware.RequireAdmin(store))
	return r
}

func TestUpsert_EmailFromCredentialNotBody(t *testing.T) {
	store := newFakeStore()
	r := newUserRouter(store, "real@gmail.com")

	body := `{"email":"spoofed@gmail.com","name":"Mallory","role":"tourist"}`
	req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "real@gmail.com", store.upsertEmail)
	_, spoofed := store.users["spoofed@gmail.com"]
	assert.False(t, spoofed)
}

func TestUpsert_EmptyBodyAllowed(t *testing.T) {
	store := newFakeStore()
	r := newUserRouter(store, "real@gmail.com")

	req := httptest.NewRequest("POST", "/users", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "real@gmail.com", store.upsertEmail)
}

func TestGetByEmail_NotFound(t *testing.T) {
	store := newFakeStore()
	r := newUserRouter(store, "real@gmail.com")

	req := httptest.NewRequest("GET", "/users/nobody@gmail.com", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "User not found")
}

func TestUpdateProfile_IgnoresRoleKey(t *testing.T) {
	user := &domain.User{Email: "me@gmail.com", Name: "Old", Role: domain.RoleTourist}
	store := newFakeStore(user)
	r := newUserRouter(store, "me@gmail.com")

	body := `{"name":"New Name","photo":"p.jpg","role":"admin"}`
	req := httptest.NewRequest("PATCH", "/users/me@gmail.com", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, domain.RoleTourist, user.Role, "profile updates must never change the role")
	assert.Zero(t, store.roleUpdates)
}

func TestUpdateProfile_OtherUserForbidden(t *testing.T) {
	victim := &domain.User{Email: "victim@gmail.com", Name: "Victim"}
	store := newFakeStore(victim)
	r := newUserRouter(store, "attacker@gmail.com")

	body := `{"name":"Pwned"}`
	req := httptest.NewRequest("PATCH", "/users/victim@gmail.com", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Zero(t, store.profileCalls, "store must not be touched on an ownership miss")
	assert.Equal(t, "Victim", victim.Name)
}

func TestAdminRoutes_NonAdminForbidden(t *testing.T) {
	caller := &domain.User{Email: "tourist@gmail.com", Role: domain.RoleTourist}
	target := &domain.User{Email: "target@gmail.com", Role: domain.RoleTourist}
	store := newFakeStore(caller, target)
	r := newUserRouter(store, "tourist@gmail.com")

	body := `{"role":"admin"}`
	req := httptest.NewRequest("PATCH", "/admin/updateRole/target@gmail.com", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Zero(t, store.roleUpdates)
	assert.Equal(t, domain.RoleTourist, target.Role)
}

func TestUpdateRoleByEmail_AdminSucceeds(t *testing.T) {
	admin := &domain.User{Email: "admin@gmail.com", Role: domain.RoleAdmin}
	target := &domain.User{Email: "target@gmail.com", Role: domain.RoleTourist}
	store := newFakeStore(admin, target)
	r := newUserRouter(store, "admin@gmail.com")

	body := `{"role":"guide"}`
	req := httptest.NewRequest("PATCH", "/admin/updateRole/target@gmail.com", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.RoleGuide, target.Role)
}

func TestUpdateRoleByEmail_InvalidRole(t *testing.T) {
	admin := &domain.User{Email: "admin@gmail.com", Role: domain.RoleAdmin}
	target := &domain.User{Email: "target@gmail.com", Role: domain.RoleTourist}
	store := newFakeStore(admin, target)
	r := newUserRouter(store, "admin@gmail.com")

	body := `{"role":"overlord"}`
	req := httptest.NewRequest("PATCH", "/admin/updateRole/target@gmail.com", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, store.roleUpdates)
}

func TestAdminList_PagingDefaults(t *testing.T) {
	admin := &domain.User{Email: "admin@gmail.com", Role: domain.RoleAdmin}
	store := newFakeStore(admin)
	r := newUserRouter(store, "admin@gmail.com")

	req := httptest.NewRequest("GET", "/admin/users", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, store.adminListPage)
	assert.Equal(t, 10, store.adminListSize)

	req = httptest.NewRequest("GET", "/admin/users?page=3&limit=25", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, store.adminListPage)
	assert.Equal(t, 25, store.adminListSize)
}

func TestProfile_ProjectsPublicFields(t *testing.T) {
	user := &domain.User{
		Email: "me@gmail.com",
		Name:  "Me",
		Photo: "me.jpg",
		Role:  domain.RoleGuide,
	}
	store := newFakeStore(user)
	r := newUserRouter(store, "me@gmail.com")

	req := httptest.NewRequest("GET", "/users/profile/me@gmail.com", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Me", body["name"])
	assert.Equal(t, "me@gmail.com", body["email"])
	assert.NotContains(t, body, "role")
}

// The full role lifecycle against one store: sign-in creates a tourist,
// an admin promotes them to guide, and a later self-service profile edit
// carrying a role key leaves the promotion untouched.
func TestRoleLifecycle_SignupPromoteSelfEdit(t *testing.T) {
	admin := &domain.User{Email: "admin@gmail.com", Role: domain.RoleAdmin}
	store := newFakeStore(admin)

	asNewbie := newUserRouter(store, "newbie@gmail.com")
	asAdmin := newUserRouter(store, "admin@gmail.com")

	// first sign-in
	req := httptest.NewRequest("POST", "/users", strings.NewReader(`{"name":"Newbie"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	asNewbie.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, domain.RoleTourist, store.users["newbie@gmail.com"].Role)

	// admin promotes to guide
	req = httptest.NewRequest("PATCH", "/admin/updateRole/newbie@gmail.com", strings.NewReader(`{"role":"guide"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	asAdmin.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, domain.RoleGuide, store.users["newbie@gmail.com"].Role)

	// self-service edit smuggling a role key
	req = httptest.NewRequest("PATCH", "/users/newbie@gmail.com", strings.NewReader(`{"name":"Still Newbie","role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	asNewbie.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "Still Newbie", store.users["newbie@gmail.com"].Name)
	assert.Equal(t, domain.RoleGuide, store.users["newbie@gmail.com"].Role, "profile edit must not touch the promoted role")
}

func TestRandomGuides_LimitFallback(t *testing.T) {
	store := newFakeStore(
		&domain.User{Email: "g1@gmail.com", Role: domain.RoleGuide},
		&domain.User{Email: "g2@gmail.com", Role: domain.RoleGuide},
	)
	r := newUserRouter(store, "")

	req := httptest.NewRequest("GET", "/guides/random?limit=bogus", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
