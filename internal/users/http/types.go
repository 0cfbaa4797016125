package http

import (
	"context"

	"github.com/triptale-app/triptale-backend/internal/users/domain"
)

// Store is the persistence surface the user handlers need.
// *repository.Repo implements it; tests use a fake.
type Store interface {
	Upsert(ctx context.Context, email, name, photo, requestedRole string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email, name, photo string) (*domain.User, error)
	UpdateRole(ctx context.Context, email, role string) (*domain.User, error)
	UpdateRoleByID(ctx context.Context, id, role string) (*domain.User, error)
	List(ctx context.Context, role string) ([]domain.User, error)
	AdminList(ctx context.Context, role, search string, page, limit int) ([]domain.User, int, error)
	RandomGuides(ctx context.Context, limit int) ([]domain.User, error)
}

type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}
