package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triptale-app/triptale-backend/internal/users/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const userColumns = `id::text, email, coalesce(name,''), coalesce(photo,''), role, created_at, last_login`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Photo, &u.Role, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Upsert inserts a user on first sign-in or refreshes name/photo/last_login
// on a repeat sign-in. The role column is written only on insert; a repeat
// sign-in can never change it, whatever the payload asked for.
func (r *Repo) Upsert(ctx context.Context, email, name, photo, requestedRole string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email required")
	}

	q := `
insert into users (email, name, photo, role, created_at, last_login)
values ($1, nullif($2,''), nullif($3,''), $4, now(), now())
on conflict (email) do update
set
  name = coalesce(nullif(excluded.name,''), users.name),
  photo = coalesce(nullif(excluded.photo,''), users.photo),
  last_login = now()
returning ` + userColumns + `;
`
	role := domain.SignupRole(requestedRole)
	return scanUser(r.db.QueryRow(ctx, q, email, name, photo, role))
}

// GetByEmail fetches one user.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `select ` + userColumns + ` from users where email = $1;`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

// RoleOf returns the stored role for email. Used by the admin guard, which
// needs a fresh read on every request.
func (r *Repo) RoleOf(ctx context.Context, email string) (string, error) {
	var role string
	err := r.db.QueryRow(ctx, `select role from users where email = $1;`, email).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	return role, nil
}

// UpdateProfile changes name/photo for email. Role is deliberately not part
// of this statement; role changes go through UpdateRole only.
func (r *Repo) UpdateProfile(ctx context.Context, email, name, photo string) (*domain.User, error) {
	q := `
update users
set
  name = coalesce(nullif($2,''), name),
  photo = coalesce(nullif($3,''), photo)
where email = $1
returning ` + userColumns + `;
`
	return scanUser(r.db.QueryRow(ctx, q, email, name, photo))
}

// UpdateRole sets the role for email.
func (r *Repo) UpdateRole(ctx context.Context, email, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	q := `update users set role = $2 where email = $1 returning ` + userColumns + `;`
	return scanUser(r.db.QueryRow(ctx, q, email, role))
}

// UpdateRoleByID sets the role for a user id.
func (r *Repo) UpdateRoleByID(ctx context.Context, id, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	q := `update users set role = $2 where id = $1 returning ` + userColumns + `;`
	return scanUser(r.db.QueryRow(ctx, q, id, role))
}

// List returns users, optionally filtered by role.
func (r *Repo) List(ctx context.Context, role string) ([]domain.User, error) {
	q := `
select ` + userColumns + `
from users
where ($1 = '' or role = $1)
order by created_at desc;
`
	return r.queryUsers(ctx, q, role)
}

// AdminList returns one page of users plus the total count for the filter.
// Search matches name or email, case-insensitively.
func (r *Repo) AdminList(ctx context.Context, role, search string, page, limit int) ([]domain.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := `
where ($1 = '' or role = $1)
  and ($2 = '' or name ilike '%' || $2 || '%' or email ilike '%' || $2 || '%')
`
	var total int
	if err := r.db.QueryRow(ctx, `select count(*) from users `+filter, role, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `select ` + userColumns + ` from users ` + filter + `
order by created_at desc
limit $3 offset $4;
`
	users, err := r.queryUsers(ctx, q, role, search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// RandomGuides samples up to limit users with the guide role.
func (r *Repo) RandomGuides(ctx context.Context, limit int) ([]domain.User, error) {
	if limit < 1 {
		limit = 6
	}
	q := `
select ` + userColumns + `
from users
where role = $1
order by random()
limit $2;
`
	return r.queryUsers(ctx, q, domain.RoleGuide, limit)
}

func (r *Repo) queryUsers(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, 16)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Photo, &u.Role, &u.CreatedAt, &u.LastLogin); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
