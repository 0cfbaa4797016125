package applications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("application not found")

// Application is a request to join the marketplace as a tour guide.
type Application struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Title     string    `json:"title,omitempty"`
	Reason    string    `json:"reason"`
	CVLink    string    `json:"cvLink,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const appColumns = `id::text, name, email, coalesce(title,''), reason, coalesce(cv_link,''), created_at`

func (r *Repo) Create(ctx context.Context, a *Application) (*Application, error) {
	q := `
insert into guide_applications (id, name, email, title, reason, cv_link, created_at)
values ($1, $2, $3, nullif($4,''), $5, nullif($6,''), now())
returning ` + appColumns + `;
`
	var out Application
	err := r.db.QueryRow(ctx, q, uuid.New().String(), a.Name, a.Email, a.Title, a.Reason, a.CVLink).
		Scan(&out.ID, &out.Name, &out.Email, &out.Title, &out.Reason, &out.CVLink, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) List(ctx context.Context) ([]Application, error) {
	q := `select ` + appColumns + ` from guide_applications order by created_at desc;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0, 16)
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Title, &a.Reason, &a.CVLink, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `delete from guide_applications where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
