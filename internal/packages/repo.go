package packages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const pkgColumns = `id::text, title, images, description, tour_type, duration, price, tour_plan, created_at`

func scanPackage(row pgx.Row) (*TourPackage, error) {
	var p TourPackage
	err := row.Scan(&p.ID, &p.Title, &p.Images, &p.Description, &p.TourType, &p.Duration, &p.Price, &p.TourPlan, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, p *TourPackage) (*TourPackage, error) {
	q := `
insert into packages (id, title, images, description, tour_type, duration, price, tour_plan, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, now())
returning ` + pkgColumns + `;
`
	return scanPackage(r.db.QueryRow(ctx, q,
		uuid.New().String(), p.Title, p.Images, p.Description, p.TourType, p.Duration, p.Price, p.TourPlan))
}

func (r *Repo) List(ctx context.Context) ([]TourPackage, error) {
	q := `select ` + pkgColumns + ` from packages order by created_at desc;`
	return r.queryPackages(ctx, q)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*TourPackage, error) {
	q := `select ` + pkgColumns + ` from packages where id = $1;`
	return scanPackage(r.db.QueryRow(ctx, q, id))
}

// Random samples up to limit packages.
func (r *Repo) Random(ctx context.Context, limit int) ([]TourPackage, error) {
	if limit < 1 {
		limit = 3
	}
	q := `select ` + pkgColumns + ` from packages order by random() limit $1;`
	return r.queryPackages(ctx, q, limit)
}

func (r *Repo) Update(ctx context.Context, id string, p *TourPackage) (*TourPackage, error) {
	q := `
update packages
set title = $2, images = $3, description = $4, tour_type = $5, duration = $6, price = $7, tour_plan = $8
where id = $1
returning ` + pkgColumns + `;
`
	return scanPackage(r.db.QueryRow(ctx, q,
		id, p.Title, p.Images, p.Description, p.TourType, p.Duration, p.Price, p.TourPlan))
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `delete from packages where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) queryPackages(ctx context.Context, q string, args ...any) ([]TourPackage, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TourPackage, 0, 16)
	for rows.Next() {
		var p TourPackage
		if err := rows.Scan(&p.ID, &p.Title, &p.Images, &p.Description, &p.TourType, &p.Duration, &p.Price, &p.TourPlan, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
