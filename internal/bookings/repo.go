package bookings

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

const bookingColumns = `id::text, package_id::text, coalesce(package_title,''), tourist_email, coalesce(tourist_name,''), tour_guide, tour_date, price, status, created_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.PackageID, &b.PackageTitle, &b.TouristEmail, &b.TouristName,
		&b.TourGuide, &b.TourDate, &b.Price, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) Create(ctx context.Context, b *Booking) (*Booking, error) {
	q := `
insert into bookings (id, package_id, package_title, tourist_email, tourist_name, tour_guide, tour_date, price, status, created_at)
values ($1, $2, nullif($3,''), $4, nullif($5,''), $6, $7, $8, $9, now())
returning ` + bookingColumns + `;
`
	status := b.Status
	if status == "" {
		status = StatusPending
	}
	return scanBooking(r.db.QueryRow(ctx, q,
		uuid.New().String(), b.PackageID, b.PackageTitle, b.TouristEmail, b.TouristName,
		b.TourGuide, b.TourDate, b.Price, status))
}

// ByTourist lists bookings made by the given tourist email.
func (r *Repo) ByTourist(ctx context.Context, email string) ([]Booking, error) {
	q := `select ` + bookingColumns + ` from bookings where tourist_email = $1 order by created_at desc;`
	return r.queryBookings(ctx, q, email)
}

// ByGuide lists bookings assigned to the given guide email.
func (r *Repo) ByGuide(ctx context.Context, guideEmail string) ([]Booking, error) {
	q := `select ` + bookingColumns + ` from bookings where tour_guide = $1 order by created_at desc;`
	return r.queryBookings(ctx, q, guideEmail)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Booking, error) {
	q := `select ` + bookingColumns + ` from bookings where id = $1;`
	return scanBooking(r.db.QueryRow(ctx, q, id))
}

// UpdateFields patches the mutable booking fields; empty values keep the
// stored ones.
func (r *Repo) UpdateFields(ctx context.Context, id, status, tourDate, tourGuide string) (*Booking, error) {
	q := `
update bookings
set
  status = coalesce(nullif($2,''), status),
  tour_date = coalesce(nullif($3,''), tour_date),
  tour_guide = coalesce(nullif($4,''), tour_guide)
where id = $1
returning ` + bookingColumns + `;
`
	return scanBooking(r.db.QueryRow(ctx, q, id, status, tourDate, tourGuide))
}

// UpdateStatus sets only the status. Used by the assigned-tours flow.
func (r *Repo) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	q := `update bookings set status = $2 where id = $1 returning ` + bookingColumns + `;`
	return scanBooking(r.db.QueryRow(ctx, q, id, status))
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `delete from bookings where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) queryBookings(ctx context.Context, q string, args ...any) ([]Booking, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Booking, 0, 16)
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.PackageID, &b.PackageTitle, &b.TouristEmail, &b.TouristName,
			&b.TourGuide, &b.TourDate, &b.Price, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
