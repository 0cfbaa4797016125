package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const paymentColumns = `id::text, booking_id::text, email, amount, transaction_id, coalesce(package_title,''), created_at`

func (r *Repo) Create(ctx context.Context, p *Payment) (*Payment, error) {
	q := `
insert into payments (id, booking_id, email, amount, transaction_id, package_title, created_at)
values ($1, $2, $3, $4, $5, nullif($6,''), now())
returning ` + paymentColumns + `;
`
	var out Payment
	err := r.db.QueryRow(ctx, q,
		uuid.New().String(), p.BookingID, p.Email, p.Amount, p.TransactionID, p.PackageTitle).
		Scan(&out.ID, &out.BookingID, &out.Email, &out.Amount, &out.TransactionID, &out.PackageTitle, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// HistoryByEmail lists payments for one account, newest first.
func (r *Repo) HistoryByEmail(ctx context.Context, email string) ([]Payment, error) {
	q := `select ` + paymentColumns + ` from payments where email = $1 order by created_at desc;`

	rows, err := r.db.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0, 16)
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Email, &p.Amount, &p.TransactionID, &p.PackageTitle, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Total sums every recorded payment, in cents.
func (r *Repo) Total(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `select coalesce(sum(amount), 0) from payments;`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
