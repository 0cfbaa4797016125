package stories

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

const storyColumns = `id::text, title, text, images, user_email, user_name, user_photo, created_at`

func scanStory(row pgx.Row) (*Story, error) {
	var s Story
	err := row.Scan(&s.ID, &s.Title, &s.Text, &s.Images, &s.UserEmail, &s.UserName, &s.UserPhoto, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, s *Story) (*Story, error) {
	q := `
insert into stories (id, title, text, images, user_email, user_name, user_photo, created_at)
values ($1, $2, $3, $4, $5, $6, $7, now())
returning ` + storyColumns + `;
`
	return scanStory(r.db.QueryRow(ctx, q,
		uuid.New().String(), s.Title, s.Text, s.Images, s.UserEmail, s.UserName, s.UserPhoto))
}

func (r *Repo) List(ctx context.Context) ([]Story, error) {
	q := `select ` + storyColumns + ` from stories order by created_at desc;`
	return r.queryStories(ctx, q)
}

// ByAuthor lists stories for one author; an empty email lists everything.
func (r *Repo) ByAuthor(ctx context.Context, email string) ([]Story, error) {
	q := `
select ` + storyColumns + `
from stories
where ($1 = '' or user_email = $1)
order by created_at desc;
`
	return r.queryStories(ctx, q, email)
}

// Latest returns the newest stories up to limit.
func (r *Repo) Latest(ctx context.Context, limit int) ([]Story, error) {
	q := `select ` + storyColumns + ` from stories order by created_at desc limit $1;`
	return r.queryStories(ctx, q, limit)
}

// Random samples up to limit stories.
func (r *Repo) Random(ctx context.Context, limit int) ([]Story, error) {
	q := `select ` + storyColumns + ` from stories order by random() limit $1;`
	return r.queryStories(ctx, q, limit)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Story, error) {
	q := `select ` + storyColumns + ` from stories where id = $1;`
	return scanStory(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) Update(ctx context.Context, s *Story) (*Story, error) {
	q := `
update stories
set
  title = $2,
  text = $3,
  images = $4,
  user_name = coalesce(nullif($5,''), user_name),
  user_photo = coalesce(nullif($6,''), user_photo)
where id = $1
returning ` + storyColumns + `;
`
	return scanStory(r.db.QueryRow(ctx, q, s.ID, s.Title, s.Text, s.Images, s.UserName, s.UserPhoto))
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `delete from stories where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) queryStories(ctx context.Context, q string, args ...any) ([]Story, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Story, 0, 16)
	for rows.Next() {
		var s Story
		if err := rows.Scan(&s.ID, &s.Title, &s.Text, &s.Images, &s.UserEmail, &s.UserName, &s.UserPhoto, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
