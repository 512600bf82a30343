package shoes

import (
	"context"
	"errors"
	"fmt"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shoeColumns = `id, name, retired_at, notes, retirement_notes, deleted_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns the shoes that are not deleted, ordered by name.
func (r *Repo) List(ctx context.Context) (_ []Shoe, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.shoes.list")
	defer func() { tracing.EndSpan(span, err) }()

	rows, err := r.db.Query(ctx, `SELECT `+shoeColumns+` FROM shoes WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	defer rows.Close()

	var shoes []Shoe
	for rows.Next() {
		shoe, err := scanShoe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shoe: %w", err)
		}
		shoes = append(shoes, shoe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shoes rows: %w", err)
	}
	return shoes, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Shoe, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.shoes.get")
	defer span.End()

	shoe, err := scanShoe(r.db.QueryRow(ctx, `SELECT `+shoeColumns+` FROM shoes WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("shoe", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get shoe %s: %w", id, err)
	}
	return &shoe, nil
}

func scanShoe(row pgx.Row) (Shoe, error) {
	var s Shoe
	err := row.Scan(&s.ID, &s.Name, &s.RetiredAt, &s.Notes, &s.RetirementNotes, &s.DeletedAt)
	return s, err
}
