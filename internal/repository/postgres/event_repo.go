package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"deveventhub/internal/domain"
	"deveventhub/internal/platform/database"
)

const eventColumns = `id, slug, title, description, overview, image, venue, location, date, time, mode, audience, organizer, tags, agenda, created_at, updated_at`

type eventRepository struct {
	dbp database.Provider
}

func NewEventRepository(dbp database.Provider) domain.EventRepository {
	return &eventRepository{dbp: dbp}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &e.Description, &e.Overview, &e.Image,
		&e.Venue, &e.Location, &e.Date, &e.Time, &e.Mode, &e.Audience,
		&e.Organizer, pq.Array(&e.Tags), pq.Array(&e.Agenda),
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (id, slug, title, description, overview, image, venue, location, date, time, mode, audience, organizer, tags, agenda, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = db.ExecContext(ctx, query,
		e.ID, e.Slug, e.Title, e.Description, e.Overview, e.Image,
		e.Venue, e.Location, e.Date, e.Time, e.Mode, e.Audience,
		e.Organizer, pq.Array(e.Tags), pq.Array(e.Agenda),
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM events WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')`
	if err := db.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		ORDER BY date, time, slug
		LIMIT $2 OFFSET $3
	`
	rows, err := db.QueryContext(ctx, query, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE events
		SET slug = $1, title = $2, description = $3, overview = $4, image = $5,
		    venue = $6, location = $7, date = $8, time = $9, mode = $10,
		    audience = $11, organizer = $12, tags = $13, agenda = $14, updated_at = $15
		WHERE id = $16
	`
	result, err := db.ExecContext(ctx, query,
		e.Slug, e.Title, e.Description, e.Overview, e.Image,
		e.Venue, e.Location, e.Date, e.Time, e.Mode,
		e.Audience, e.Organizer, pq.Array(e.Tags), pq.Array(e.Agenda), e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
