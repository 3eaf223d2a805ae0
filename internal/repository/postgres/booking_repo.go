package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"deveventhub/internal/domain"
	"deveventhub/internal/platform/database"
)

type bookingRepository struct {
	dbp database.Provider
}

func NewBookingRepository(dbp database.Provider) domain.BookingRepository {
	return &bookingRepository{dbp: dbp}
}

// mapBookingWriteError translates the constraint violations a booking write
// can hit: the (event_id, email) unique index and the event foreign key.
func mapBookingWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return domain.ErrDuplicateBooking
		case "23503":
			return domain.ErrEventNotFound
		}
	}
	return err
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bookings (id, event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = db.ExecContext(ctx, query, b.ID, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return mapBookingWriteError(err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, event_id, email, created_at, updated_at FROM bookings WHERE id = $1`
	b := &domain.Booking{}
	err = db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE bookings
		SET event_id = $1, email = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := db.ExecContext(ctx, query, b.EventID, b.Email, b.UpdatedAt, b.ID)
	if err != nil {
		return mapBookingWriteError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	db, err := r.dbp.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM bookings WHERE event_id = $1`
	if err := db.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, email, created_at, updated_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	rows, err := db.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}
