package domain

import (
	"context"
	"time"
)

// Booking represents a reservation of a slot at an event by an email address.
// The pair (EventID, Email) is unique across all bookings.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingRepository defines the interface for booking storage. Create and
// Update map the compound unique constraint on (event_id, email) to
// ErrDuplicateBooking and the event foreign key to ErrEventNotFound, so the
// storage layer remains the authority for both invariants even when the
// service has already checked.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	Update(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Booking, int, error)
}

// UpdateBookingInput carries a partial booking update. Nil fields are
// unchanged. The event-existence guard runs only when EventID is set to a
// value different from the stored one.
type UpdateBookingInput struct {
	EventID *string
	Email   *string
}

// BookingService defines the business logic for bookings.
type BookingService interface {
	Create(ctx context.Context, eventID, email string) (*Booking, error)
	Update(ctx context.Context, bookingID string, in UpdateBookingInput) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Booking, int, error)
}
