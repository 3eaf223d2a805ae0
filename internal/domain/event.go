package domain

import (
	"context"
	"time"
)

// Event modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// ValidMode reports whether mode is one of online, offline, hybrid.
func ValidMode(mode string) bool {
	switch mode {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// Event represents a developer event listing. Slug, Date, and Time are always
// stored in canonical form: slug is derived from the title, date is
// YYYY-MM-DD, time is 24-hour HH:MM.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	Agenda      []string  `json:"agenda"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRepository defines the interface for event storage. Create and Update
// rely on the storage-level unique index on slug: a colliding write returns
// ErrDuplicateSlug, which is the authority of record even though the service
// derives slugs deterministically (two distinct titles can normalize to the
// same slug).
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, search string, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
}

// EventCache caches events by slug for read-heavy listing traffic.
// GetBySlug returns ErrNotFound on a miss.
type EventCache interface {
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Set(ctx context.Context, event *Event) error
	Invalidate(ctx context.Context, slug string) error
}

// CreateEventInput carries the raw field values for a new event. Slug is not
// accepted from callers; it is derived from the title. Date and Time may be
// in any accepted input shape and are canonicalized before persistence.
type CreateEventInput struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Tags        []string
	Agenda      []string
}

// UpdateEventInput carries a partial update. Nil fields are unchanged.
// Slug/date/time are recomputed only when their source field actually differs
// from the stored value.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Organizer   *string
	Tags        []string
	Agenda      []string
}

// EventService defines the business logic for event records.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*Event, error)
	Update(ctx context.Context, eventID string, in UpdateEventInput) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, search string, params PaginationParams) ([]*Event, int, error)
}
