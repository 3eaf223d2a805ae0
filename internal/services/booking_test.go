package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"deveventhub/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockBookingRepository struct {
	bookings  map[string]*domain.Booking
	createErr error
	updateErr error

	created []*domain.Booking
	updated []*domain.Booking
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, booking)
	return nil
}

func (m *mockBookingRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

type mockEmailService struct {
	sendCalls int
	lastData  *domain.BookingConfirmationEmailData
	err       error
}

func (m *mockEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	m.sendCalls++
	m.lastData = data
	return m.err
}

func knownEvent() *domain.Event {
	return &domain.Event{
		ID:       "event-1",
		Slug:     "gophercon-europe-2026",
		Title:    "GopherCon Europe 2026",
		Date:     "2026-06-15",
		Time:     "09:00",
		Venue:    "Expo Center",
		Location: "Berlin, Germany",
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists with normalized email and sends confirmation", func(t *testing.T) {
		ev := knownEvent()
		eventRepo := &mockEventRepository{events: map[string]*domain.Event{ev.ID: ev}}
		bookingRepo := &mockBookingRepository{}
		email := &mockEmailService{}
		svc := NewBookingService(bookingRepo, eventRepo, email, testLogger, time.Second)

		booking, err := svc.Create(ctx, ev.ID, "  Dev@Example.COM ")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if booking.Email != "dev@example.com" {
			t.Errorf("Email = %q, want %q", booking.Email, "dev@example.com")
		}
		if booking.ID == "" {
			t.Error("expected a generated ID")
		}
		if len(bookingRepo.created) != 1 {
			t.Fatalf("expected one persisted booking, got %d", len(bookingRepo.created))
		}
		if email.sendCalls != 1 {
			t.Fatalf("confirmation sent %d times, want 1", email.sendCalls)
		}
		if email.lastData.EventTitle != ev.Title || email.lastData.Venue != ev.Venue {
			t.Errorf("confirmation data = %+v, want event details", email.lastData)
		}
	})

	t.Run("missing event leaves no booking behind", func(t *testing.T) {
		eventRepo := &mockEventRepository{}
		bookingRepo := &mockBookingRepository{}
		email := &mockEmailService{}
		svc := NewBookingService(bookingRepo, eventRepo, email, testLogger, time.Second)

		_, err := svc.Create(ctx, "nonexistent", "dev@example.com")
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
		if len(bookingRepo.created) != 0 {
			t.Error("no booking should be persisted for a missing event")
		}
		if email.sendCalls != 0 {
			t.Error("no confirmation should be sent for a missing event")
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		ev := knownEvent()
		eventRepo := &mockEventRepository{events: map[string]*domain.Event{ev.ID: ev}}
		bookingRepo := &mockBookingRepository{}
		svc := NewBookingService(bookingRepo, eventRepo, nil, testLogger, time.Second)

		_, err := svc.Create(ctx, ev.ID, "not-an-email")
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != "email" {
			t.Fatalf("expected email ValidationError, got %v", err)
		}
		if eventRepo.getByIDCalls != 0 {
			t.Error("no event lookup should happen for an invalid email")
		}
	})

	t.Run("duplicate booking", func(t *testing.T) {
		ev := knownEvent()
		eventRepo := &mockEventRepository{events: map[string]*domain.Event{ev.ID: ev}}
		bookingRepo := &mockBookingRepository{createErr: domain.ErrDuplicateBooking}
		email := &mockEmailService{}
		svc := NewBookingService(bookingRepo, eventRepo, email, testLogger, time.Second)

		_, err := svc.Create(ctx, ev.ID, "dev@example.com")
		if !errors.Is(err, domain.ErrDuplicateBooking) {
			t.Fatalf("expected ErrDuplicateBooking, got %v", err)
		}
		if email.sendCalls != 0 {
			t.Error("no confirmation should be sent for a rejected booking")
		}
	})

	t.Run("email failure does not fail the booking", func(t *testing.T) {
		ev := knownEvent()
		eventRepo := &mockEventRepository{events: map[string]*domain.Event{ev.ID: ev}}
		bookingRepo := &mockBookingRepository{}
		email := &mockEmailService{err: errors.New("ses throttled")}
		svc := NewBookingService(bookingRepo, eventRepo, email, testLogger, time.Second)

		booking, err := svc.Create(ctx, ev.ID, "dev@example.com")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if booking == nil {
			t.Fatal("expected a booking despite the email failure")
		}
	})
}

func TestBookingService_Update(t *testing.T) {
	ctx := context.Background()

	storedBooking := func() *domain.Booking {
		return &domain.Booking{ID: "booking-1", EventID: "event-1", Email: "dev@example.com"}
	}

	t.Run("email-only update skips the event lookup", func(t *testing.T) {
		b := storedBooking()
		eventRepo := &mockEventRepository{}
		bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{b.ID: b}}
		svc := NewBookingService(bookingRepo, eventRepo, nil, testLogger, time.Second)

		newEmail := "New.Dev@Example.com"
		got, err := svc.Update(ctx, b.ID, domain.UpdateBookingInput{Email: &newEmail})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.Email != "new.dev@example.com" {
			t.Errorf("Email = %q, want normalized", got.Email)
		}
		if eventRepo.getByIDCalls != 0 {
			t.Errorf("event looked up %d times on an email-only update", eventRepo.getByIDCalls)
		}
	})

	t.Run("same event id skips the event lookup", func(t *testing.T) {
		b := storedBooking()
		eventRepo := &mockEventRepository{}
		bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{b.ID: b}}
		svc := NewBookingService(bookingRepo, eventRepo, nil, testLogger, time.Second)

		sameEvent := b.EventID
		if _, err := svc.Update(ctx, b.ID, domain.UpdateBookingInput{EventID: &sameEvent}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if eventRepo.getByIDCalls != 0 {
			t.Errorf("event looked up %d times for an unchanged event id", eventRepo.getByIDCalls)
		}
	})

	t.Run("retarget verifies the new event", func(t *testing.T) {
		b := storedBooking()
		other := knownEvent()
		other.ID = "event-2"
		eventRepo := &mockEventRepository{events: map[string]*domain.Event{other.ID: other}}
		bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{b.ID: b}}
		svc := NewBookingService(bookingRepo, eventRepo, nil, testLogger, time.Second)

		got, err := svc.Update(ctx, b.ID, domain.UpdateBookingInput{EventID: &other.ID})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.EventID != "event-2" {
			t.Errorf("EventID = %q, want %q", got.EventID, "event-2")
		}
		if eventRepo.getByIDCalls != 1 {
			t.Errorf("event looked up %d times, want 1", eventRepo.getByIDCalls)
		}
	})

	t.Run("retarget to missing event", func(t *testing.T) {
		b := storedBooking()
		eventRepo := &mockEventRepository{}
		bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{b.ID: b}}
		svc := NewBookingService(bookingRepo, eventRepo, nil, testLogger, time.Second)

		missing := "event-ghost"
		_, err := svc.Update(ctx, b.ID, domain.UpdateBookingInput{EventID: &missing})
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
		if len(bookingRepo.updated) != 0 {
			t.Error("no update should be persisted when the new event is missing")
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := NewBookingService(&mockBookingRepository{}, &mockEventRepository{}, nil, testLogger, time.Second)

		email := "dev@example.com"
		_, err := svc.Update(ctx, "nonexistent", domain.UpdateBookingInput{Email: &email})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
