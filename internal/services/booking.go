package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"deveventhub/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Create books a slot at an event. The referenced event must exist before
// anything is persisted; a missing event yields ErrEventNotFound and no
// booking row.
func (s *bookingService) Create(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" {
		return nil, domain.NewValidationError("event_id", "is required")
	}
	normalizedEmail, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("check event exists: %w", err)
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		Email:     normalizedEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Confirmation email is best effort: the booking stands even if delivery
	// fails.
	if s.emailService != nil {
		err := s.emailService.SendBookingConfirmation(ctx, &domain.BookingConfirmationEmailData{
			Email:      booking.Email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			Venue:      event.Venue,
			Location:   event.Location,
		})
		if err != nil {
			s.logger.Error("booking confirmation email failed", "booking_id", booking.ID, "err", err)
		}
	}
	return booking, nil
}

// Update applies a partial booking update. The event-existence guard runs only
// when the update retargets the booking to a different event; an email-only
// update performs no event lookup.
func (s *bookingService) Update(ctx context.Context, bookingID string, in domain.UpdateBookingInput) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}

	if in.EventID != nil && *in.EventID != booking.EventID {
		if _, err := s.eventRepo.GetByID(ctx, *in.EventID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrEventNotFound
			}
			return nil, fmt.Errorf("check event exists: %w", err)
		}
		booking.EventID = *in.EventID
	}
	if in.Email != nil {
		normalizedEmail, err := domain.NormalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		booking.Email = normalizedEmail
	}

	booking.UpdatedAt = time.Now().UTC()
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, total, err := s.bookingRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}
