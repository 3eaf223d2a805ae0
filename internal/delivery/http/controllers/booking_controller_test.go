package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"deveventhub/internal/delivery/http/helpers"
	"deveventhub/internal/domain"
)

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createErr       error
	createResult    *domain.Booking
	updateErr       error
	updateResult    *domain.Booking
	listErr         error
	listResult      []*domain.Booking
	listTotal       int
	lastEventID     string
	lastEmail       string
	lastUpdateID    string
	lastUpdateInput domain.UpdateBookingInput
}

func (f *fakeBookingService) Create(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastEmail = email
	return f.createResult, f.createErr
}

func (f *fakeBookingService) Update(ctx context.Context, bookingID string, in domain.UpdateBookingInput) (*domain.Booking, error) {
	f.lastUpdateID = bookingID
	f.lastUpdateInput = in
	return f.updateResult, f.updateErr
}

func (f *fakeBookingService) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	f.lastEventID = eventID
	return f.listResult, f.listTotal, f.listErr
}

func TestBookingController_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeBookingService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       `{"email":"dev@example.com"}`,
			svc:        &fakeBookingService{createResult: &domain.Booking{ID: "booking-1", EventID: "event-1", Email: "dev@example.com"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing email",
			body:       `{}`,
			svc:        &fakeBookingService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "event does not exist",
			body:       `{"email":"dev@example.com"}`,
			svc:        &fakeBookingService{createErr: domain.ErrEventNotFound},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   helpers.ErrCodeUnprocessable,
		},
		{
			name:       "already booked",
			body:       `{"email":"dev@example.com"}`,
			svc:        &fakeBookingService{createErr: fmt.Errorf("create booking: %w", domain.ErrDuplicateBooking)},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "invalid email",
			body:       `{"email":"nope"}`,
			svc:        &fakeBookingService{createErr: domain.NewValidationError("email", "invalid email format")},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBookingController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/events/event-1/bookings", bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", "event-1")
			rr := httptest.NewRecorder()

			c.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				require.Equal(t, tt.wantCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
				require.Equal(t, "event-1", tt.svc.lastEventID)
			}
		})
	}
}

func TestBookingController_UpdateBooking(t *testing.T) {
	t.Run("empty body rejected", func(t *testing.T) {
		svc := &fakeBookingService{}
		c := NewBookingController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/bookings/booking-1", bytes.NewBufferString(`{}`))
		req.SetPathValue("bookingID", "booking-1")
		rr := httptest.NewRecorder()

		c.UpdateBooking(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := &fakeBookingService{updateErr: fmt.Errorf("load booking: %w", domain.ErrNotFound)}
		c := NewBookingController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/bookings/nonexistent", bytes.NewBufferString(`{"email":"dev@example.com"}`))
		req.SetPathValue("bookingID", "nonexistent")
		rr := httptest.NewRecorder()

		c.UpdateBooking(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("retarget to missing event", func(t *testing.T) {
		svc := &fakeBookingService{updateErr: domain.ErrEventNotFound}
		c := NewBookingController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/bookings/booking-1", bytes.NewBufferString(`{"event_id":"event-ghost"}`))
		req.SetPathValue("bookingID", "booking-1")
		rr := httptest.NewRecorder()

		c.UpdateBooking(rr, req)

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Equal(t, helpers.ErrCodeUnprocessable, envelope.Error.Code)
	})

	t.Run("updated", func(t *testing.T) {
		svc := &fakeBookingService{updateResult: &domain.Booking{ID: "booking-1", EventID: "event-2", Email: "dev@example.com"}}
		c := NewBookingController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/bookings/booking-1", bytes.NewBufferString(`{"event_id":"event-2"}`))
		req.SetPathValue("bookingID", "booking-1")
		rr := httptest.NewRecorder()

		c.UpdateBooking(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "booking-1", svc.lastUpdateID)
		require.NotNil(t, svc.lastUpdateInput.EventID)
		require.Equal(t, "event-2", *svc.lastUpdateInput.EventID)
		require.Nil(t, svc.lastUpdateInput.Email)
	})
}

func TestBookingController_ListBookings(t *testing.T) {
	svc := &fakeBookingService{
		listResult: []*domain.Booking{{ID: "booking-1", EventID: "event-1", Email: "dev@example.com"}},
		listTotal:  1,
	}
	c := NewBookingController(testLogger, svc)
	req := httptest.NewRequest(http.MethodGet, "/events/event-1/bookings", nil)
	req.SetPathValue("eventID", "event-1")
	rr := httptest.NewRecorder()

	c.ListBookings(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "event-1", svc.lastEventID)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)
}
