package controllers

import (
	"log/slog"
	"net/http"

	"deveventhub/internal/delivery/http/helpers"
	"deveventhub/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
type CreateBookingRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	if c.Email == "" {
		return []string{"email is required"}
	}
	return nil
}

// UpdateBookingRequest is the request body for PATCH /bookings/{bookingID}.
// Absent fields are left unchanged.
type UpdateBookingRequest struct {
	EventID *string `json:"event_id"`
	Email   *string `json:"email"`
}

// Validate implements Validator.
func (u UpdateBookingRequest) Validate() []string {
	if u.EventID == nil && u.Email == nil {
		return []string{"at least one of event_id, email must be provided"}
	}
	return nil
}

// BookingSuccessResponse is the success envelope carrying a single booking.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingListResponse is the data payload for GET /events/{eventID}/bookings.
type BookingListResponse struct {
	Bookings   []*domain.Booking      `json:"bookings"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// BookingListSuccessResponse is the success envelope for booking lists.
type BookingListSuccessResponse struct {
	Data  BookingListResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a slot at an event
// @Description Create a booking for the given event and email. The event must exist and the email may book each event at most once.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already booked)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (event does not exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.Create(r.Context(), eventID, req.Email)
	if err != nil {
		writeDomainError(r.Context(), c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// UpdateBooking godoc
// @Summary Update a booking
// @Description Partially update a booking. Retargeting to a different event verifies that the new event exists.
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID"
// @Param booking body UpdateBookingRequest true "Fields to update"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the updated booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already booked)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (event does not exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [patch]
func (c *BookingController) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingID")
	var req UpdateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.Update(r.Context(), bookingID, domain.UpdateBookingInput{
		EventID: req.EventID,
		Email:   req.Email,
	})
	if err != nil {
		writeDomainError(r.Context(), c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// ListBookings godoc
// @Summary List bookings for an event
// @Tags bookings
// @Produce json
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.BookingListSuccessResponse "data contains bookings and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	params := helpers.ParsePagination(r)
	bookings, total, err := c.Service.ListByEventID(r.Context(), eventID, params)
	if err != nil {
		writeDomainError(r.Context(), c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BookingListResponse{
		Bookings:   bookings,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
