package http

import (
	"net/http"

	"helicharter-portal/internal/domain"
)

// BookingView is a booking plus what the dashboard derives from it
type BookingView struct {
	*domain.Booking
	StatusBadge           domain.Badge `json:"status_badge"`
	NegotiationBadge      domain.Badge `json:"negotiation_badge"`
	PayableAmount         float64      `json:"payable_amount"`
	CanRequestNegotiation bool         `json:"can_request_negotiation"`
	CanPay                bool         `json:"can_pay"`
}

func newBookingView(b *domain.Booking) BookingView {
	return BookingView{
		Booking:               b,
		StatusBadge:           b.Status.Badge(),
		NegotiationBadge:      b.NegotiationStatus.Badge(),
		PayableAmount:         b.PayableAmount(),
		CanRequestNegotiation: b.CanRequestNegotiation(),
		CanPay:                b.CanPay(),
	}
}

func newBookingViews(bookings []domain.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, newBookingView(&bookings[i]))
	}
	return views
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.ListBookings(r.Context(), bearer(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBookingViews(bookings))
}

func (h *Handler) listAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.ListAllBookings(r.Context(), bearer(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBookingViews(bookings))
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	b, err := h.Bookings.CreateBooking(r.Context(), bearer(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newBookingView(b))
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	b, err := h.Bookings.GetBooking(r.Context(), bearer(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBookingView(b))
}

func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.UpdateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	b, err := h.Bookings.UpdateBooking(r.Context(), bearer(r), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBookingView(b))
}

func (h *Handler) bookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	snap, err := h.Bookings.GetBookingStatus(r.Context(), bearer(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// requestNegotiation checks the proposal against the current booking before
// forwarding it, so an offer at or above the quote never reaches the backend.
func (h *Handler) requestNegotiation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.NegotiationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	ctx, tok := r.Context(), bearer(r)
	current, err := h.Bookings.GetBooking(ctx, tok, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.ValidateAgainst(current); err != nil {
		h.writeError(w, r, err)
		return
	}

	b, err := h.Bookings.RequestNegotiation(ctx, tok, id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBookingView(b))
}

func (h *Handler) respondNegotiation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.NegotiationResponse
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	b, err := h.Bookings.RespondNegotiation(r.Context(), bearer(r), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBookingView(b))
}

func (h *Handler) negotiationHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	history, err := h.Bookings.NegotiationHistory(r.Context(), bearer(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
