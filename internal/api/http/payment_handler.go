package http

import (
	"errors"
	"net/http"

	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/poller"
)

type paymentBody struct {
	PhoneNumber string `json:"phone_number"`
}

// PaymentResult is returned by the wait endpoint for every settled poll
type PaymentResult struct {
	*poller.Outcome
	Message string `json:"message"`
}

func (h *Handler) payDirect(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, false)
}

func (h *Handler) payNegotiated(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, true)
}

// pay checks the booking is awaiting payment on the matching route, then asks the
// backend to send the phone prompt. Negotiated payments go through the retrying
// submitter.
func (h *Handler) pay(w http.ResponseWriter, r *http.Request, negotiated bool) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body paymentBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	ctx, tok := r.Context(), bearer(r)
	b, err := h.Bookings.GetBooking(ctx, tok, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	switch {
	case !b.CanPay():
		h.writeError(w, r, domain.ConflictError{Resource: "booking", Msg: "booking is not awaiting payment"})
		return
	case negotiated && !b.Negotiated():
		h.writeError(w, r, domain.ConflictError{Resource: "booking", Msg: "booking has no accepted negotiated price"})
		return
	case !negotiated && b.Negotiated():
		h.writeError(w, r, domain.ConflictError{Resource: "booking", Msg: "booking has a negotiated price, use the negotiated payment"})
		return
	}

	var receipt *domain.PaymentReceipt
	if negotiated {
		receipt, err = h.Payments.SubmitNegotiated(ctx, tok, id, body.PhoneNumber)
	} else {
		receipt, err = h.Payments.SubmitDirect(ctx, tok, id, body.PhoneNumber)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if receipt.Amount == 0 {
		receipt.Amount = b.PayableAmount()
	}
	respondJSON(w, http.StatusAccepted, receipt)
}

// waitForPayment polls until the payment settles and reports the outcome. Browsers
// that want progress use the websocket feed instead.
func (h *Handler) waitForPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	outcome, err := h.Poller.Poll(r.Context(), bearer(r), id, nil)
	if outcome == nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, PaymentResult{Outcome: outcome, Message: outcomeMessage(err)})
}

func outcomeMessage(err error) string {
	switch {
	case err == nil:
		return "Payment received. Your booking is confirmed."
	case errors.Is(err, poller.ErrPaymentFailed), errors.Is(err, poller.ErrPaymentTimeout):
		return err.Error()
	}
	return ""
}
