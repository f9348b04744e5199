package domain

import (
	"strings"
	"time"
)

// Negotiation is one entry of a booking's append-only price history
type Negotiation struct {
	ID             ID         `json:"id"`
	BookingID      ID         `json:"booking_id"`
	ProposedAmount float64    `json:"proposed_amount"`
	OldAmount      float64    `json:"old_amount"`
	NewAmount      *float64   `json:"new_amount"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

type NegotiationRequest struct {
	ProposedAmount float64 `json:"proposed_amount"`
	Notes          string  `json:"notes,omitempty"`
}

func (r *NegotiationRequest) Validate() error {
	if r.ProposedAmount <= 0 {
		return ValidationError{Field: "proposed_amount", Msg: "proposed amount must be positive"}
	}
	return nil
}

// ValidateAgainst rejects proposals that are not below the current quote
func (r *NegotiationRequest) ValidateAgainst(b *Booking) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !b.CanRequestNegotiation() {
		return ConflictError{Resource: "booking", Msg: "negotiation is not available for this booking"}
	}
	if b.OriginalAmount > 0 && r.ProposedAmount >= b.OriginalAmount {
		return ValidationError{Field: "proposed_amount", Msg: "proposed amount must be below " + FormatAmount(b.OriginalAmount)}
	}
	return nil
}

type NegotiationAction string

const (
	NegotiationActionAccept NegotiationAction = "accept"
	NegotiationActionReject NegotiationAction = "reject"
)

// NegotiationResponse is the admin's decision on a requested negotiation
type NegotiationResponse struct {
	Action      NegotiationAction `json:"action"`
	FinalAmount *float64          `json:"final_amount,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

func (r *NegotiationResponse) Validate() error {
	r.Action = NegotiationAction(strings.ToLower(strings.TrimSpace(string(r.Action))))
	switch r.Action {
	case NegotiationActionAccept:
		if r.FinalAmount == nil || *r.FinalAmount <= 0 {
			return ValidationError{Field: "final_amount", Msg: "final amount is required when accepting"}
		}
	case NegotiationActionReject:
		r.FinalAmount = nil
	default:
		return ValidationError{Field: "action", Msg: "action must be accept or reject"}
	}
	return nil
}
