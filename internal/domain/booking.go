package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ID is a backend identifier. The backend emits both numeric and string ids.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Valid reports whether id is usable in a backend path segment
func (id ID) Valid() bool {
	s := strings.TrimSpace(string(id))
	return s != "" && !strings.ContainsAny(s, "/?#")
}

type BookingStatus string

const (
	BookingStatusPending              BookingStatus = "pending"
	BookingStatusNegotiationRequested BookingStatus = "negotiation_requested"
	BookingStatusPendingPayment       BookingStatus = "pending_payment"
	BookingStatusPaid                 BookingStatus = "paid"
	BookingStatusConfirmed            BookingStatus = "confirmed"
	BookingStatusCompleted            BookingStatus = "completed"
	BookingStatusCancelled            BookingStatus = "cancelled"
)

// IsTerminal reports whether no further payment can happen on the booking
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusPaid, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Badge returns the dashboard badge for the status
func (s BookingStatus) Badge() Badge {
	switch s {
	case BookingStatusPending:
		return Badge{Label: "Pending", Tone: ToneWarning}
	case BookingStatusNegotiationRequested:
		return Badge{Label: "Negotiation Requested", Tone: ToneInfo}
	case BookingStatusPendingPayment:
		return Badge{Label: "Awaiting Payment", Tone: ToneWarning}
	case BookingStatusPaid:
		return Badge{Label: "Paid", Tone: ToneSuccess}
	case BookingStatusConfirmed:
		return Badge{Label: "Confirmed", Tone: ToneSuccess}
	case BookingStatusCompleted:
		return Badge{Label: "Completed", Tone: ToneNeutral}
	case BookingStatusCancelled:
		return Badge{Label: "Cancelled", Tone: ToneDanger}
	}
	return Badge{Label: titleCase(string(s)), Tone: ToneNeutral}
}

type NegotiationStatus string

const (
	NegotiationStatusNone         NegotiationStatus = "none"
	NegotiationStatusRequested    NegotiationStatus = "requested"
	NegotiationStatusCounterOffer NegotiationStatus = "counter_offer"
	NegotiationStatusAccepted     NegotiationStatus = "accepted"
	NegotiationStatusRejected     NegotiationStatus = "rejected"
)

// Open reports whether the negotiation is waiting on the other party
func (s NegotiationStatus) Open() bool {
	return s == NegotiationStatusRequested || s == NegotiationStatusCounterOffer
}

// Badge returns the dashboard badge for the negotiation. No negotiation has no badge.
func (s NegotiationStatus) Badge() Badge {
	switch s {
	case NegotiationStatusRequested:
		return Badge{Label: "Negotiation Requested", Tone: ToneWarning}
	case NegotiationStatusCounterOffer:
		return Badge{Label: "Counter Offer", Tone: ToneInfo}
	case NegotiationStatusAccepted:
		return Badge{Label: "Accepted", Tone: ToneSuccess}
	case NegotiationStatusRejected:
		return Badge{Label: "Rejected", Tone: ToneDanger}
	}
	return Badge{}
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type BadgeTone string

const (
	ToneNeutral BadgeTone = "neutral"
	ToneInfo    BadgeTone = "info"
	ToneSuccess BadgeTone = "success"
	ToneWarning BadgeTone = "warning"
	ToneDanger  BadgeTone = "danger"
)

type Badge struct {
	Label string    `json:"label"`
	Tone  BadgeTone `json:"tone"`
}

// HelicopterSummary is the helicopter as embedded in a booking response
type HelicopterSummary struct {
	ID       ID     `json:"id"`
	Model    string `json:"model"`
	Capacity int    `json:"capacity"`
	ImageURL string `json:"image_url,omitempty"`
}

type Booking struct {
	ID                ID                 `json:"id"`
	UserID            ID                 `json:"user_id,omitempty"`
	HelicopterID      ID                 `json:"helicopter_id"`
	Helicopter        *HelicopterSummary `json:"helicopter,omitempty"`
	Date              string             `json:"date"`
	Time              string             `json:"time"`
	Purpose           string             `json:"purpose"`
	Passengers        int                `json:"passengers"`
	OriginalAmount    float64            `json:"original_amount"`
	FinalAmount       *float64           `json:"final_amount"`
	Status            BookingStatus      `json:"status"`
	NegotiationStatus NegotiationStatus  `json:"negotiation_status"`
	PaymentStatus     PaymentStatus      `json:"payment_status,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	CreatedAt         *time.Time         `json:"created_at,omitempty"`
}

// PayableAmount is the admin-accepted final amount when one exists, else the quote
func (b *Booking) PayableAmount() float64 {
	if b.NegotiationStatus == NegotiationStatusAccepted && b.FinalAmount != nil {
		return *b.FinalAmount
	}
	return b.OriginalAmount
}

// Negotiated reports whether payment should go through the negotiated flow
func (b *Booking) Negotiated() bool {
	return b.NegotiationStatus == NegotiationStatusAccepted && b.FinalAmount != nil
}

func (b *Booking) CanRequestNegotiation() bool {
	if b.Status != BookingStatusPending {
		return false
	}
	return b.NegotiationStatus == "" || b.NegotiationStatus == NegotiationStatusNone || b.NegotiationStatus == NegotiationStatusRejected
}

func (b *Booking) CanPay() bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusPendingPayment {
		return false
	}
	return !b.NegotiationStatus.Open()
}

// StatusSnapshot is the payload of the dedicated status endpoint
type StatusSnapshot struct {
	BookingID     ID            `json:"booking_id"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

type CreateBookingRequest struct {
	HelicopterID ID     `json:"helicopter_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Purpose      string `json:"purpose"`
	Passengers   int    `json:"passengers"`
	Notes        string `json:"notes,omitempty"`
}

func (r *CreateBookingRequest) Validate() error {
	if !r.HelicopterID.Valid() {
		return ValidationError{Field: "helicopter_id", Msg: "helicopter is required"}
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return ValidationError{Field: "time", Msg: "time must be HH:MM"}
	}
	if strings.TrimSpace(r.Purpose) == "" {
		return ValidationError{Field: "purpose", Msg: "purpose is required"}
	}
	if r.Passengers < 1 {
		return ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}
	return nil
}

// UpdateBookingRequest carries a requested transition or field change; nil fields are left alone
type UpdateBookingRequest struct {
	Status     *BookingStatus `json:"status,omitempty"`
	Date       *string        `json:"date,omitempty"`
	Time       *string        `json:"time,omitempty"`
	Passengers *int           `json:"passengers,omitempty"`
	Notes      *string        `json:"notes,omitempty"`
}

func (r *UpdateBookingRequest) Validate() error {
	if r.Status == nil && r.Date == nil && r.Time == nil && r.Passengers == nil && r.Notes == nil {
		return ValidationError{Msg: "nothing to update"}
	}
	if r.Passengers != nil && *r.Passengers < 1 {
		return ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}
	if r.Date != nil {
		if _, err := time.Parse("2006-01-02", *r.Date); err != nil {
			return ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD"}
		}
	}
	if r.Time != nil {
		if _, err := time.Parse("15:04", *r.Time); err != nil {
			return ValidationError{Field: "time", Msg: "time must be HH:MM"}
		}
	}
	return nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatAmount renders a KES amount the way receipts show it
func FormatAmount(amount float64) string {
	return "KES " + strconv.FormatFloat(amount, 'f', 2, 64)
}
