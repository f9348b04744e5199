package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestID_UnmarshalJSON(t *testing.T) {
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "helicopter_id": "h-7"}`), &b))
	assert.Equal(t, ID("42"), b.ID)
	assert.Equal(t, ID("h-7"), b.HelicopterID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &b))
	assert.Equal(t, ID(""), b.ID)
}

func TestID_Valid(t *testing.T) {
	assert.True(t, ID("12").Valid())
	assert.False(t, ID("").Valid())
	assert.False(t, ID("1/../admin").Valid())
}

func TestBooking_PayableAmount(t *testing.T) {
	t.Run("Original amount without negotiation", func(t *testing.T) {
		b := Booking{OriginalAmount: 50000, NegotiationStatus: NegotiationStatusNone}
		assert.Equal(t, 50000.0, b.PayableAmount())
		assert.False(t, b.Negotiated())
	})

	t.Run("Final amount after acceptance", func(t *testing.T) {
		b := Booking{OriginalAmount: 50000, FinalAmount: floatPtr(42000), NegotiationStatus: NegotiationStatusAccepted}
		assert.Equal(t, 42000.0, b.PayableAmount())
		assert.True(t, b.Negotiated())
	})

	t.Run("Final amount ignored when rejected", func(t *testing.T) {
		b := Booking{OriginalAmount: 50000, FinalAmount: floatPtr(42000), NegotiationStatus: NegotiationStatusRejected}
		assert.Equal(t, 50000.0, b.PayableAmount())
	})
}

func TestBooking_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		nego    NegotiationStatus
		canNego bool
		canPay  bool
	}{
		{"fresh booking", BookingStatusPending, NegotiationStatusNone, true, true},
		{"negotiation open", BookingStatusNegotiationRequested, NegotiationStatusRequested, false, false},
		{"counter offer open", BookingStatusPending, NegotiationStatusCounterOffer, false, false},
		{"accepted awaiting payment", BookingStatusPendingPayment, NegotiationStatusAccepted, false, true},
		{"rejected can renegotiate", BookingStatusPending, NegotiationStatusRejected, true, true},
		{"paid", BookingStatusPaid, NegotiationStatusNone, false, false},
		{"cancelled", BookingStatusCancelled, NegotiationStatusNone, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Booking{Status: tt.status, NegotiationStatus: tt.nego}
			assert.Equal(t, tt.canNego, b.CanRequestNegotiation())
			assert.Equal(t, tt.canPay, b.CanPay())
		})
	}
}

func TestBadges(t *testing.T) {
	assert.Equal(t, Badge{Label: "Counter Offer", Tone: ToneInfo}, NegotiationStatusCounterOffer.Badge())
	assert.Equal(t, Badge{}, NegotiationStatusNone.Badge())
	assert.Equal(t, ToneDanger, BookingStatusCancelled.Badge().Tone)
	assert.Equal(t, "Some New State", BookingStatus("some_new_state").Badge().Label)
	assert.True(t, BookingStatusPaid.IsTerminal())
	assert.False(t, BookingStatusPendingPayment.IsTerminal())
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	valid := CreateBookingRequest{HelicopterID: "3", Date: "2026-11-02", Time: "09:30", Purpose: "Tour", Passengers: 2}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Passengers = 0
	err := bad.Validate()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "passengers")

	bad = valid
	bad.Date = "02/11/2026"
	assert.Contains(t, bad.Validate().Error(), "date")
}

func TestNegotiationRequest_ValidateAgainst(t *testing.T) {
	b := &Booking{Status: BookingStatusPending, NegotiationStatus: NegotiationStatusNone, OriginalAmount: 80000}

	req := NegotiationRequest{ProposedAmount: 70000}
	assert.NoError(t, req.ValidateAgainst(b))

	req.ProposedAmount = 90000
	err := req.ValidateAgainst(b)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "KES 80000.00")

	b.NegotiationStatus = NegotiationStatusRequested
	req.ProposedAmount = 70000
	assert.True(t, IsConflict(req.ValidateAgainst(b)))
}

func TestNegotiationResponse_Validate(t *testing.T) {
	accept := NegotiationResponse{Action: "Accept"}
	assert.True(t, IsValidation(accept.Validate()))

	accept.FinalAmount = floatPtr(65000)
	assert.NoError(t, accept.Validate())
	assert.Equal(t, NegotiationActionAccept, accept.Action)

	reject := NegotiationResponse{Action: "reject", FinalAmount: floatPtr(1)}
	assert.NoError(t, reject.Validate())
	assert.Nil(t, reject.FinalAmount)

	assert.Error(t, (&NegotiationResponse{Action: "counter"}).Validate())
}
