package domain

// PaymentRequest asks the backend to push a phone payment prompt for a booking
type PaymentRequest struct {
	BookingID   ID     `json:"booking_id"`
	PhoneNumber string `json:"phone_number"`
}

// PaymentReceipt is the backend's acknowledgement that the prompt was sent.
// It says nothing about whether the customer paid; the status poll decides that.
type PaymentReceipt struct {
	Message           string  `json:"message"`
	CheckoutRequestID string  `json:"checkout_request_id,omitempty"`
	MerchantRequestID string  `json:"merchant_request_id,omitempty"`
	Amount            float64 `json:"amount,omitempty"`
	Attempts          int     `json:"attempts,omitempty"`
}
