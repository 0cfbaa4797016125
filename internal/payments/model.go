package payments

import "time"

// Payment is one completed charge, recorded after Stripe confirms it.
type Payment struct {
	ID            string    `json:"_id"`
	BookingID     string    `json:"bookingId"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"` // cents
	TransactionID string    `json:"transactionId"`
	PackageTitle  string    `json:"packageTitle,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
