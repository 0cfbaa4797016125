package bookings

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("booking not found")

const (
	StatusPending   = "pending"
	StatusInReview  = "in-review"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusConfirmed = "confirmed"
)

// ValidStatus reports whether s is an allowed booking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInReview, StatusAccepted, StatusRejected, StatusConfirmed:
		return true
	}
	return false
}

// Booking ties a tourist, a package and an assigned guide together.
type Booking struct {
	ID           string    `json:"_id"`
	PackageID    string    `json:"packageId"`
	PackageTitle string    `json:"packageTitle,omitempty"`
	TouristEmail string    `json:"touristEmail"`
	TouristName  string    `json:"touristName,omitempty"`
	TourGuide    string    `json:"tourGuide"`
	TourDate     string    `json:"tourDate"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
