package packages

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("package not found")

// TourPackage is a bookable tour offering.
type TourPackage struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Images      []string  `json:"images"`
	Description string    `json:"description"`
	TourType    string    `json:"tourType"`
	Duration    string    `json:"duration"`
	Price       float64   `json:"price"`
	TourPlan    []string  `json:"tourPlan"`
	CreatedAt   time.Time `json:"createdAt"`
}
