package domain

import "time"

// Owner is the airline company that publishes and manages flights.
// Company codes are 2-5 uppercase alphanumeric and globally unique.
type Owner struct {
	ID           int64  `json:"id"`
	CompanyName  string `json:"company_name"`
	CompanyCode  string `json:"company_code"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	PasswordHash string `json:"-"`
	// FlightCount is derived by query, not stored.
	FlightCount int       `json:"flight_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
