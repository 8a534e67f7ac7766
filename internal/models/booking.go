package models

import "time"

type Booking struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // slot label, e.g. "9:00 AM"
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Service   string    `json:"service"`
	Role      string    `json:"role,omitempty"`
	Challenge string    `json:"challenge,omitempty"`
	Timeline  string    `json:"timeline,omitempty"`
	Budget    string    `json:"budget,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
