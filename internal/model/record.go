package model

import "time"

// Record is a single stored item of sensitive personal data (an account,
// certificate or similar) owned by exactly one user. The wire field named
// `password` carries the record's stored secret, not a login credential, and
// is returned to the owner exactly as it was submitted.
type Record struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	IDNumber  string    `json:"idNumber"`
	Secret    string    `json:"password"`
	Notes     string    `json:"notes"`
	OwnerID   string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
