// Package model holds the persisted entities shared between the repository
// layer, the HTTP handlers and the CLI client. JSON tags follow the wire
// format the existing browser client expects, so field names like `_id` and
// `password` are fixed even where a different name would be nicer.
package model

import "time"

// User is an account that owns records. The password hash never leaves the
// server: it is excluded from every JSON response.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
