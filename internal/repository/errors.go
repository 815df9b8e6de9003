// Package repository contains data access logic separated from HTTP handlers.
// Sentinel errors defined here let handlers map store outcomes onto the API's
// error taxonomy without inspecting driver errors themselves.
package repository

import "errors"

// ErrUsernameTaken is returned when signup hits the unique index on
// users.username. Handlers translate this into an HTTP 400 response.
var ErrUsernameTaken = errors.New("username already taken")

// ErrUserNotFound is returned when no user matches a lookup. Handlers must
// answer with the same response they use for a wrong password so that
// usernames cannot be enumerated.
var ErrUserNotFound = errors.New("user not found")

// ErrRecordNotFound is returned when a record does not exist or does not
// belong to the caller. The two cases are indistinguishable on purpose.
var ErrRecordNotFound = errors.New("record not found")
