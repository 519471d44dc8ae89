// Package repository defines error values shared across the entity
// repositories. These sentinels let handlers translate storage
// failures into specific HTTP responses: not-found errors become 404,
// uniqueness conflicts become 409, and anything else surfaces as 500.
package repository

import (
	"errors"
	"strings"
)

// ErrClientNotFound is returned when no client matches the given ID.
var ErrClientNotFound = errors.New("client not found")

// ErrMovieNotFound is returned when no movie matches the given ID or title.
var ErrMovieNotFound = errors.New("movie not found")

// ErrTicketNotFound is returned when no ticket matches the given ID.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrSnackNotFound is returned when no snack matches the given name.
var ErrSnackNotFound = errors.New("snack not found")

// ErrTransportNotFound is returned when no transport matches the given ID.
var ErrTransportNotFound = errors.New("transport not found")

// ErrSeatTaken is returned when an insert or update would produce a
// second ticket with the same (movie_id, seat_number) pair. The
// tickets table carries a unique key on that pair, so the constraint
// holds even when two bookings race past the handler's pre-check.
var ErrSeatTaken = errors.New("seat already taken for this movie")

// isDuplicateKey reports whether err is a MySQL duplicate-key
// violation (error 1062) on the named unique index. The index name
// check matters on tables with more than one unique key: a primary-key
// collision on tickets must surface as a storage failure, not as a
// seat conflict.
func isDuplicateKey(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") && strings.Contains(msg, key)
}
