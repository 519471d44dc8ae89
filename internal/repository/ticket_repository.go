package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jeycc/festival-booking/internal/model"
)

// TicketRepo provides persistence for tickets. The snacks list is
// stored as a JSON array in a text column, mirroring the weakly typed
// association on the ticket itself (names only, no foreign key into
// the snack catalog).
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `ticket_id, client_id, movie_id, seat_number, transport, snacks, organization_name`

// Create inserts a new ticket, generating its sequential identifier
// inside the same transaction as the insert so that the count cannot
// drift between the two statements. The generated ID is written back
// onto t. A duplicate (movie_id, seat_number) pair is reported as
// ErrSeatTaken.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	id, err := nextSequentialID(ctx, tx, "tickets", "t")
	if err != nil {
		return err
	}
	snacks, err := json.Marshal(emptyIfNil(t.Snacks))
	if err != nil {
		return err
	}
	const q = `INSERT INTO tickets (` + ticketColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q,
		id, t.ClientID, t.MovieID, t.SeatNumber, t.Transport, string(snacks), t.OrganizationName,
	); err != nil {
		if isDuplicateKey(err, "uq_tickets_movie_seat") {
			return ErrSeatTaken
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	t.TicketID = id
	return nil
}

// GetByID returns the ticket with the given identifier or
// ErrTicketNotFound.
func (r *TicketRepo) GetByID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id = ?`
	t, err := scanTicket(r.db.QueryRowContext(ctx, q, ticketID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	return t, err
}

// List returns all tickets in creation order. Sorting by ID length
// before the ID itself keeps t10 after t9.
func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY LENGTH(ticket_id), ticket_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// SeatTaken reports whether another ticket already occupies the given
// seat for the given movie. excludeTicketID is skipped from the check
// so that updates do not conflict with the ticket being updated; pass
// the empty string when creating.
func (r *TicketRepo) SeatTaken(ctx context.Context, movieID, seatNumber, excludeTicketID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM tickets WHERE movie_id = ? AND seat_number = ? AND ticket_id <> ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, movieID, seatNumber, excludeTicketID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateMovieSeat changes the movie and seat of an existing ticket.
// Client, transport, snacks and organization name are immutable via
// this path. A duplicate (movie_id, seat_number) pair is reported as
// ErrSeatTaken.
func (r *TicketRepo) UpdateMovieSeat(ctx context.Context, ticketID, movieID, seatNumber string) error {
	const q = `UPDATE tickets SET movie_id = ?, seat_number = ? WHERE ticket_id = ?`
	if _, err := r.db.ExecContext(ctx, q, movieID, seatNumber, ticketID); err != nil {
		if isDuplicateKey(err, "uq_tickets_movie_seat") {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

// Delete removes the ticket with the given identifier. Tickets have no
// dependents, so no cascading cleanup is needed.
func (r *TicketRepo) Delete(ctx context.Context, ticketID string) error {
	const q = `DELETE FROM tickets WHERE ticket_id = ?`
	_, err := r.db.ExecContext(ctx, q, ticketID)
	return err
}

// CountByMovie returns the number of tickets booked for a movie. Used
// by the movie detail endpoint to report registrations.
func (r *TicketRepo) CountByMovie(ctx context.Context, movieID string) (int, error) {
	const q = `SELECT COUNT(*) FROM tickets WHERE movie_id = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, movieID).Scan(&n)
	return n, err
}

// scanner abstracts *sql.Row and *sql.Rows for scanTicket.
type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(s scanner) (*model.Ticket, error) {
	var t model.Ticket
	var snacks sql.NullString
	var org sql.NullString
	if err := s.Scan(&t.TicketID, &t.ClientID, &t.MovieID, &t.SeatNumber, &t.Transport, &snacks, &org); err != nil {
		return nil, err
	}
	t.Snacks = []string{}
	if snacks.Valid && snacks.String != "" {
		if err := json.Unmarshal([]byte(snacks.String), &t.Snacks); err != nil {
			return nil, err
		}
	}
	if org.Valid {
		v := org.String
		t.OrganizationName = &v
	}
	return &t, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
