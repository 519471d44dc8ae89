package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jeycc/festival-booking/internal/model"
)

// ClientRepo provides persistence for festival attendees. Identity
// fields are written once at registration; contact fields may change
// through Update.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientColumns = `client_id, first_name, last_name, phone, email`

// Create inserts a new client. When c.ClientID is empty a fresh UUID
// is generated and written back onto c.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	if c.ClientID == "" {
		c.ClientID = uuid.NewString()
	}
	const q = `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.ClientID, c.FirstName, c.LastName, c.Phone, c.Email)
	return err
}

// GetByID returns the client with the given identifier or
// ErrClientNotFound.
func (r *ClientRepo) GetByID(ctx context.Context, clientID string) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE client_id = ?`
	var c model.Client
	err := r.db.QueryRowContext(ctx, q, clientID).Scan(&c.ClientID, &c.FirstName, &c.LastName, &c.Phone, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all registered clients.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ClientID, &c.FirstName, &c.LastName, &c.Phone, &c.Email); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ExistsByEmail reports whether a client is already registered with
// the given email address.
func (r *ClientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(*) FROM clients WHERE email = ?`, email)
}

// ExistsByPhone reports whether a client is already registered with
// the given phone number.
func (r *ClientRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(*) FROM clients WHERE phone = ?`, phone)
}

// ExistsByID reports whether a client with the given identifier is
// already registered.
func (r *ClientRepo) ExistsByID(ctx context.Context, clientID string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(*) FROM clients WHERE client_id = ?`, clientID)
}

func (r *ClientRepo) exists(ctx context.Context, q string, arg any) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update rewrites the mutable fields of an existing client.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE clients SET first_name = ?, last_name = ?, phone = ?, email = ? WHERE client_id = ?`
	_, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.Phone, c.Email, c.ClientID)
	return err
}

// Delete removes a client and all tickets referencing it. The ticket
// cleanup runs in the same transaction so a failure leaves both tables
// untouched.
func (r *ClientRepo) Delete(ctx context.Context, clientID string) error {
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
	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE client_id = ?`, clientID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE client_id = ?`, clientID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
