package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jeycc/festival-booking/internal/model"
)

// TransportRepo provides persistence for ground-transportation offers.
// Transports are an independent catalog: tickets store only the
// transport type string, never a transport_id.
type TransportRepo struct {
	db *sql.DB
}

// NewTransportRepo returns a new TransportRepo bound to the given
// database.
func NewTransportRepo(db *sql.DB) *TransportRepo { return &TransportRepo{db: db} }

const transportColumns = `transport_id, transport_type, name, capacity, availability, student_institutional_price, general_price, agent_id, agent_name`

// Create inserts a new transport offer, generating its sequential
// identifier and an opaque agent ID. The generated IDs are written
// back onto t.
func (r *TransportRepo) Create(ctx context.Context, t *model.Transport) error {
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
	id, err := nextSequentialID(ctx, tx, "transports", "tp")
	if err != nil {
		return err
	}
	if t.AgentID == "" {
		t.AgentID = uuid.NewString()
	}
	const q = `INSERT INTO transports (` + transportColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q,
		id, t.TransportType, t.Name, t.Capacity, t.Availability,
		t.StudentInstitutionalPrice, t.GeneralPrice, t.AgentID, t.AgentName,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	t.TransportID = id
	return nil
}

// ExistsMatching reports whether a transport with the same type, name,
// capacity, availability and price tiers is already registered.
func (r *TransportRepo) ExistsMatching(ctx context.Context, t *model.Transport) (bool, error) {
	const q = `SELECT COUNT(*) FROM transports
	           WHERE transport_type = ? AND name = ? AND capacity = ? AND availability = ?
	             AND student_institutional_price = ? AND general_price = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q,
		t.TransportType, t.Name, t.Capacity, t.Availability,
		t.StudentInstitutionalPrice, t.GeneralPrice,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByID returns the transport with the given identifier or
// ErrTransportNotFound.
func (r *TransportRepo) GetByID(ctx context.Context, transportID string) (*model.Transport, error) {
	const q = `SELECT ` + transportColumns + ` FROM transports WHERE transport_id = ?`
	var t model.Transport
	err := r.db.QueryRowContext(ctx, q, transportID).Scan(
		&t.TransportID, &t.TransportType, &t.Name, &t.Capacity, &t.Availability,
		&t.StudentInstitutionalPrice, &t.GeneralPrice, &t.AgentID, &t.AgentName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all transport offers.
func (r *TransportRepo) List(ctx context.Context) ([]model.Transport, error) {
	const q = `SELECT ` + transportColumns + ` FROM transports ORDER BY LENGTH(transport_id), transport_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transports := make([]model.Transport, 0)
	for rows.Next() {
		var t model.Transport
		if err := rows.Scan(
			&t.TransportID, &t.TransportType, &t.Name, &t.Capacity, &t.Availability,
			&t.StudentInstitutionalPrice, &t.GeneralPrice, &t.AgentID, &t.AgentName,
		); err != nil {
			return nil, err
		}
		transports = append(transports, t)
	}
	return transports, rows.Err()
}

// Update rewrites an existing transport's fields. The agent ID is
// immutable; the agent display name may change.
func (r *TransportRepo) Update(ctx context.Context, t *model.Transport) error {
	const q = `UPDATE transports SET name = ?, transport_type = ?, capacity = ?, availability = ?,
	           student_institutional_price = ?, general_price = ?, agent_name = ? WHERE transport_id = ?`
	_, err := r.db.ExecContext(ctx, q,
		t.Name, t.TransportType, t.Capacity, t.Availability,
		t.StudentInstitutionalPrice, t.GeneralPrice, t.AgentName, t.TransportID,
	)
	return err
}

// Delete removes a transport offer.
func (r *TransportRepo) Delete(ctx context.Context, transportID string) error {
	const q = `DELETE FROM transports WHERE transport_id = ?`
	_, err := r.db.ExecContext(ctx, q, transportID)
	return err
}
