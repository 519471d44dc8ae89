package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jeycc/festival-booking/internal/model"
)

// SnackRepo provides persistence for the snack menu. Snacks are keyed
// by name and are fully decoupled from tickets, which reference them
// only as freeform strings.
type SnackRepo struct {
	db *sql.DB
}

// NewSnackRepo returns a new SnackRepo bound to the given database.
func NewSnackRepo(db *sql.DB) *SnackRepo { return &SnackRepo{db: db} }

// Create inserts a new snack.
func (r *SnackRepo) Create(ctx context.Context, s *model.Snack) error {
	const q = `INSERT INTO snacks (name, snack_type, price) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.Name, s.SnackType, s.Price)
	return err
}

// GetByName returns the snack with the given name or ErrSnackNotFound.
func (r *SnackRepo) GetByName(ctx context.Context, name string) (*model.Snack, error) {
	const q = `SELECT name, snack_type, price FROM snacks WHERE name = ?`
	var s model.Snack
	err := r.db.QueryRowContext(ctx, q, name).Scan(&s.Name, &s.SnackType, &s.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnackNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a snack with the given name is already on the
// menu.
func (r *SnackRepo) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snacks WHERE name = ?`, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsBoycotted reports whether the given snack name matches an entry in
// the boycott table. Names are compared case-insensitively with spaces
// stripped so close spellings still match.
func (r *SnackRepo) IsBoycotted(ctx context.Context, name string) (bool, error) {
	const q = `SELECT COUNT(*) FROM boycott WHERE REPLACE(LOWER(product_name), ' ', '') = REPLACE(LOWER(?), ' ', '')`
	var n int
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns the full snack menu.
func (r *SnackRepo) List(ctx context.Context) ([]model.Snack, error) {
	const q = `SELECT name, snack_type, price FROM snacks`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snacks := make([]model.Snack, 0)
	for rows.Next() {
		var s model.Snack
		if err := rows.Scan(&s.Name, &s.SnackType, &s.Price); err != nil {
			return nil, err
		}
		snacks = append(snacks, s)
	}
	return snacks, rows.Err()
}

// Update rewrites the type and price of an existing snack.
func (r *SnackRepo) Update(ctx context.Context, s *model.Snack) error {
	const q = `UPDATE snacks SET snack_type = ?, price = ? WHERE name = ?`
	_, err := r.db.ExecContext(ctx, q, s.SnackType, s.Price, s.Name)
	return err
}

// Delete removes a snack from the menu. Tickets carrying the name are
// unaffected.
func (r *SnackRepo) Delete(ctx context.Context, name string) error {
	const q = `DELETE FROM snacks WHERE name = ?`
	_, err := r.db.ExecContext(ctx, q, name)
	return err
}
