package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx so that
// identifier generation can run standalone or inside a transaction.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SequentialID renders a human-readable identifier from a fixed prefix
// and the number of rows already present: "t1", "m4", "tp2".
func SequentialID(prefix string, count int64) string {
	return fmt.Sprintf("%s%d", prefix, count+1)
}

// nextSequentialID computes the next identifier for a table by counting
// its rows. Identifiers are never reused: deleting rows lowers the
// count, so the scheme relies on callers running the count and insert
// in the same transaction and on a unique key to reject the rare
// collision. The table name is always a compile-time constant supplied
// by the owning repository, never user input.
func nextSequentialID(ctx context.Context, q rowQuerier, table, prefix string) (string, error) {
	var n int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return "", err
	}
	return SequentialID(prefix, n), nil
}
