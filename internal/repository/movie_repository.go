package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jeycc/festival-booking/internal/model"
)

// MovieRepo provides persistence for the movie catalog. The booking
// workflow resolves movies by title, so GetByTitle is the lookup the
// core path depends on; titles are not unique at the schema level and
// the first match wins.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `movie_id, title, director, year, genre, jcc_edition, arabic_title`

// Create inserts a new movie, generating its sequential identifier in
// the same transaction as the insert. The generated ID is written back
// onto m.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
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
	id, err := nextSequentialID(ctx, tx, "movies", "m")
	if err != nil {
		return err
	}
	const q = `INSERT INTO movies (` + movieColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, id, m.Title, m.Director, m.Year, m.Genre, m.JCCEdition, m.ArabicTitle); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	m.MovieID = id
	return nil
}

// GetByID returns the movie with the given identifier or
// ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, movieID string) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE movie_id = ?`
	return r.get(ctx, q, movieID)
}

// GetByTitle returns the movie with the given title or
// ErrMovieNotFound.
func (r *MovieRepo) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE title = ? LIMIT 1`
	return r.get(ctx, q, title)
}

func (r *MovieRepo) get(ctx context.Context, q string, arg any) (*model.Movie, error) {
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&m.MovieID, &m.Title, &m.Director, &m.Year, &m.Genre, &m.JCCEdition, &m.ArabicTitle,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all movies in the catalog.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY LENGTH(movie_id), movie_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.MovieID, &m.Title, &m.Director, &m.Year, &m.Genre, &m.JCCEdition, &m.ArabicTitle); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// Update rewrites an existing movie's fields in place.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies SET title = ?, director = ?, year = ?, genre = ?, jcc_edition = ?, arabic_title = ? WHERE movie_id = ?`
	_, err := r.db.ExecContext(ctx, q, m.Title, m.Director, m.Year, m.Genre, m.JCCEdition, m.ArabicTitle, m.MovieID)
	return err
}

// Delete removes a movie. Tickets referencing it are left in place;
// referential integrity is only guaranteed at booking time.
func (r *MovieRepo) Delete(ctx context.Context, movieID string) error {
	const q = `DELETE FROM movies WHERE movie_id = ?`
	_, err := r.db.ExecContext(ctx, q, movieID)
	return err
}
