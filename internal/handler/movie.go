package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/model"
	"github.com/jeycc/festival-booking/internal/repository"
)

// MovieHandler exposes CRUD for the movie catalog. The detail endpoint
// joins in the number of tickets booked for the movie.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Tickets *repository.TicketRepo
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(movies *repository.MovieRepo, tickets *repository.TicketRepo) *MovieHandler {
	if movies == nil || tickets == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Tickets: tickets}
}

type movieRequest struct {
	MovieID     string `json:"movie_id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Year        int    `json:"year"`
	Genre       string `json:"genre"`
	JCCEdition  string `json:"jcc_edition"`
	ArabicTitle string `json:"arabic_title"`
}

// Create handles POST /app/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Movie title is required"})
	}
	movie := model.Movie{
		Title:       req.Title,
		Director:    req.Director,
		Year:        req.Year,
		Genre:       req.Genre,
		JCCEdition:  req.JCCEdition,
		ArabicTitle: req.ArabicTitle,
	}
	if err := h.Movies.Create(c.Request().Context(), &movie); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Movie registered successfully",
		"movieId": movie.MovieID,
	})
}

// List handles GET /app/movies.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /app/movies/:movieId. The response includes the
// movie and the count of tickets registered for it.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	movie, err := h.Movies.GetByID(ctx, c.Param("movieId"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found."})
		}
		return internalError(c, err)
	}
	count, err := h.Tickets.CountByMovie(ctx, movie.MovieID)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":         movie,
		"registrations": count,
	})
}

// Update handles PUT /app/movies. The target movie ID travels in the
// body.
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.MovieID == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Movie id, and title are required."})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found."})
		}
		return internalError(c, err)
	}
	movie := model.Movie{
		MovieID:     req.MovieID,
		Title:       req.Title,
		Director:    req.Director,
		Year:        req.Year,
		Genre:       req.Genre,
		JCCEdition:  req.JCCEdition,
		ArabicTitle: req.ArabicTitle,
	}
	if err := h.Movies.Update(ctx, &movie); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie updated successfully."})
}

// Delete handles DELETE /app/movies/:movieId. Tickets referencing the
// movie are left dangling; integrity holds only at booking time.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	movieID := c.Param("movieId")
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found."})
		}
		return internalError(c, err)
	}
	if err := h.Movies.Delete(ctx, movieID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie deleted successfully."})
}
