package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/model"
	"github.com/jeycc/festival-booking/internal/queue"
	"github.com/jeycc/festival-booking/internal/repository"
)

// TicketStore is the persistence surface the booking workflow needs
// from the ticket table.  *repository.TicketRepo satisfies it; tests
// substitute fakes.
type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) error
	GetByID(ctx context.Context, ticketID string) (*model.Ticket, error)
	List(ctx context.Context) ([]model.Ticket, error)
	SeatTaken(ctx context.Context, movieID, seatNumber, excludeTicketID string) (bool, error)
	UpdateMovieSeat(ctx context.Context, ticketID, movieID, seatNumber string) error
	Delete(ctx context.Context, ticketID string) error
}

// ClientStore is the client lookup needed by the booking workflow.
type ClientStore interface {
	GetByID(ctx context.Context, clientID string) (*model.Client, error)
}

// MovieStore resolves movies by title (booking input) and by ID (joins
// for display).
type MovieStore interface {
	GetByID(ctx context.Context, movieID string) (*model.Movie, error)
	GetByTitle(ctx context.Context, title string) (*model.Movie, error)
}

// TicketHandler implements the ticket booking workflow: validation,
// cross-entity lookups, the conditional organization-name rule,
// seat-uniqueness enforcement and response shaping.  The transport
// policy is injected at construction rather than read from a global.
// Publish, when non-nil, is invoked after a successful booking;
// failures are logged and never fail the request.
type TicketHandler struct {
	Tickets TicketStore
	Clients ClientStore
	Movies  MovieStore
	Policy  model.TransportPolicy
	Publish func(ctx context.Context, ev queue.TicketBookedEvent) error
}

// NewTicketHandler constructs a TicketHandler. All stores must be
// non-nil; Publish may be nil to disable event publishing.
func NewTicketHandler(tickets TicketStore, clients ClientStore, movies MovieStore, policy model.TransportPolicy) *TicketHandler {
	if tickets == nil || clients == nil || movies == nil {
		panic("nil store passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Clients: clients, Movies: movies, Policy: policy}
}

type createTicketRequest struct {
	ClientID         string   `json:"client_id"`
	MovieName        string   `json:"movie_name"`
	SeatNumber       string   `json:"seat_number"`
	Transport        string   `json:"transport"`
	OrganizationName string   `json:"organization_name"`
	Snacks           []string `json:"snacks"`
}

// Create handles POST /app/tickets. It books a ticket for an existing
// client on a movie resolved by title, enforcing the transport
// whitelist, the conditional organization-name requirement and seat
// uniqueness per movie. On success it returns 201 with the persisted
// ticket joined with the movie title.
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.ClientID == "" || req.MovieName == "" || req.SeatNumber == "" || req.Transport == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Client ID, movie name, seat number and transport are required in the request body.",
		})
	}
	if !h.Policy.Allows(req.Transport) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid transport type. Valid options are: " + strings.Join(h.Policy.Allowed, ", ") + ", " + model.NoTransport,
		})
	}

	ctx := c.Request().Context()
	if _, err := h.Clients.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found."})
		}
		return internalError(c, err)
	}
	movie, err := h.Movies.GetByTitle(ctx, req.MovieName)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found."})
		}
		return internalError(c, err)
	}

	needsOrg := h.Policy.RequiresOrganization(req.Transport)
	if needsOrg && strings.TrimSpace(req.OrganizationName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Organization name is required for " + strings.Join(h.Policy.OrgRequired, " or ") + " transports.",
		})
	}

	taken, err := h.Tickets.SeatTaken(ctx, movie.MovieID, req.SeatNumber, "")
	if err != nil {
		return internalError(c, err)
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "A ticket with the same movie and seat already exists."})
	}

	ticket := model.Ticket{
		ClientID:   req.ClientID,
		MovieID:    movie.MovieID,
		SeatNumber: req.SeatNumber,
		Transport:  req.Transport,
		Snacks:     req.Snacks,
	}
	// Stored only for transports that require it; otherwise the column
	// stays NULL and the response key is omitted.
	if needsOrg {
		org := req.OrganizationName
		ticket.OrganizationName = &org
	}
	if err := h.Tickets.Create(ctx, &ticket); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "A ticket with the same movie and seat already exists."})
		}
		return internalError(c, err)
	}

	// Re-read the persisted row so the response reflects stored state.
	created, err := h.Tickets.GetByID(ctx, ticket.TicketID)
	if err != nil {
		return internalError(c, err)
	}
	view := model.TicketView{Ticket: *created, MovieTitle: movie.Title}

	h.publishBooked(view)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Ticket created successfully.",
		"ticket":  view,
	})
}

// List handles GET /app/tickets. Tickets are returned verbatim with no
// joins or pagination.
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.Tickets.List(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get handles GET /app/tickets/:ticketId.
func (h *TicketHandler) Get(c echo.Context) error {
	ticket, err := h.Tickets.GetByID(c.Request().Context(), c.Param("ticketId"))
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ticket not found."})
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// GetClient handles GET /app/tickets/:ticketId/client. It resolves the
// ticket, then its client, then its movie, reporting 404 distinctly at
// each stage in that order.
func (h *TicketHandler) GetClient(c echo.Context) error {
	ctx := c.Request().Context()
	ticket, err := h.Tickets.GetByID(ctx, c.Param("ticketId"))
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ticket not found."})
		}
		return internalError(c, err)
	}
	client, err := h.Clients.GetByID(ctx, ticket.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found for this ticket."})
		}
		return internalError(c, err)
	}
	movie, err := h.Movies.GetByID(ctx, ticket.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found for this ticket."})
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ticket": model.TicketView{Ticket: *ticket, MovieTitle: movie.Title},
		"client": client,
	})
}

type updateTicketRequest struct {
	MovieName  string `json:"movie_name"`
	SeatNumber string `json:"seat_number"`
}

// Update handles PUT /app/tickets/:ticketId. Only the movie (resolved
// by title) and the seat change; client, transport, snacks and
// organization name are immutable via this path. A missing movie is a
// 400 here, unlike create. Seat uniqueness is re-checked so an update
// cannot introduce a pair that create would have rejected.
func (h *TicketHandler) Update(c echo.Context) error {
	ticketID := c.Param("ticketId")
	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.MovieName == "" || req.SeatNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Movie name and seat number are required in the request body."})
	}

	ctx := c.Request().Context()
	if _, err := h.Tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ticket not found."})
		}
		return internalError(c, err)
	}
	movie, err := h.Movies.GetByTitle(ctx, req.MovieName)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Movie not found."})
		}
		return internalError(c, err)
	}

	taken, err := h.Tickets.SeatTaken(ctx, movie.MovieID, req.SeatNumber, ticketID)
	if err != nil {
		return internalError(c, err)
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "A ticket with the same movie and seat already exists."})
	}

	if err := h.Tickets.UpdateMovieSeat(ctx, ticketID, movie.MovieID, req.SeatNumber); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "A ticket with the same movie and seat already exists."})
		}
		return internalError(c, err)
	}

	updated, err := h.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Ticket updated successfully.",
		"ticket":  model.TicketView{Ticket: *updated, MovieTitle: movie.Title},
	})
}

// Delete handles DELETE /app/tickets/:ticketId.
func (h *TicketHandler) Delete(c echo.Context) error {
	ticketID := c.Param("ticketId")
	if ticketID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Ticket ID is required in the request params."})
	}
	ctx := c.Request().Context()
	if _, err := h.Tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ticket not found."})
		}
		return internalError(c, err)
	}
	if err := h.Tickets.Delete(ctx, ticketID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Ticket deleted successfully."})
}

// publishBooked emits a ticket.booked event for downstream consumers.
// Publishing runs in the background with its own timeout so a slow or
// unreachable broker never delays the HTTP response.
func (h *TicketHandler) publishBooked(view model.TicketView) {
	if h.Publish == nil {
		return
	}
	ev := queue.TicketBookedEvent{
		TicketID:   view.TicketID,
		ClientID:   view.ClientID,
		MovieID:    view.MovieID,
		MovieTitle: view.MovieTitle,
		SeatNumber: view.SeatNumber,
		Transport:  view.Transport,
		Snacks:     view.Snacks,
		BookedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("ticket-handler: publish ticket.booked failed: %v", err)
		}
	}()
}
