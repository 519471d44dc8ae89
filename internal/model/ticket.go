package model

// Ticket is the central booking record.  It links a client, a movie, a
// seat and a transport choice, plus an optional list of snack names.
// The (movie_id, seat_number) pair is unique across all tickets.
//
// OrganizationName is a pointer so that the JSON key is omitted
// entirely, not rendered as null, when the transport category does not
// require one.
//
// Fields:
//  TicketID         – sequential identifier with the "t" prefix.
//  ClientID         – identifier of the booking client.
//  MovieID          – identifier of the booked movie, resolved from a title.
//  SeatNumber       – freeform seat label, unique per movie.
//  Transport        – whitelisted transport type or the NoTransport sentinel.
//  Snacks           – freeform snack names, unvalidated against the catalog.
//  OrganizationName – set only for transports that require an organization.
type Ticket struct {
	TicketID         string   `json:"ticket_id"`                   // tickets.ticket_id
	ClientID         string   `json:"client_id"`                   // tickets.client_id
	MovieID          string   `json:"movie_id"`                    // tickets.movie_id
	SeatNumber       string   `json:"seat_number"`                 // tickets.seat_number
	Transport        string   `json:"transport"`                   // tickets.transport
	Snacks           []string `json:"snacks"`                      // tickets.snacks (JSON text)
	OrganizationName *string  `json:"organization_name,omitempty"` // tickets.organization_name (nullable)
}

// TicketView is the response shape returned by the booking workflow.
// It extends the stored ticket with the movie title joined in for
// display.
type TicketView struct {
	Ticket
	MovieTitle string `json:"movie_title"`
}
