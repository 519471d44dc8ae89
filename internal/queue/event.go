// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketBookedEvent is published when a ticket is successfully booked.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type TicketBookedEvent struct {
	TicketID   string   `json:"ticket_id"`
	ClientID   string   `json:"client_id"`
	MovieID    string   `json:"movie_id"`
	MovieTitle string   `json:"movie_title"`
	SeatNumber string   `json:"seat_number"`
	Transport  string   `json:"transport"`
	Snacks     []string `json:"snacks"`
	BookedAt   string   `json:"booked_at"`
}
