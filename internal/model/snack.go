package model

// Snack represents an item on the festival snack menu.  The name acts
// as the primary key.  Tickets reference snacks only by name string,
// without a foreign key, so deleting a snack never touches tickets.
type Snack struct {
	Name      string  `json:"name"`       // snacks.name
	SnackType string  `json:"snack_type"` // snacks.snack_type
	Price     float64 `json:"price"`      // snacks.price
}
