package model

// Client represents a registered festival attendee.  Clients are
// identified by an opaque UUID generated at registration time and
// referenced by tickets through that identifier.
//
// Fields:
//  ClientID  – opaque unique identifier (UUID).
//  FirstName – attendee first name.
//  LastName  – attendee last name.
//  Phone     – contact phone number (unique).
//  Email     – contact email address (unique).
type Client struct {
	ClientID  string `json:"client_id"`  // clients.client_id
	FirstName string `json:"first_name"` // clients.first_name
	LastName  string `json:"last_name"`  // clients.last_name
	Phone     string `json:"phone"`      // clients.phone
	Email     string `json:"email"`      // clients.email
}
