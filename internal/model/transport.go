package model

// NoTransport is the sentinel value a client submits when booking a
// ticket without any ground transportation.  It is accepted regardless
// of the configured whitelist.
const NoTransport = "No transport"

// Transport represents a ground-transportation offer managed by the
// festival.  Note that the transport field on a Ticket stores only the
// transport type string; it is not a foreign key into this table.
//
// Fields:
//  TransportID               – sequential identifier with the "tp" prefix.
//  TransportType             – one of the whitelisted transport kinds.
//  Name                      – display name of the offer.
//  Capacity                  – number of seats available.
//  Availability              – whether the offer is currently bookable.
//  StudentInstitutionalPrice – discounted price tier.
//  GeneralPrice              – standard price tier.
//  AgentID                   – opaque identifier of the agent (UUID).
//  AgentName                 – display name of the agent.
type Transport struct {
	TransportID               string  `json:"transport_id"`                // transports.transport_id
	TransportType             string  `json:"transport_type"`              // transports.transport_type
	Name                      string  `json:"name"`                        // transports.name
	Capacity                  int     `json:"capacity"`                    // transports.capacity
	Availability              bool    `json:"availability"`                // transports.availability
	StudentInstitutionalPrice float64 `json:"student_institutional_price"` // transports.student_institutional_price
	GeneralPrice              float64 `json:"general_price"`               // transports.general_price
	AgentID                   string  `json:"agent_id"`                    // transports.agent_id
	AgentName                 string  `json:"agent_name"`                  // transports.agent_name
}

// TransportPolicy is the closed whitelist of transport kinds accepted
// on a ticket, together with the subset that requires an organization
// name.  The policy is loaded from configuration and injected into the
// ticket workflow rather than read from a package-level constant.
type TransportPolicy struct {
	Allowed     []string // transport types accepted on a ticket
	OrgRequired []string // subset of Allowed that requires organization_name
}

// Allows reports whether t is a valid transport value for a ticket.
// The NoTransport sentinel is always accepted.
func (p TransportPolicy) Allows(t string) bool {
	if t == NoTransport {
		return true
	}
	for _, v := range p.Allowed {
		if v == t {
			return true
		}
	}
	return false
}

// RequiresOrganization reports whether tickets using transport t must
// carry a non-empty organization name.
func (p TransportPolicy) RequiresOrganization(t string) bool {
	for _, v := range p.OrgRequired {
		if v == t {
			return true
		}
	}
	return false
}
