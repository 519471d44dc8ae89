package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportPolicyAllows(t *testing.T) {
	policy := TransportPolicy{
		Allowed:     []string{"Carpool", "PrivateBus", "Cinematdour"},
		OrgRequired: []string{"Cinematdour", "PrivateBus"},
	}

	tests := []struct {
		transport string
		allowed   bool
	}{
		{"Carpool", true},
		{"PrivateBus", true},
		{"Cinematdour", true},
		{NoTransport, true},
		{"Helicopter", false},
		{"carpool", false}, // matching is case-sensitive
		{"", false},
	}
	for _, tc := range tests {
		assert.Equalf(t, tc.allowed, policy.Allows(tc.transport), "Allows(%q)", tc.transport)
	}
}

func TestTransportPolicyAllowsSentinelOnEmptyWhitelist(t *testing.T) {
	var policy TransportPolicy
	assert.True(t, policy.Allows(NoTransport))
	assert.False(t, policy.Allows("Carpool"))
}

func TestTransportPolicyRequiresOrganization(t *testing.T) {
	policy := TransportPolicy{
		Allowed:     []string{"Carpool", "PrivateBus", "Cinematdour"},
		OrgRequired: []string{"Cinematdour", "PrivateBus"},
	}

	assert.True(t, policy.RequiresOrganization("Cinematdour"))
	assert.True(t, policy.RequiresOrganization("PrivateBus"))
	assert.False(t, policy.RequiresOrganization("Carpool"))
	assert.False(t, policy.RequiresOrganization(NoTransport))
}
