package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionChain(t *testing.T) {
	cases := []struct {
		current TicketStatus
		next    TicketStatus
		want    bool
	}{
		{TicketStatusCreated, TicketStatusAssigned, true},
		{TicketStatusAssigned, TicketStatusStarted, true},
		{TicketStatusStarted, TicketStatusResolved, true},
		{TicketStatusResolved, TicketStatusClosed, true},

		// skipping
		{TicketStatusCreated, TicketStatusStarted, false},
		{TicketStatusCreated, TicketStatusClosed, false},
		{TicketStatusAssigned, TicketStatusResolved, false},

		// reverse
		{TicketStatusAssigned, TicketStatusCreated, false},
		{TicketStatusClosed, TicketStatusResolved, false},

		// self
		{TicketStatusStarted, TicketStatusStarted, false},

		// out of closed
		{TicketStatusClosed, TicketStatusAssigned, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}

func TestNextStatusesLinear(t *testing.T) {
	assert.Equal(t, []TicketStatus{TicketStatusAssigned}, NextStatuses(TicketStatusCreated))
	assert.Equal(t, []TicketStatus{TicketStatusStarted}, NextStatuses(TicketStatusAssigned))
	assert.Equal(t, []TicketStatus{TicketStatusResolved}, NextStatuses(TicketStatusStarted))
	assert.Equal(t, []TicketStatus{TicketStatusClosed}, NextStatuses(TicketStatusResolved))
	assert.Empty(t, NextStatuses(TicketStatusClosed))
}

func TestStatusValidity(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.IsValid())
	}
	assert.False(t, TicketStatus("REOPENED").IsValid())
	assert.False(t, TicketStatus("").IsValid())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, TicketStatusClosed.IsTerminal())
	for _, status := range AllStatuses[:len(AllStatuses)-1] {
		assert.False(t, status.IsTerminal(), string(status))
	}
}

func TestAllowedTransitionsByRole(t *testing.T) {
	ticket := &Ticket{Status: TicketStatusResolved}

	assert.Equal(t, []TicketStatus{TicketStatusClosed}, ticket.AllowedTransitions(RoleAdmin))
	// closing is reserved for admins
	assert.Empty(t, ticket.AllowedTransitions(RoleStaff))
	assert.Empty(t, ticket.AllowedTransitions(RoleClient))

	ticket.Status = TicketStatusAssigned
	assert.Equal(t, []TicketStatus{TicketStatusStarted}, ticket.AllowedTransitions(RoleAdmin))
	assert.Equal(t, []TicketStatus{TicketStatusStarted}, ticket.AllowedTransitions(RoleStaff))
	assert.Empty(t, ticket.AllowedTransitions(RoleClient))

	ticket.Status = TicketStatusClosed
	assert.Empty(t, ticket.AllowedTransitions(RoleAdmin))
	assert.Empty(t, ticket.AllowedTransitions(RoleStaff))
}

func TestStampStatusTime(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	ticket := &Ticket{Status: TicketStatusCreated}

	ticket.StampStatusTime(TicketStatusAssigned, now)
	require.NotNil(t, ticket.AssignedAt)
	assert.Equal(t, now, *ticket.AssignedAt)
	assert.Nil(t, ticket.StartedAt)
	assert.Nil(t, ticket.ResolvedAt)
	assert.Nil(t, ticket.ClosedAt)

	later := now.Add(time.Hour)
	ticket.StampStatusTime(TicketStatusClosed, later)
	require.NotNil(t, ticket.ClosedAt)
	assert.Equal(t, later, *ticket.ClosedAt)
}
