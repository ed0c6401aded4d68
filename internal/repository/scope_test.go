package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeContains(t *testing.T) {
	staffID := "staff-1"
	otherStaff := "staff-2"

	assert.True(t, ScopeAll().Contains("client-1", nil))
	assert.True(t, ScopeAll().Contains("client-2", &staffID))

	assert.True(t, ScopeClient("client-1").Contains("client-1", nil))
	assert.False(t, ScopeClient("client-1").Contains("client-2", nil))

	assert.True(t, ScopeStaff(staffID).Contains("client-1", &staffID))
	assert.False(t, ScopeStaff(staffID).Contains("client-1", &otherStaff))
	assert.False(t, ScopeStaff(staffID).Contains("client-1", nil))

	// the zero scope matches nothing
	assert.False(t, ScopeNone().Contains("client-1", &staffID))
}

func TestScopeEmpty(t *testing.T) {
	assert.True(t, ScopeNone().Empty())
	assert.False(t, ScopeAll().Empty())
	assert.False(t, ScopeClient("client-1").Empty())
	assert.False(t, ScopeStaff("staff-1").Empty())
}

func TestScopeClause(t *testing.T) {
	var args []any
	assert.Equal(t, "1=1", ScopeAll().clause("t", &args))
	assert.Empty(t, args)

	args = nil
	assert.Equal(t, "t.client_id=$1", ScopeClient("client-1").clause("t", &args))
	assert.Equal(t, []any{"client-1"}, args)

	args = []any{"existing"}
	assert.Equal(t, "assigned_staff_id=$2", ScopeStaff("staff-1").clause("", &args))
	assert.Equal(t, []any{"existing", "staff-1"}, args)

	args = nil
	assert.Equal(t, "1=0", ScopeNone().clause("t", &args))
	assert.Empty(t, args)
}
