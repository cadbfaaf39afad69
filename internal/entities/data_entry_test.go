package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataEntryIsTerminal(t *testing.T) {
	entry := DataEntry{Status: StatusPending}
	assert.False(t, entry.IsTerminal())

	entry.Status = StatusApproved
	assert.True(t, entry.IsTerminal())

	entry.Status = StatusRejected
	assert.True(t, entry.IsTerminal())
}
