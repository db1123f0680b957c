package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedToEmailRFC3339(t *testing.T) {
	e, err := seedToEmail(seedEmail{
		ID: "e-1", Sender: "a@b.c", Subject: "s", Body: "b",
		Timestamp: "2026-01-15T09:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "e-1", e.ID)
	assert.Equal(t, 2026, e.ReceivedAt.Year())
}

func TestSeedToEmailNaiveTimestamp(t *testing.T) {
	e, err := seedToEmail(seedEmail{ID: "e-2", Timestamp: "2026-01-15T09:30:00"})
	require.NoError(t, err)
	assert.Equal(t, 9, e.ReceivedAt.Hour())
}

func TestSeedToEmailBadTimestamp(t *testing.T) {
	_, err := seedToEmail(seedEmail{ID: "e-3", Timestamp: "yesterday"})
	assert.Error(t, err)
}

func TestRoundHelpers(t *testing.T) {
	assert.Equal(t, 1.7, round1(1.666))
	assert.Equal(t, 83.33, round2(83.3333))
}
