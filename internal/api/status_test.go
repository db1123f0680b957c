package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidActionItemStatus(t *testing.T) {
	assert.True(t, validActionItemStatus("pending"))
	assert.True(t, validActionItemStatus("completed"))
	assert.False(t, validActionItemStatus("overdue"))
	assert.False(t, validActionItemStatus(""))
}

func TestValidFollowUpStatus(t *testing.T) {
	assert.True(t, validFollowUpStatus("pending"))
	assert.True(t, validFollowUpStatus("completed"))
	assert.True(t, validFollowUpStatus("overdue"))
	assert.False(t, validFollowUpStatus("done"))
}
