package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisFeedbackStore_BadURL(t *testing.T) {
	var logs testLogs
	_, err := NewRedisFeedbackStore("mongodb://localhost:27017", logs.logger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
