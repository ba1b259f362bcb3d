package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalErrorWrapsBoth(t *testing.T) {
	cause := errors.New("connection refused")

	err := RetrievalError("erp_so", cause)

	assert.ErrorIs(t, err, ErrRetrieval)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "erp_so")
}

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget("automotive")
	require.NoError(t, err)
	assert.Equal(t, TargetAutomotive, got)

	_, err = ParseTarget("erp_so")
	assert.Error(t, err)
}
