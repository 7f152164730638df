package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestErrorString(t *testing.T) {
	err := Validation("distance", "must be greater than 0")
	assert.Equal(t, "[VALIDATION_ERROR] distance: must be greater than 0", err.Error())

	wrapped := Network("reverse geocode failed", stderrors.New("timeout"))
	assert.Equal(t, "[NETWORK_ERROR] reverse geocode failed: timeout", wrapped.Error())
}

func TestIsTypeFollowsWrapping(t *testing.T) {
	base := Validation("fuel", "must be greater than 0")
	wrapped := fmt.Errorf("compute: %w", base)

	assert.True(t, IsType(wrapped, TypeValidation))
	assert.False(t, IsType(wrapped, TypeLookup))
	assert.False(t, IsType(nil, TypeValidation))
	assert.False(t, IsType(stderrors.New("plain"), TypeValidation))
}

func TestIsTypeSearchesAggregates(t *testing.T) {
	combined := multierr.Combine(
		stderrors.New("unrelated"),
		Validation("price", "must be a finite number"),
	)

	require.Error(t, combined)
	assert.True(t, IsType(combined, TypeValidation))
}

func TestWithContext(t *testing.T) {
	err := NotFound("region", "ZZ").WithContext("source", "catalog")
	assert.Equal(t, "catalog", err.Context["source"])
	assert.True(t, err.Is(TypeNotFound))

	found, ok := As(fmt.Errorf("outer: %w", err))
	require.True(t, ok)
	assert.Equal(t, TypeNotFound, found.Type)
}
