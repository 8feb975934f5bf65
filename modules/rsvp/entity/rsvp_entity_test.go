package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestNames_ValueScanRoundTrip(t *testing.T) {
	original := GuestNames{"Anna Lee", "Ben O'Brien-Cole"}

	value, err := original.Value()
	require.NoError(t, err)
	require.NotNil(t, value)

	var scanned GuestNames
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

// An empty party stores as NULL, not as an empty JSON array.
func TestGuestNames_EmptyStoresAsNull(t *testing.T) {
	for _, names := range []GuestNames{nil, {}} {
		value, err := names.Value()
		require.NoError(t, err)
		assert.Nil(t, value)
	}
}

func TestGuestNames_ScanNullYieldsNil(t *testing.T) {
	scanned := GuestNames{"stale"}
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestGuestNames_ScanRejectsNonBytes(t *testing.T) {
	var scanned GuestNames
	assert.Error(t, scanned.Scan(42))
}
