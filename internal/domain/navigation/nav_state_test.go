package navigation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

func TestNavState_DepartAndSettle(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	nav, err := navigation.NewNavState("terra", clock, time.Second)
	require.NoError(t, err)

	// Act
	voyage, err := nav.Depart("minerva", 15)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, navigation.NavStatusTraveling, nav.Status())
	assert.Equal(t, "terra", voyage.Origin)
	assert.Equal(t, "terra", nav.DockedAt(), "display location stays at origin while traveling")
	assert.Equal(t, time.Second, voyage.Remaining(clock.Now()))

	clock.Advance(999 * time.Millisecond)
	assert.Nil(t, nav.Settle())
	assert.False(t, nav.IsDocked())

	clock.Advance(time.Millisecond)
	done := nav.Settle()
	require.NotNil(t, done)
	assert.Equal(t, "minerva", done.Destination)
	assert.True(t, nav.IsDocked())
	assert.Equal(t, "minerva", nav.DockedAt())
	assert.Nil(t, nav.Voyage())
}

func TestNavState_SecondDepartureWhileTravelingIsRejected(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	nav, err := navigation.NewNavState("terra", clock, time.Second)
	require.NoError(t, err)
	_, err = nav.Depart("minerva", 15)
	require.NoError(t, err)

	_, err = nav.Depart("luxuria", 18)

	var navErr *shared.InvalidNavStatusError
	require.True(t, errors.As(err, &navErr))
	assert.Equal(t, "minerva", nav.Voyage().Destination)
}

func TestNavState_DepartToCurrentLocationIsRejected(t *testing.T) {
	nav, err := navigation.NewNavState("terra", shared.NewMockClock(time.Time{}), time.Second)
	require.NoError(t, err)

	_, err = nav.Depart("terra", 0)

	var validationErr *shared.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.True(t, nav.IsDocked())
}

func TestNavState_ZeroDurationArrivesImmediately(t *testing.T) {
	nav, err := navigation.NewNavState("terra", shared.NewMockClock(time.Time{}), 0)
	require.NoError(t, err)

	_, err = nav.Depart("luxuria", 12)
	require.NoError(t, err)

	require.NoError(t, nav.EnsureDocked())
	assert.Equal(t, "luxuria", nav.DockedAt())
}
