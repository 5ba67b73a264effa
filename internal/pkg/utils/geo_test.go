package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// Praça da Sé to Avenida Paulista (MASP), roughly 2.6km
	d := CalculateHaversineDistance(-23.5505, -46.6333, -23.5614, -46.6559)
	assert.InDelta(t, 2600, d, 150)

	assert.Zero(t, CalculateHaversineDistance(-23.5505, -46.6333, -23.5505, -46.6333))
}

func TestGeofence_Contains(t *testing.T) {
	office := Geofence{Latitude: -23.5505, Longitude: -46.6333, RadiusMeters: 1000}

	inside, d := office.Contains(-23.5510, -46.6340)
	assert.True(t, inside)
	assert.Less(t, d, 1000.0)

	outside, d := office.Contains(-23.5614, -46.6559)
	assert.False(t, outside)
	assert.Greater(t, d, 1000.0)
}
