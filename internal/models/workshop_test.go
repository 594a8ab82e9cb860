// internal/models/workshop_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkshopAverageRating(t *testing.T) {
	// No reviews means no rating, not NaN
	empty := Workshop{}
	assert.Equal(t, 0.0, empty.AverageRating())

	rated := Workshop{Reviews: []Review{
		{Rating: 4},
		{Rating: 5},
	}}
	assert.InDelta(t, 4.5, rated.AverageRating(), 0.001)

	single := Workshop{Reviews: []Review{{Rating: 3}}}
	assert.Equal(t, 3.0, single.AverageRating())
}
