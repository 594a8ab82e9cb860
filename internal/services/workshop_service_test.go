// internal/services/workshop_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couturehub/couture-backend/internal/models"
)

func TestAddReviewUpdatesCachedRating(t *testing.T) {
	db := setupTestDB(t)
	service := NewWorkshopService(db)
	_, _, workshop, _, _ := createOrderFixture(t, db)

	reviewerA := createTestUser(t, db, models.UserTypeClient)
	reviewerB := createTestUser(t, db, models.UserTypeClient)

	_, err := service.AddReview(workshop.ID, reviewerA.ID, &AddReviewRequest{Rating: 4, Comment: "solid work"})
	require.NoError(t, err)
	_, err = service.AddReview(workshop.ID, reviewerB.ID, &AddReviewRequest{Rating: 5, Comment: "perfect fit"})
	require.NoError(t, err)

	var updated models.Workshop
	require.NoError(t, db.First(&updated, workshop.ID).Error)
	assert.InDelta(t, 4.5, updated.Rating, 0.001)
}

func TestAddReviewMarksVerifiedAfterDelivery(t *testing.T) {
	db := setupTestDB(t)
	service := NewWorkshopService(db)
	client, _, workshop, model, measurement := createOrderFixture(t, db)

	order := &models.Order{
		UserID:        client.ID,
		ModelID:       model.ID,
		WorkshopID:    workshop.ID,
		MeasurementID: measurement.ID,
		Status:        models.OrderStatusDelivered,
		TotalPrice:    model.Price,
	}
	require.NoError(t, db.Create(order).Error)

	review, err := service.AddReview(workshop.ID, client.ID, &AddReviewRequest{Rating: 5})
	require.NoError(t, err)
	assert.True(t, review.IsVerified)

	// A reviewer with no delivered order stays unverified
	stranger := createTestUser(t, db, models.UserTypeClient)
	review, err = service.AddReview(workshop.ID, stranger.ID, &AddReviewRequest{Rating: 3})
	require.NoError(t, err)
	assert.False(t, review.IsVerified)
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	db := setupTestDB(t)
	service := NewWorkshopService(db)
	_, _, workshop, _, _ := createOrderFixture(t, db)
	reviewer := createTestUser(t, db, models.UserTypeClient)

	for _, rating := range []float64{0, 6} {
		_, err := service.AddReview(workshop.ID, reviewer.ID, &AddReviewRequest{Rating: rating})
		assert.Error(t, err, "rating %v", rating)
	}
}
