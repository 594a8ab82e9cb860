// internal/access/access_test.go
package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/couturehub/couture-backend/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		role     models.UserType
		resource Resource
		want     Decision
	}{
		{"admin sees all orders", models.UserTypeAdmin, ResourceOrders, AllowAll},
		{"client sees own orders", models.UserTypeClient, ResourceOrders, AllowOwn},
		{"workshop sees own orders", models.UserTypeWorkshop, ResourceOrders, AllowOwn},
		{"admin lists stock movements", models.UserTypeAdmin, ResourceStockMovements, AllowAll},
		{"client denied stock movements", models.UserTypeClient, ResourceStockMovements, Deny},
		{"workshop denied stock movements", models.UserTypeWorkshop, ResourceStockMovements, Deny},
		{"measurements always own-scoped", models.UserTypeClient, ResourceMeasurements, AllowOwn},
		{"admin measurements own-scoped too", models.UserTypeAdmin, ResourceMeasurements, AllowOwn},
		{"admin lists users", models.UserTypeAdmin, ResourceUsers, AllowAll},
		{"client cannot list users", models.UserTypeClient, ResourceUsers, AllowOwn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.role, tt.resource))
		})
	}
}

func TestCanView(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	client := Identity{UserID: owner, Role: models.UserTypeClient}
	admin := Identity{UserID: stranger, Role: models.UserTypeAdmin}

	assert.True(t, CanView(client, ResourceOrders, owner))
	assert.False(t, CanView(client, ResourceOrders, stranger))
	assert.True(t, CanView(admin, ResourceOrders, owner))

	// Stock movements deny record-level reads to non-admins too.
	assert.False(t, CanView(client, ResourceStockMovements, owner))
	assert.True(t, CanView(admin, ResourceStockMovements, owner))

	// Measurements stay own-scoped for every role, admins included.
	assert.True(t, CanView(client, ResourceMeasurements, owner))
	assert.False(t, CanView(admin, ResourceMeasurements, owner))

	assert.True(t, CanView(client, ResourceUsers, owner))
	assert.False(t, CanView(client, ResourceUsers, stranger))
}
