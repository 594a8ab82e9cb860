// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/access"
	"github.com/couturehub/couture-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalWorkshops    int64   `json:"total_workshops"`
	TotalOrders       int64   `json:"total_orders"`
	PendingOrders     int64   `json:"pending_orders"`
	InProgressOrders  int64   `json:"in_progress_orders"`
	DeliveredOrders   int64   `json:"delivered_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	LowStockMaterials int64   `json:"low_stock_materials"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats(caller access.Identity) (*DashboardStats, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	s.db.Model(&models.Workshop{}).Where("is_active = ?", true).Count(&stats.TotalWorkshops)
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusInProgress).Count(&stats.InProgressOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.DeliveredOrders)

	s.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_price), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Material{}).
		Where("is_active = ? AND current_stock <= min_stock_level", true).
		Count(&stats.LowStockMaterials)

	return stats, nil
}

// GetRecentAuditLogs lists the latest write-path audit entries.
func (s *AdminService) GetRecentAuditLogs(caller access.Identity, limit int) ([]models.AuditLog, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if limit < 1 || limit > 200 {
		limit = 50
	}

	var logs []models.AuditLog
	if err := s.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, nil
}
