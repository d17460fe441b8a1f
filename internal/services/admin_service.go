package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/openjobs/openjobs/internal/models"
)

// AdminService computes the dashboard metrics. User and job moderation
// live on UserService and JobService.
type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

type DashboardStats struct {
	TotalUsers int64
	TotalJobs  int64
	ActiveJobs int64
	// PendingJobs counts status="pending". No write path assigns that
	// status, so this stays zero; kept until product decides its fate.
	PendingJobs int64
}

func (s *AdminService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest *int64
		tx   *gorm.DB
	}{
		{&stats.TotalUsers, s.DB.Model(&models.User{})},
		{&stats.TotalJobs, s.DB.Model(&models.Job{})},
		{&stats.ActiveJobs, s.DB.Model(&models.Job{}).Where("status = ?", models.StatusActive)},
		{&stats.PendingJobs, s.DB.Model(&models.Job{}).Where("status = ?", "pending")},
	}
	for _, c := range counts {
		if err := c.tx.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
	}
	return stats, nil
}
