package services

import (
	"fmt"
	"time"

	"github.com/crewhq/crew-backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates counts over active records for the admin
// dashboard.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats holds the headline totals.
type DashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalOrganisations  int64 `json:"total_organisations"`
	AdminUsers          int64 `json:"admin_users"`
	SuperAdminUsers     int64 `json:"super_admin_users"`
	ActiveOrganisations int64 `json:"active_organisations"`
}

// RoleCounts holds per-role user counts.
type RoleCounts struct {
	SuperAdminCount int64 `json:"super_admin_count"`
	AdminCount      int64 `json:"admin_count"`
	EmployeeCount   int64 `json:"employee_count"`
}

// GrowthStats holds month-bucketed creation counts for the last six months.
type GrowthStats struct {
	Labels        []string `json:"labels"`
	Users         []int64  `json:"users"`
	Organisations []int64  `json:"organisations"`
}

// DashboardData is the full dashboard payload.
type DashboardData struct {
	Stats       DashboardStats `json:"stats"`
	UserRoles   RoleCounts     `json:"user_roles"`
	Growth      GrowthStats    `json:"growth"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Stats computes the dashboard payload over active records.
func (s *DashboardService) Stats() (*DashboardData, error) {
	roleCounts, err := s.countByRole()
	if err != nil {
		return nil, err
	}

	var totalUsers int64
	if err := s.db.Model(&models.User{}).
		Where("is_deleted = ?", false).
		Count(&totalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var totalOrgs int64
	if err := s.db.Model(&models.Organisation{}).
		Where("is_deleted = ?", false).
		Count(&totalOrgs).Error; err != nil {
		return nil, fmt.Errorf("failed to count organisations: %w", err)
	}

	// An organisation is "active" here when it has at least one active member.
	var activeOrgs int64
	err = s.db.Model(&models.Organisation{}).
		Where("is_deleted = ?", false).
		Where("EXISTS (?)", s.db.Model(&models.OrganisationUser{}).
			Select("1").
			Where("organisation_users.organisation_id = organisations.id").
			Where("organisation_users.is_deleted = ?", false)).
		Count(&activeOrgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active organisations: %w", err)
	}

	growth, err := s.growth()
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Stats: DashboardStats{
			TotalUsers:          totalUsers,
			TotalOrganisations:  totalOrgs,
			AdminUsers:          roleCounts.AdminCount,
			SuperAdminUsers:     roleCounts.SuperAdminCount,
			ActiveOrganisations: activeOrgs,
		},
		UserRoles:   *roleCounts,
		Growth:      *growth,
		LastUpdated: time.Now().UTC(),
	}, nil
}

func (s *DashboardService) countByRole() (*RoleCounts, error) {
	counts := &RoleCounts{}
	targets := []struct {
		role models.Role
		dest *int64
	}{
		{models.RoleSuperAdmin, &counts.SuperAdminCount},
		{models.RoleAdmin, &counts.AdminCount},
		{models.RoleEmployee, &counts.EmployeeCount},
	}

	for _, t := range targets {
		err := s.db.Model(&models.User{}).
			Joins("JOIN user_roles ON user_roles.id = users.role_id").
			Where("users.is_deleted = ? AND user_roles.name = ?", false, t.role).
			Count(t.dest).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s users: %w", t.role, err)
		}
	}

	return counts, nil
}

// growth buckets creations by calendar month in Go so the query stays
// portable across the supported drivers.
func (s *DashboardService) growth() (*GrowthStats, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	var userDates []time.Time
	err := s.db.Model(&models.User{}).
		Where("is_deleted = ? AND created_at >= ?", false, start).
		Pluck("created_at", &userDates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user growth: %w", err)
	}

	var orgDates []time.Time
	err = s.db.Model(&models.Organisation{}).
		Where("is_deleted = ? AND created_at >= ?", false, start).
		Pluck("created_at", &orgDates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load organisation growth: %w", err)
	}

	growth := &GrowthStats{
		Labels:        make([]string, 6),
		Users:         make([]int64, 6),
		Organisations: make([]int64, 6),
	}

	bucket := func(ts time.Time) int {
		months := (ts.Year()-start.Year())*12 + int(ts.Month()) - int(start.Month())
		return months
	}

	for i := 0; i < 6; i++ {
		growth.Labels[i] = start.AddDate(0, i, 0).Format("Jan")
	}
	for _, ts := range userDates {
		if i := bucket(ts); i >= 0 && i < 6 {
			growth.Users[i]++
		}
	}
	for _, ts := range orgDates {
		if i := bucket(ts); i >= 0 && i < 6 {
			growth.Organisations[i]++
		}
	}

	return growth, nil
}
