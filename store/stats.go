// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/devpatel66/golden-sleek-vision/models"
)

// Dashboard collects the counters shown on /admin.
func (s *Store) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var st models.DashboardStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM blogs),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM services),
			(SELECT COALESCE(SUM(views), 0) FROM blogs),
			(SELECT COUNT(*) FROM job_applications WHERE status = $1)
	`, models.ApplicationPending).Scan(
		&st.TotalUsers,
		&st.TotalBlogs,
		&st.TotalProjects,
		&st.TotalServices,
		&st.TotalBlogViews,
		&st.PendingApplications,
	)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return st, nil
}
