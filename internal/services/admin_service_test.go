package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjobs/openjobs/internal/models"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	admin := NewAdminService(db)

	owner := seedUser(t, db, "owner")
	seedUser(t, db, "second")
	seedJob(t, db, owner, nil)
	seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusInactive })
	seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusClosed })

	stats, err := admin.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.TotalJobs)
	assert.EqualValues(t, 1, stats.ActiveJobs)
	// No write path assigns the "pending" status, so this counter is
	// structurally zero.
	assert.EqualValues(t, 0, stats.PendingJobs)
}
