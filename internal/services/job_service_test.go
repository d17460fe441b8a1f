package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/models"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedJob(t *testing.T, db *gorm.DB, owner *models.User, mutate func(*models.Job)) *models.Job {
	t.Helper()
	deadline := time.Now().AddDate(0, 1, 0)
	job := &models.Job{
		Title:        "Software Engineer",
		Company:      "Acme",
		Location:     "Lagos, Nigeria",
		Description:  "Build and maintain backend services for the hiring platform.",
		Requirements: "Several years of backend experience with a relational store.",
		JobType:      "Full-time",
		Experience:   "Mid",
		Skills:       "Go, SQL",
		Deadline:     &deadline,
		Status:       models.StatusActive,
		UserID:       owner.ID,
	}
	if mutate != nil {
		mutate(job)
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func jobForm() *dtos.JobForm {
	return &dtos.JobForm{
		Title:        "Senior Engineer",
		Company:      "Acme",
		Location:     "Remote, Worldwide",
		JobType:      "Full-time",
		Experience:   "Senior",
		Skills:       "Go, Postgres, Kubernetes",
		Description:  "Own the backend of our job platform end to end, from schema to deploy.",
		Requirements: "At least five years building production web services in a typed language.",
		Deadline:     "2026-12-31",
	}
}

func TestCreatePersistsActiveListing(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	deadline, err := jobForm().ParseDeadline()
	require.NoError(t, err)

	job, err := jobs.Create(jobForm(), deadline, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, job.Status)
	assert.False(t, job.IsDeleted)
	assert.Equal(t, owner.ID, job.UserID)
	require.NotNil(t, job.Deadline)
	assert.Equal(t, "2026-12-31", job.Deadline.Format(dtos.DeadlineLayout))
}

func TestBoardOnlyShowsVisibleJobs(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	visible := seedJob(t, db, owner, nil)
	seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusInactive })
	seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusClosed })
	seedJob(t, db, owner, func(j *models.Job) { j.IsDeleted = true })

	page, err := jobs.Board(1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, visible.ID, page.Items[0].ID)
	for _, j := range page.Items {
		assert.Equal(t, models.StatusActive, j.Status)
		assert.False(t, j.IsDeleted)
	}
}

func TestBoardOrderAndPagination(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		seedJob(t, db, owner, func(j *models.Job) {
			j.Title = fmt.Sprintf("Listing %02d", i)
			j.CreatedAt = created
		})
	}

	page, err := jobs.Board(1)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.EqualValues(t, 12, page.Total)
	// newest first
	assert.Equal(t, "Listing 11", page.Items[0].Title)
	assert.Equal(t, "Listing 02", page.Items[9].Title)

	page, err = jobs.Board(2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Listing 01", page.Items[0].Title)
}

func TestSearchFreeTextIsCaseInsensitiveOverFourFields(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	inTitle := seedJob(t, db, owner, func(j *models.Job) { j.Title = "Staff ENGINEER" })
	inCompany := seedJob(t, db, owner, func(j *models.Job) { j.Company = "Engineer Labs" })
	inDescription := seedJob(t, db, owner, func(j *models.Job) {
		j.Description = "We need an engineer who enjoys owning systems end to end."
	})
	inSkills := seedJob(t, db, owner, func(j *models.Job) { j.Skills = "engineering, Go" })
	seedJob(t, db, owner, func(j *models.Job) {
		j.Title, j.Company, j.Description, j.Skills = "Designer", "Acme", "Make beautiful interfaces for our users every single day.", "Figma"
	})

	page, err := jobs.Search(SearchCriteria{Query: "engineer"}, 1)
	require.NoError(t, err)

	ids := map[uint]bool{}
	for _, j := range page.Items {
		ids[j.ID] = true
	}
	assert.True(t, ids[inTitle.ID])
	assert.True(t, ids[inCompany.ID])
	assert.True(t, ids[inDescription.ID])
	assert.True(t, ids[inSkills.ID])
	assert.Len(t, page.Items, 4)
}

func TestSearchIgnoresSoftDeleteButRequiresActive(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	softDeleted := seedJob(t, db, owner, func(j *models.Job) { j.IsDeleted = true })
	seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusInactive })

	page, err := jobs.Search(SearchCriteria{}, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, softDeleted.ID, page.Items[0].ID)
	assert.Equal(t, models.StatusActive, page.Items[0].Status)
}

func TestSearchFiltersCombineWithAnd(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	match := seedJob(t, db, owner, func(j *models.Job) {
		j.Title, j.Location, j.JobType, j.Experience = "Backend Engineer", "Berlin, Germany", "Full-time", "Senior"
	})
	seedJob(t, db, owner, func(j *models.Job) {
		j.Title, j.Location, j.JobType, j.Experience = "Backend Engineer", "Berlin, Germany", "Contract", "Senior"
	})
	seedJob(t, db, owner, func(j *models.Job) {
		j.Title, j.Location, j.JobType, j.Experience = "Backend Engineer", "Lagos, Nigeria", "Full-time", "Senior"
	})

	page, err := jobs.Search(SearchCriteria{
		Query:      "backend",
		Location:   "berlin",
		JobType:    "Full-time",
		Experience: "Senior",
	}, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, match.ID, page.Items[0].ID)
}

func TestSearchEnumFiltersAreExactMatch(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "poster")

	seedJob(t, db, owner, func(j *models.Job) { j.JobType = "Full-time" })

	// "Full" is a substring, not an exact value, so it must not match.
	page, err := jobs.Search(SearchCriteria{JobType: "Full"}, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "owner")
	intruder := seedUser(t, db, "intruder")
	job := seedJob(t, db, owner, nil)

	form := &dtos.EditJobForm{Title: "Hijacked", Deadline: "2026-01-01"}
	deadline, err := form.ParseDeadline()
	require.NoError(t, err)

	_, err = jobs.Update(job.ID, intruder.ID, form, deadline)
	assert.ErrorIs(t, err, ErrForbidden)

	var stored models.Job
	require.NoError(t, db.First(&stored, job.ID).Error)
	assert.Equal(t, job.Title, stored.Title)
}

func TestUpdateOverwritesFields(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "owner")
	job := seedJob(t, db, owner, nil)

	form := &dtos.EditJobForm{
		Title:        "Updated Title",
		Company:      "New Co",
		Location:     "Nairobi, Kenya",
		JobType:      "Contract",
		Experience:   "Senior",
		SalaryRange:  "$90k-$120k",
		Skills:       "Go, gRPC",
		Description:  "d",
		Requirements: "r",
		Deadline:     "2027-06-30",
	}
	deadline, err := form.ParseDeadline()
	require.NoError(t, err)

	updated, err := jobs.Update(job.ID, owner.ID, form, deadline)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "Contract", updated.JobType)
	// the edit path skips creation validators on purpose
	assert.Equal(t, "d", updated.Description)

	var stored models.Job
	require.NoError(t, db.First(&stored, job.ID).Error)
	assert.Equal(t, "Updated Title", stored.Title)
	assert.Equal(t, "2027-06-30", stored.Deadline.Format(dtos.DeadlineLayout))
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "owner")
	intruder := seedUser(t, db, "intruder")
	job := seedJob(t, db, owner, nil)

	err := jobs.Delete(job.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, jobs.Delete(job.ID, owner.ID))
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleStatusOnlyTouchesActiveAndInactive(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "owner")

	active := seedJob(t, db, owner, nil)
	closed := seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusClosed })
	draft := seedJob(t, db, owner, func(j *models.Job) { j.Status = models.StatusDraft })

	toggled, err := jobs.ToggleStatus(active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, toggled.Status)

	toggled, err = jobs.ToggleStatus(active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, toggled.Status)

	toggled, err = jobs.ToggleStatus(closed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, toggled.Status)

	toggled, err = jobs.ToggleStatus(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, toggled.Status)

	_, err = jobs.ToggleStatus(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByOwnerIncludesHiddenListings(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	seedJob(t, db, owner, nil)
	seedJob(t, db, owner, func(j *models.Job) { j.IsDeleted = true })
	seedJob(t, db, other, nil)

	mine, err := jobs.ByOwner(owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestLatestCapsAndFilters(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	owner := seedUser(t, db, "owner")

	for i := 0; i < 8; i++ {
		seedJob(t, db, owner, nil)
	}
	seedJob(t, db, owner, func(j *models.Job) { j.IsDeleted = true })

	latest, err := jobs.Latest(6)
	require.NoError(t, err)
	assert.Len(t, latest, 6)
	for _, j := range latest {
		assert.True(t, j.Visible())
	}
}
