package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/models"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// SearchCriteria are the optional filters for Search. Zero values mean
// "not filtered".
type SearchCriteria struct {
	Query      string // substring over title/company/description/skills
	Location   string // substring over location
	JobType    string // exact match
	Experience string // exact match
}

// Create persists a new active listing owned by ownerID.
func (s *JobService) Create(form *dtos.JobForm, deadline time.Time, ownerID uint) (*models.Job, error) {
	job := &models.Job{
		Title:        form.Title,
		Company:      form.Company,
		Location:     form.Location,
		Description:  form.Description,
		Requirements: form.Requirements,
		SalaryRange:  form.SalaryRange,
		JobType:      form.JobType,
		Experience:   form.Experience,
		Skills:       form.Skills,
		Benefits:     form.Benefits,
		RemoteOption: form.RemoteOption,
		Deadline:     &deadline,
		Status:       models.StatusActive,
		UserID:       ownerID,
	}
	if err := s.DB.Create(job).Error; err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *JobService) ByID(id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("job by id: %w", err)
	}
	return &job, nil
}

// Update overwrites the mutable fields of a listing. Only the owner
// may edit; everyone else gets ErrForbidden with the row untouched.
func (s *JobService) Update(id, actorID uint, form *dtos.EditJobForm, deadline time.Time) (*models.Job, error) {
	job, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if job.UserID != actorID {
		return nil, ErrForbidden
	}

	job.Title = form.Title
	job.Company = form.Company
	job.Location = form.Location
	job.Description = form.Description
	job.Requirements = form.Requirements
	job.SalaryRange = form.SalaryRange
	job.JobType = form.JobType
	job.Experience = form.Experience
	job.Skills = form.Skills
	job.Deadline = &deadline

	if err := s.DB.Save(job).Error; err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Delete hard-deletes a listing. Owner only.
func (s *JobService) Delete(id, actorID uint) error {
	job, err := s.ByID(id)
	if err != nil {
		return err
	}
	if job.UserID != actorID {
		return ErrForbidden
	}
	if err := s.DB.Delete(job).Error; err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// ToggleStatus flips active listings to inactive and back. Closed and
// draft listings are left alone.
func (s *JobService) ToggleStatus(id uint) (*models.Job, error) {
	job, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	var next string
	switch job.Status {
	case models.StatusActive:
		next = models.StatusInactive
	case models.StatusInactive:
		next = models.StatusActive
	default:
		return job, nil
	}
	if err := s.DB.Model(job).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("toggle job status: %w", err)
	}
	job.Status = next
	return job, nil
}

// Board is the public listing: active, not soft-deleted, newest first.
func (s *JobService) Board(page int) (Page[models.Job], error) {
	tx := s.DB.Model(&models.Job{}).
		Where("status = ? AND is_deleted = ?", models.StatusActive, false)
	return paginate[models.Job](tx, page, "created_at DESC")
}

// Search filters active listings by the given criteria. Unlike Board,
// soft-deleted rows are deliberately NOT excluded: search matches on
// status alone, preserving the long-standing behavior callers rely on.
func (s *JobService) Search(c SearchCriteria, page int) (Page[models.Job], error) {
	tx := s.DB.Model(&models.Job{}).Where("status = ?", models.StatusActive)

	if c.Query != "" {
		like := "%" + c.Query + "%"
		tx = tx.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(skills) LIKE LOWER(?)",
			like, like, like, like,
		)
	}
	if c.Location != "" {
		tx = tx.Where("LOWER(location) LIKE LOWER(?)", "%"+c.Location+"%")
	}
	if c.JobType != "" {
		tx = tx.Where("job_type = ?", c.JobType)
	}
	if c.Experience != "" {
		tx = tx.Where("experience_level = ?", c.Experience)
	}

	return paginate[models.Job](tx, page, "created_at DESC")
}

// Latest returns the n newest visible listings for the index page.
func (s *JobService) Latest(n int) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.
		Where("status = ? AND is_deleted = ?", models.StatusActive, false).
		Order("created_at DESC").
		Limit(n).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("latest jobs: %w", err)
	}
	return jobs, nil
}

// ByOwner lists everything a user has posted, newest first, for their
// dashboard. Includes inactive and soft-deleted rows on purpose.
func (s *JobService) ByOwner(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("jobs by owner: %w", err)
	}
	return jobs, nil
}

// List pages through every listing for the admin panel, id ascending.
func (s *JobService) List(page int) (Page[models.Job], error) {
	return paginate[models.Job](s.DB.Model(&models.Job{}), page, "id ASC")
}

// Recent returns the n newest listings for the admin dashboard.
func (s *JobService) Recent(n int) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.DB.Order("created_at DESC").Limit(n).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("recent jobs: %w", err)
	}
	return jobs, nil
}
