package models

import (
	"time"
)

// Job status values. Only "active" jobs show up on the public board,
// and only active/inactive participate in the admin toggle.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusClosed   = "closed"
	StatusDraft    = "draft"
)

// JobTypes and ExperienceLevels are the allowed values for the
// corresponding Job fields, in form display order.
var (
	JobTypes         = []string{"Full-time", "Part-time", "Contract", "Internship"}
	ExperienceLevels = []string{"Entry", "Mid", "Senior"}
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Username  string    `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:60;not null" json:"-"` // bcrypt hash, never exposed
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`

	// Deleting a user takes their listings with it. No route exposes
	// user deletion; the cascade only matters for manual cleanup.
	Jobs []Job `gorm:"constraint:OnDelete:CASCADE" json:"jobs,omitempty"`
}

type Job struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	IsDeleted bool `gorm:"default:false" json:"is_deleted"` // soft delete, hides from the board

	Title        string `gorm:"size:100;not null" json:"title"`
	Company      string `gorm:"size:100;not null" json:"company"`
	Location     string `gorm:"size:100;not null" json:"location"`
	Description  string `gorm:"type:text;not null" json:"description"`
	Requirements string `gorm:"type:text;not null" json:"requirements"`
	SalaryRange  string `gorm:"size:50" json:"salary_range"`
	JobType      string `gorm:"size:50;not null" json:"job_type"`
	Experience   string `gorm:"size:50;column:experience_level" json:"experience_level"`
	Skills       string `gorm:"size:200" json:"skills"` // comma-separated
	Benefits     string `gorm:"type:text" json:"benefits"`
	RemoteOption string `gorm:"size:50" json:"remote_option"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Deadline  *time.Time `json:"deadline"`
	Status    string     `gorm:"size:20;default:'active'" json:"status"`

	// Counters kept for schema parity with the dashboard; nothing
	// increments them yet.
	ViewsCount        int `gorm:"default:0" json:"views_count"`
	ApplicationsCount int `gorm:"default:0" json:"applications_count"`

	UserID uint `gorm:"not null;index" json:"user_id"`
}

// Visible reports whether the job may appear on public board pages.
func (j *Job) Visible() bool {
	return j.Status == StatusActive && !j.IsDeleted
}
