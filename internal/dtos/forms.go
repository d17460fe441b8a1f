package dtos

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DeadlineLayout is the wire format for the job deadline date field.
const DeadlineLayout = "2006-01-02"

var usernameRe = regexp.MustCompile(`^\w+$`)

func init() {
	// gin binds forms through go-playground/validator; hook in the
	// username charset rule so it reads like any other tag.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	}
}

type RegisterForm struct {
	Name     string `form:"name" binding:"required,min=2,max=100"`
	Username string `form:"username" binding:"required,min=4,max=20,username"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8,max=72"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type AdminLoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type JobForm struct {
	Title        string `form:"title" binding:"required,min=5,max=200"`
	Company      string `form:"company" binding:"required,min=2,max=100"`
	Location     string `form:"location" binding:"required,min=2,max=100"`
	JobType      string `form:"job_type" binding:"required,oneof=Full-time Part-time Contract Internship"`
	Experience   string `form:"experience_level" binding:"required,oneof=Entry Mid Senior"`
	SalaryRange  string `form:"salary_range" binding:"omitempty,max=100"`
	Skills       string `form:"skills" binding:"required,min=5,max=500"`
	Description  string `form:"description" binding:"required,min=50,max=5000"`
	Requirements string `form:"requirements" binding:"required,min=50,max=3000"`
	Deadline     string `form:"deadline" binding:"required"`
	Benefits     string `form:"benefits" binding:"omitempty,max=2000"`
	RemoteOption string `form:"remote_option" binding:"omitempty,max=50"`
}

// ParseDeadline reports a malformed date as an ordinary error so the
// handler can surface it inline instead of faulting.
func (f *JobForm) ParseDeadline() (time.Time, error) {
	return time.Parse(DeadlineLayout, f.Deadline)
}

// EditJobForm deliberately carries no length validators: the edit path
// accepts raw form values and overwrites the listing wholesale. Only
// the deadline gets parsed, and a bad date is reported, not fatal.
type EditJobForm struct {
	Title        string `form:"title"`
	Company      string `form:"company"`
	Location     string `form:"location"`
	JobType      string `form:"job_type"`
	Experience   string `form:"experience_level"`
	SalaryRange  string `form:"salary_range"`
	Skills       string `form:"skills"`
	Description  string `form:"description"`
	Requirements string `form:"requirements"`
	Deadline     string `form:"deadline"`
}

func (f *EditJobForm) ParseDeadline() (time.Time, error) {
	return time.Parse(DeadlineLayout, f.Deadline)
}

// fieldMessages maps validation tag -> user-facing message, keyed the
// way the templates highlight fields.
var fieldMessages = map[string]map[string]string{
	"Name":         {"required": "Full name is required.", "min": "Name must be at least 2 characters.", "max": "Name must be at most 100 characters."},
	"Username":     {"required": "Username is required.", "min": "Username must be 4-20 characters.", "max": "Username must be 4-20 characters.", "username": "Username must contain only letters, numbers and underscores."},
	"Email":        {"required": "Email is required.", "email": "Enter a valid email address."},
	"Password":     {"required": "Password is required.", "min": "Password must be 8-72 characters.", "max": "Password must be 8-72 characters."},
	"Title":        {"required": "Job title is required.", "min": "Title must be 5-200 characters.", "max": "Title must be 5-200 characters."},
	"Company":      {"required": "Company name is required.", "min": "Company must be 2-100 characters.", "max": "Company must be 2-100 characters."},
	"Location":     {"required": "Location is required.", "min": "Location must be 2-100 characters.", "max": "Location must be 2-100 characters."},
	"JobType":      {"required": "Select a job type.", "oneof": "Select a job type from the list."},
	"Experience":   {"required": "Select an experience level.", "oneof": "Select an experience level from the list."},
	"SalaryRange":  {"max": "Salary range must be at most 100 characters."},
	"Skills":       {"required": "Required skills are required.", "min": "Skills must be 5-500 characters.", "max": "Skills must be 5-500 characters."},
	"Description":  {"required": "Job description is required.", "min": "Description must be at least 50 characters.", "max": "Description must be at most 5000 characters."},
	"Requirements": {"required": "Requirements are required.", "min": "Requirements must be at least 50 characters.", "max": "Requirements must be at most 3000 characters."},
	"Deadline":     {"required": "Application deadline is required."},
	"Benefits":     {"max": "Benefits must be at most 2000 characters."},
	"RemoteOption": {"max": "Remote option must be at most 50 characters."},
}

// FieldErrors flattens a binding error into field -> message for inline
// display. Anything that is not a validator error becomes a single
// catch-all entry.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["form"] = "Invalid form submission."
		return out
	}
	for _, fe := range verrs {
		if msgs, ok := fieldMessages[fe.Field()]; ok {
			if msg, ok := msgs[fe.Tag()]; ok {
				out[fe.Field()] = msg
				continue
			}
		}
		out[fe.Field()] = "Invalid value."
	}
	return out
}
