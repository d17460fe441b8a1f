package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/middleware"
	"github.com/openjobs/openjobs/internal/models"
	"github.com/openjobs/openjobs/internal/services"
)

type JobHandler struct {
	Jobs *services.JobService
	Log  *zap.SugaredLogger
}

func NewJobHandler(jobs *services.JobService, log *zap.SugaredLogger) *JobHandler {
	return &JobHandler{Jobs: jobs, Log: log}
}

// Board is the public listing page.
func (h *JobHandler) Board(c *gin.Context) {
	page, err := h.Jobs.Board(pageParam(c))
	if err != nil {
		h.Log.Errorw("job board", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "jobs/board.html", gin.H{"Page": page})
}

// requireAdmin gates job creation. Posting listings is an admin
// privilege while edit/delete stay ownership-only; regular users get
// bounced back to the board with a message.
func (h *JobHandler) requireAdmin(c *gin.Context) *models.User {
	user := middleware.UserFrom(c)
	if user == nil || !user.IsAdmin {
		middleware.Flash(c, "error", "Only administrators can post job listings.")
		c.Redirect(http.StatusFound, "/jobs")
		return nil
	}
	return user
}

func (h *JobHandler) CreateForm(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	Render(c, http.StatusOK, "jobs/create.html", gin.H{
		"JobTypes":         models.JobTypes,
		"ExperienceLevels": models.ExperienceLevels,
	})
}

func (h *JobHandler) Create(c *gin.Context) {
	user := h.requireAdmin(c)
	if user == nil {
		return
	}

	renderForm := func(form dtos.JobForm, errs map[string]string) {
		Render(c, http.StatusOK, "jobs/create.html", gin.H{
			"Form":             form,
			"Errors":           errs,
			"JobTypes":         models.JobTypes,
			"ExperienceLevels": models.ExperienceLevels,
		})
	}

	var form dtos.JobForm
	if err := c.ShouldBind(&form); err != nil {
		renderForm(form, dtos.FieldErrors(err))
		return
	}
	deadline, err := form.ParseDeadline()
	if err != nil {
		renderForm(form, map[string]string{"Deadline": "Enter the deadline as YYYY-MM-DD."})
		return
	}

	if _, err := h.Jobs.Create(&form, deadline, user.ID); err != nil {
		// Commit failures on creation are reported, not faulted.
		h.Log.Errorw("create job", "err", err)
		middleware.Flash(c, "error", "Could not save the job listing. Please try again.")
		renderForm(form, nil)
		return
	}
	middleware.Flash(c, "success", "Job listing created successfully!")
	c.Redirect(http.StatusFound, "/jobs")
}

// View is the public detail page.
func (h *JobHandler) View(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return
	}
	job, err := h.Jobs.ByID(id)
	if errors.Is(err, services.ErrNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		h.Log.Errorw("view job", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "jobs/view.html", gin.H{"Job": job})
}

// ownedJob loads the listing and checks ownership, handling the
// redirect-and-flash itself on failure.
func (h *JobHandler) ownedJob(c *gin.Context, verb string) *models.Job {
	id, ok := paramID(c)
	if !ok {
		NotFound(c)
		return nil
	}
	job, err := h.Jobs.ByID(id)
	if errors.Is(err, services.ErrNotFound) {
		NotFound(c)
		return nil
	}
	if err != nil {
		h.Log.Errorw("load job", "err", err)
		Fault(c)
		return nil
	}
	user := middleware.UserFrom(c)
	if user == nil || job.UserID != user.ID {
		middleware.Flash(c, "error", fmt.Sprintf("You do not have permission to %s this job listing.", verb))
		c.Redirect(http.StatusFound, "/jobs")
		return nil
	}
	return job
}

func (h *JobHandler) EditForm(c *gin.Context) {
	job := h.ownedJob(c, "edit")
	if job == nil {
		return
	}
	Render(c, http.StatusOK, "jobs/edit.html", gin.H{
		"Job":              job,
		"JobTypes":         models.JobTypes,
		"ExperienceLevels": models.ExperienceLevels,
	})
}

func (h *JobHandler) Edit(c *gin.Context) {
	job := h.ownedJob(c, "edit")
	if job == nil {
		return
	}

	var form dtos.EditJobForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusOK, "jobs/edit.html", gin.H{
			"Job": job, "Errors": dtos.FieldErrors(err),
			"JobTypes": models.JobTypes, "ExperienceLevels": models.ExperienceLevels,
		})
		return
	}
	deadline, err := form.ParseDeadline()
	if err != nil {
		Render(c, http.StatusOK, "jobs/edit.html", gin.H{
			"Job": job, "Errors": map[string]string{"Deadline": "Enter the deadline as YYYY-MM-DD."},
			"JobTypes": models.JobTypes, "ExperienceLevels": models.ExperienceLevels,
		})
		return
	}

	user := middleware.UserFrom(c)
	updated, err := h.Jobs.Update(job.ID, user.ID, &form, deadline)
	if err != nil {
		h.Log.Errorw("edit job", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "success", "Job listing updated successfully!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/jobs/%d", updated.ID))
}

func (h *JobHandler) Delete(c *gin.Context) {
	job := h.ownedJob(c, "delete")
	if job == nil {
		return
	}
	user := middleware.UserFrom(c)
	if err := h.Jobs.Delete(job.ID, user.ID); err != nil {
		h.Log.Errorw("delete job", "err", err)
		Fault(c)
		return
	}
	middleware.Flash(c, "success", "Job listing deleted successfully!")
	c.Redirect(http.StatusFound, "/jobs")
}

// Search filters the board by free text and the enum facets.
func (h *JobHandler) Search(c *gin.Context) {
	criteria := services.SearchCriteria{
		Query:      c.Query("q"),
		Location:   c.Query("location"),
		JobType:    c.Query("type"),
		Experience: c.Query("experience"),
	}
	page, err := h.Jobs.Search(criteria, pageParam(c))
	if err != nil {
		h.Log.Errorw("search jobs", "err", err)
		Fault(c)
		return
	}
	Render(c, http.StatusOK, "jobs/search.html", gin.H{
		"Page":             page,
		"Criteria":         criteria,
		"JobTypes":         models.JobTypes,
		"ExperienceLevels": models.ExperienceLevels,
	})
}
