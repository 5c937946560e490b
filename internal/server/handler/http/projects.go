package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/middleware"
	"github.com/atinyakov/portfolio/internal/models"
)

const (
	msgProjectNotFound  = "Project not found"
	msgInvalidProjectID = "Invalid project ID"
)

// ProjectService defines the project operations required by ProjectHandler.
type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Featured(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	Update(ctx context.Context, id int64, p models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectHandler serves /api/projects. Mutations need any authenticated user.
type ProjectHandler struct {
	Projects ProjectService
	Log      *zap.Logger
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Title           string               `json:"title" validate:"required"`
	Description     string               `json:"description" validate:"required"`
	LongDescription *string              `json:"long_description"`
	Technologies    *models.StringList   `json:"technologies" validate:"required"`
	ImageURL        *string              `json:"image_url" validate:"omitempty,url"`
	DemoURL         *string              `json:"demo_url" validate:"omitempty,url"`
	GithubURL       *string              `json:"github_url" validate:"omitempty,url"`
	IsFeatured      *bool                `json:"is_featured"`
	DisplayOrder    *int                 `json:"display_order" validate:"required,min=0"`
	Status          models.ProjectStatus `json:"status" validate:"required,oneof=completed in-progress planned"`
}

func (r *CreateProjectRequest) normalize() {
	trim(&r.Title)
	trim(&r.Description)
	blankToNil(&r.LongDescription)
	blankToNil(&r.ImageURL)
	blankToNil(&r.DemoURL)
	blankToNil(&r.GithubURL)
}

var projectMessages = map[string]string{
	"title":         "Title is required",
	"description":   "Description is required",
	"technologies":  "Technologies must be an array",
	"status":        "Invalid status",
	"display_order": "Display order must be a non-negative integer",
}

func (r *CreateProjectRequest) fieldMessage(field, _ string) string {
	return projectMessages[field]
}

func (r *CreateProjectRequest) project() models.Project {
	p := models.Project{
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Technologies:    *r.Technologies,
		ImageURL:        r.ImageURL,
		DemoURL:         r.DemoURL,
		GithubURL:       r.GithubURL,
		DisplayOrder:    *r.DisplayOrder,
		Status:          r.Status,
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}
	return p
}

// UpdateProjectRequest is the body of PUT /api/projects/{id}. Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Title           *string               `json:"title" validate:"omitempty,min=1"`
	Description     *string               `json:"description" validate:"omitempty,min=1"`
	LongDescription *string               `json:"long_description"`
	Technologies    *models.StringList    `json:"technologies"`
	ImageURL        *string               `json:"image_url" validate:"omitempty,url"`
	DemoURL         *string               `json:"demo_url" validate:"omitempty,url"`
	GithubURL       *string               `json:"github_url" validate:"omitempty,url"`
	IsFeatured      *bool                 `json:"is_featured"`
	DisplayOrder    *int                  `json:"display_order" validate:"omitempty,min=0"`
	Status          *models.ProjectStatus `json:"status" validate:"omitempty,oneof=completed in-progress planned"`
}

func (r *UpdateProjectRequest) normalize() {
	trim(r.Title)
	trim(r.Description)
}

func (r *UpdateProjectRequest) fieldMessage(field, _ string) string {
	if field == "status" || field == "display_order" {
		return projectMessages[field]
	}
	return ""
}

func (r *UpdateProjectRequest) patch() models.ProjectPatch {
	return models.ProjectPatch{
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Technologies:    r.Technologies,
		ImageURL:        r.ImageURL,
		DemoURL:         r.DemoURL,
		GithubURL:       r.GithubURL,
		IsFeatured:      r.IsFeatured,
		DisplayOrder:    r.DisplayOrder,
		Status:          r.Status,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Featured(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.Featured(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidProjectID)
	if !ok {
		return
	}
	p, err := h.Projects.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, h.Log, err, msgProjectNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, err := h.Projects.Create(r.Context(), req.project())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	h.Log.Info("project created", zap.Int64("project_id", p.ID), zap.Int64("user_id", callerID(r)))
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": p,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidProjectID)
	if !ok {
		return
	}
	var req UpdateProjectRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, err := h.Projects.Update(r.Context(), id, req.patch())
	if err != nil {
		writeFailure(w, h.Log, err, msgProjectNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Project updated successfully",
		"project": p,
	})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidProjectID)
	if !ok {
		return
	}
	if err := h.Projects.Delete(r.Context(), id); err != nil {
		writeFailure(w, h.Log, err, msgProjectNotFound)
		return
	}
	h.Log.Info("project deleted", zap.Int64("project_id", id), zap.Int64("user_id", callerID(r)))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func callerID(r *http.Request) int64 {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return 0
}
