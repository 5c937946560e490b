package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/models"
)

// ProfileService defines the personal info operations required by ProfileHandler.
type ProfileService interface {
	Get(ctx context.Context) (*models.PersonalInfo, error)
	Save(ctx context.Context, p models.PersonalInfo) (*models.PersonalInfo, error)
}

// ProfileHandler serves /api/profile.
type ProfileHandler struct {
	Profile ProfileService
	Log     *zap.Logger
}

// ProfileRequest is the body of PUT /api/profile. It replaces the whole profile.
type ProfileRequest struct {
	Name            string  `json:"name" validate:"required"`
	Title           string  `json:"title" validate:"required"`
	Bio             string  `json:"bio"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone"`
	Location        string  `json:"location"`
	LinkedinURL     *string `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL       *string `json:"github_url" validate:"omitempty,url"`
	ResumeURL       *string `json:"resume_url" validate:"omitempty,url"`
	ProfileImageURL *string `json:"profile_image_url" validate:"omitempty,url"`
}

func (r *ProfileRequest) normalize() {
	trim(&r.Name)
	trim(&r.Title)
	trim(&r.Bio)
	trim(&r.Email)
	trim(&r.Location)
	blankToNil(&r.Phone)
	blankToNil(&r.LinkedinURL)
	blankToNil(&r.GithubURL)
	blankToNil(&r.ResumeURL)
	blankToNil(&r.ProfileImageURL)
}

func (r *ProfileRequest) fieldMessage(field, _ string) string {
	switch field {
	case "name":
		return "Name is required"
	case "title":
		return "Title is required"
	case "email":
		return "Valid email is required"
	case "linkedin_url":
		return "Invalid LinkedIn URL"
	case "github_url":
		return "Invalid GitHub URL"
	case "resume_url":
		return "Invalid Resume URL"
	case "profile_image_url":
		return "Invalid Profile Image URL"
	}
	return ""
}

// Get returns the profile, or JSON null before one has been saved.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profile.Get(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Save creates the profile or overwrites the existing one.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, err := h.Profile.Save(r.Context(), models.PersonalInfo{
		Name:            req.Name,
		Title:           req.Title,
		Bio:             req.Bio,
		Email:           req.Email,
		Phone:           req.Phone,
		Location:        req.Location,
		LinkedinURL:     req.LinkedinURL,
		GithubURL:       req.GithubURL,
		ResumeURL:       req.ResumeURL,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
