package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/models"
)

const (
	msgExperienceNotFound  = "Experience not found"
	msgInvalidExperienceID = "Invalid experience ID"
)

// ExperienceService defines the work history operations required by ExperienceHandler.
type ExperienceService interface {
	List(ctx context.Context) ([]models.Experience, error)
	Get(ctx context.Context, id int64) (*models.Experience, error)
	Create(ctx context.Context, e models.Experience) (*models.Experience, error)
	Update(ctx context.Context, id int64, p models.ExperiencePatch) (*models.Experience, error)
	Delete(ctx context.Context, id int64) error
}

// ExperienceHandler serves /api/experience.
type ExperienceHandler struct {
	Experience ExperienceService
	Log        *zap.Logger
}

// CreateExperienceRequest is the body of POST /api/experience.
// Dates are YYYY-MM-DD; an empty end_date means none.
type CreateExperienceRequest struct {
	Title            string             `json:"title" validate:"required"`
	Company          string             `json:"company" validate:"required"`
	Location         string             `json:"location" validate:"required"`
	StartDate        string             `json:"start_date" validate:"required,isodate"`
	EndDate          *string            `json:"end_date" validate:"omitempty,isodate"`
	IsCurrent        *bool              `json:"is_current" validate:"required"`
	Description      string             `json:"description" validate:"required"`
	Responsibilities *models.StringList `json:"responsibilities" validate:"required"`
	Technologies     *models.StringList `json:"technologies" validate:"required"`
	DisplayOrder     *int               `json:"display_order" validate:"omitempty,min=0"`
}

func (r *CreateExperienceRequest) normalize() {
	trim(&r.Title)
	trim(&r.Company)
	trim(&r.Location)
	trim(&r.Description)
	trim(&r.StartDate)
	blankToNil(&r.EndDate)
}

func (r *CreateExperienceRequest) experience() models.Experience {
	e := models.Experience{
		Title:            r.Title,
		Company:          r.Company,
		Location:         r.Location,
		StartDate:        models.MustParseDate(r.StartDate),
		IsCurrent:        *r.IsCurrent,
		Description:      r.Description,
		Responsibilities: *r.Responsibilities,
		Technologies:     *r.Technologies,
	}
	if r.EndDate != nil {
		end := models.MustParseDate(*r.EndDate)
		e.EndDate = &end
	}
	if r.DisplayOrder != nil {
		e.DisplayOrder = *r.DisplayOrder
	}
	return e
}

// UpdateExperienceRequest is the body of PUT /api/experience/{id}. Absent fields are
// left unchanged; an explicit null or empty end_date clears it.
type UpdateExperienceRequest struct {
	Title            *string            `json:"title" validate:"omitempty,min=1"`
	Company          *string            `json:"company" validate:"omitempty,min=1"`
	Location         *string            `json:"location" validate:"omitempty,min=1"`
	StartDate        *string            `json:"start_date" validate:"omitempty,isodate"`
	EndDate          optionalString     `json:"end_date"`
	IsCurrent        *bool              `json:"is_current"`
	Description      *string            `json:"description" validate:"omitempty,min=1"`
	Responsibilities *models.StringList `json:"responsibilities"`
	Technologies     *models.StringList `json:"technologies"`
	DisplayOrder     *int               `json:"display_order" validate:"omitempty,min=0"`
}

func (r *UpdateExperienceRequest) normalize() {
	trim(r.Title)
	trim(r.Company)
	trim(r.Location)
	trim(r.Description)
	trim(r.StartDate)
	if r.EndDate.Value != nil {
		blankToNil(&r.EndDate.Value)
	}
}

// validEndDate reports whether a present end_date parses.
func (r *UpdateExperienceRequest) validEndDate() bool {
	if r.EndDate.Value == nil {
		return true
	}
	_, err := models.ParseDate(*r.EndDate.Value)
	return err == nil
}

func (r *UpdateExperienceRequest) patch() models.ExperiencePatch {
	p := models.ExperiencePatch{
		Title:            r.Title,
		Company:          r.Company,
		Location:         r.Location,
		IsCurrent:        r.IsCurrent,
		Description:      r.Description,
		Responsibilities: r.Responsibilities,
		Technologies:     r.Technologies,
		DisplayOrder:     r.DisplayOrder,
	}
	if r.StartDate != nil {
		start := models.MustParseDate(*r.StartDate)
		p.StartDate = &start
	}
	if r.EndDate.Set {
		if r.EndDate.Value == nil {
			p.ClearEndDate = true
		} else {
			end := models.MustParseDate(*r.EndDate.Value)
			p.EndDate = &end
		}
	}
	return p
}

func (h *ExperienceHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Experience.List(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ExperienceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidExperienceID)
	if !ok {
		return
	}
	e, err := h.Experience.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, h.Log, err, msgExperienceNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ExperienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExperienceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	e, err := h.Experience.Create(r.Context(), req.experience())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *ExperienceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidExperienceID)
	if !ok {
		return
	}
	var req UpdateExperienceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if !req.validEndDate() {
		writeValidation(w, []FieldError{{Field: "end_date", Message: msgBadDate}})
		return
	}
	e, err := h.Experience.Update(r.Context(), id, req.patch())
	if err != nil {
		writeFailure(w, h.Log, err, msgExperienceNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ExperienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidExperienceID)
	if !ok {
		return
	}
	if err := h.Experience.Delete(r.Context(), id); err != nil {
		writeFailure(w, h.Log, err, msgExperienceNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
