package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/models"
)

const (
	msgSkillNotFound  = "Skill not found"
	msgInvalidSkillID = "Invalid skill ID"
)

// SkillService defines the skill operations required by SkillHandler.
type SkillService interface {
	List(ctx context.Context) ([]models.Skill, error)
	Featured(ctx context.Context) ([]models.Skill, error)
	ByCategory(ctx context.Context, category models.SkillCategory) ([]models.Skill, error)
	Get(ctx context.Context, id int64) (*models.Skill, error)
	Create(ctx context.Context, s models.Skill) (*models.Skill, error)
	Update(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error)
	Delete(ctx context.Context, id int64) error
}

// SkillHandler serves /api/skills.
type SkillHandler struct {
	Skills SkillService
	Log    *zap.Logger
}

// CreateSkillRequest is the body of POST /api/skills.
type CreateSkillRequest struct {
	Name         string               `json:"name" validate:"required"`
	Category     models.SkillCategory `json:"category" validate:"required,oneof=frontend backend tools other"`
	Proficiency  *int                 `json:"proficiency" validate:"required,min=0,max=100"`
	Icon         *string              `json:"icon"`
	DisplayOrder *int                 `json:"display_order" validate:"omitempty,min=0"`
	IsFeatured   *bool                `json:"is_featured"`
}

func (r *CreateSkillRequest) normalize() {
	trim(&r.Name)
	blankToNil(&r.Icon)
}

func (r *CreateSkillRequest) skill() models.Skill {
	s := models.Skill{
		Name:        r.Name,
		Category:    r.Category,
		Proficiency: *r.Proficiency,
		Icon:        r.Icon,
	}
	if r.DisplayOrder != nil {
		s.DisplayOrder = *r.DisplayOrder
	}
	if r.IsFeatured != nil {
		s.IsFeatured = *r.IsFeatured
	}
	return s
}

// UpdateSkillRequest is the body of PUT /api/skills/{id}. Absent fields are left unchanged.
type UpdateSkillRequest struct {
	Name         *string               `json:"name" validate:"omitempty,min=1"`
	Category     *models.SkillCategory `json:"category" validate:"omitempty,oneof=frontend backend tools other"`
	Proficiency  *int                  `json:"proficiency" validate:"omitempty,min=0,max=100"`
	Icon         *string               `json:"icon"`
	DisplayOrder *int                  `json:"display_order" validate:"omitempty,min=0"`
	IsFeatured   *bool                 `json:"is_featured"`
}

func (r *UpdateSkillRequest) normalize() {
	trim(r.Name)
}

func (r *UpdateSkillRequest) patch() models.SkillPatch {
	return models.SkillPatch{
		Name:         r.Name,
		Category:     r.Category,
		Proficiency:  r.Proficiency,
		Icon:         r.Icon,
		DisplayOrder: r.DisplayOrder,
		IsFeatured:   r.IsFeatured,
	}
}

func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.Skills.List)
}

func (h *SkillHandler) Featured(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.Skills.Featured)
}

// ByCategory lists the skills of one category. An unknown category yields an empty list.
func (h *SkillHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := models.SkillCategory(chi.URLParam(r, "category"))
	h.respondList(w, r, func(ctx context.Context) ([]models.Skill, error) {
		return h.Skills.ByCategory(ctx, category)
	})
}

func (h *SkillHandler) respondList(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]models.Skill, error)) {
	skills, err := list(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidSkillID)
	if !ok {
		return
	}
	skill, err := h.Skills.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, h.Log, err, msgSkillNotFound)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSkillRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	skill, err := h.Skills.Create(r.Context(), req.skill())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidSkillID)
	if !ok {
		return
	}
	var req UpdateSkillRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	skill, err := h.Skills.Update(r.Context(), id, req.patch())
	if err != nil {
		writeFailure(w, h.Log, err, msgSkillNotFound)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidSkillID)
	if !ok {
		return
	}
	if err := h.Skills.Delete(r.Context(), id); err != nil {
		writeFailure(w, h.Log, err, msgSkillNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
