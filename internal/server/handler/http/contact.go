package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/models"
	"github.com/atinyakov/portfolio/internal/service"
)

const (
	msgMessageNotFound  = "Message not found"
	msgInvalidMessageID = "Invalid message ID"
)

// ContactService defines the contact operations required by ContactHandler.
type ContactService interface {
	Submit(ctx context.Context, name, email, subject, message string) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id int64) (*models.Contact, error)
	SetStatus(ctx context.Context, id int64, status models.MessageStatus) (*models.Contact, error)
	MarkRead(ctx context.Context, id int64) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.ContactStats, error)
}

// ContactHandler serves /api/contact.
type ContactHandler struct {
	Contact ContactService
	Log     *zap.Logger
}

// ContactRequest is the body of the public contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"min=2,max=100,alphaspace"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"min=5,max=200"`
	Message string `json:"message" validate:"min=10,max=2000"`
}

func (r *ContactRequest) normalize() {
	trim(&r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	trim(&r.Subject)
	trim(&r.Message)
}

func (r *ContactRequest) fieldMessage(field, tag string) string {
	switch field {
	case "name":
		if tag == "alphaspace" {
			return "Name can only contain letters and spaces"
		}
		return "Name must be between 2 and 100 characters"
	case "email":
		return "Please provide a valid email address"
	case "subject":
		return "Subject must be between 5 and 200 characters"
	case "message":
		return "Message must be between 10 and 2000 characters"
	}
	return ""
}

// StatusRequest is the body of PATCH /api/contact/{id}/status.
type StatusRequest struct {
	Status models.MessageStatus `json:"status" validate:"required,oneof=unread read replied"`
}

func (r *StatusRequest) fieldMessage(field, _ string) string {
	if field == "status" {
		return "Invalid status. Must be 'unread', 'read', or 'replied'"
	}
	return ""
}

// Submit stores a message from the public contact form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	c, err := h.Contact.Submit(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		h.Log.Error("store contact message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}

	h.Log.Info("contact message received", zap.Int64("id", c.ID), zap.String("subject", c.Subject))
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Your message has been sent successfully!",
		"id":      c.ID,
	})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Contact.List(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidMessageID)
	if !ok {
		return
	}
	c, err := h.Contact.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, h.Log, err, msgMessageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Contact.Stats(r.Context())
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// UpdateStatus sets a message to unread, read or replied. Moving a read message
// back to unread is answered with 409.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidMessageID)
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	c, err := h.Contact.SetStatus(r.Context(), id, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusConflict, "A message that was read cannot be marked unread")
		return
	}
	if err != nil {
		writeFailure(w, h.Log, err, msgMessageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message status updated successfully",
		"data":    c,
	})
}

func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidMessageID)
	if !ok {
		return
	}
	c, err := h.Contact.MarkRead(r.Context(), id)
	if err != nil {
		writeFailure(w, h.Log, err, msgMessageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message marked as read",
		"data":    c,
	})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, msgInvalidMessageID)
	if !ok {
		return
	}
	if err := h.Contact.Delete(r.Context(), id); err != nil {
		writeFailure(w, h.Log, err, msgMessageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message deleted successfully",
	})
}
