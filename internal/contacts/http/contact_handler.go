// Package http provides HTTP handlers for contact management operations.
// Contacts are encrypted at rest and filtered in memory, including by
// phonetic initials for CJK names.
package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contactsDomain "github.com/allisson/contacts/internal/contacts/domain"
	"github.com/allisson/contacts/internal/contacts/export"
	"github.com/allisson/contacts/internal/contacts/http/dto"
	contactsRepository "github.com/allisson/contacts/internal/contacts/repository"
	"github.com/allisson/contacts/internal/httputil"
	customValidation "github.com/allisson/contacts/internal/validation"
)

// ContactHandler handles HTTP requests for contact management operations.
// It delegates all collection state and persistence to the ContactRepository.
type ContactHandler struct {
	contactRepo contactsRepository.ContactRepository
	logger      *slog.Logger
}

// NewContactHandler creates a new contact handler with required dependencies.
func NewContactHandler(
	contactRepo contactsRepository.ContactRepository,
	logger *slog.Logger,
) *ContactHandler {
	return &ContactHandler{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// ListHandler retrieves contacts filtered by category and keyword.
// GET /v1/contacts?category=all&keyword=zs
// Returns 200 OK with the matching contacts in insertion order.
func (h *ContactHandler) ListHandler(c *gin.Context) {
	category, err := parseCategory(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	contacts := h.contactRepo.Filter(c.Request.Context(), category, c.Query("keyword"))

	response := dto.MapContactsToListResponse(contacts)
	c.JSON(http.StatusOK, response)
}

// CreateHandler adds a new contact to the collection.
// POST /v1/contacts
// Returns 201 Created with the stored contact, including its generated ID.
func (h *ContactHandler) CreateHandler(c *gin.Context) {
	var req dto.ContactRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	contact, err := h.contactRepo.Add(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapContactToResponse(contact)
	c.JSON(http.StatusCreated, response)
}

// UpdateHandler replaces the mutable fields of an existing contact.
// PUT /v1/contacts/:id
// Returns 200 OK with the updated contact.
func (h *ContactHandler) UpdateHandler(c *gin.Context) {
	id, err := parseContactID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ContactRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	contact, err := h.contactRepo.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapContactToResponse(contact)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler removes a contact by its ID.
// DELETE /v1/contacts/:id
// Returns 204 No Content.
func (h *ContactHandler) DeleteHandler(c *gin.Context) {
	id, err := parseContactID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.contactRepo.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}

// ExportHandler streams the contacts of a category as a CSV attachment.
// GET /v1/contacts/export?category=office
// Returns 200 OK with a UTF-8 BOM prefixed, fully quoted CSV document.
func (h *ContactHandler) ExportHandler(c *gin.Context) {
	category, err := parseCategory(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	contacts := h.contactRepo.Filter(c.Request.Context(), category, "")

	var buf bytes.Buffer
	if err := export.Write(&buf, contacts); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	filename := export.Filename(category, time.Now().UTC())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// parseCategory reads the category query parameter, defaulting to the
// wildcard when absent.
func parseCategory(c *gin.Context) (contactsDomain.Category, error) {
	category := contactsDomain.Category(c.DefaultQuery("category", string(contactsDomain.CategoryAll)))
	if category != contactsDomain.CategoryAll && !category.IsValid() {
		return "", fmt.Errorf("invalid category parameter: %q", category)
	}

	return category, nil
}

// parseContactID reads the contact ID path parameter.
func parseContactID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid contact id: must be a valid UUID")
	}

	return id, nil
}
