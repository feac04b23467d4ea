package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/interfaces/http/middleware"
	"safealert.backend/internal/interfaces/http/response"
	"safealert.backend/internal/usecases"
)

// EmergencyContactHandler handles emergency contact endpoints
type EmergencyContactHandler struct {
	contactUsecase *usecases.EmergencyContactUsecase
}

// NewEmergencyContactHandler creates a new emergency contact handler
func NewEmergencyContactHandler(contactUsecase *usecases.EmergencyContactUsecase) *EmergencyContactHandler {
	return &EmergencyContactHandler{contactUsecase: contactUsecase}
}

// Create adds a contact
// POST /api/v1/emergency-contacts
func (h *EmergencyContactHandler) Create(c *gin.Context) {
	var input entities.CreateEmergencyContactInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	contact, err := h.contactUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"contact": contact})
}

// GetByID returns one of the user's contacts
// GET /api/v1/emergency-contacts/:id
func (h *EmergencyContactHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid contact ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	contact, err := h.contactUsecase.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

// Update applies a partial update to one of the user's contacts
// PUT /api/v1/emergency-contacts/:id
func (h *EmergencyContactHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid contact ID"))
		return
	}

	var input entities.UpdateEmergencyContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	contact, err := h.contactUsecase.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

// List lists the user's contacts
// GET /api/v1/emergency-contacts
func (h *EmergencyContactHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	page, limit := parsePagination(c)
	query := &entities.EmergencyContactListQuery{
		SearchTerm: c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       page,
		Limit:      limit,
	}

	contacts, total, err := h.contactUsecase.List(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, "contacts", contacts, page, limit, total)
}

// Delete removes one of the user's contacts
// DELETE /api/v1/emergency-contacts/:id
func (h *EmergencyContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid contact ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	if err := h.contactUsecase.SoftDelete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "contact deleted"})
}
