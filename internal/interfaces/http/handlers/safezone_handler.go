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

// SafeZoneHandler handles safe zone endpoints
type SafeZoneHandler struct {
	safeZoneUsecase *usecases.SafeZoneUsecase
}

// NewSafeZoneHandler creates a new safe zone handler
func NewSafeZoneHandler(safeZoneUsecase *usecases.SafeZoneUsecase) *SafeZoneHandler {
	return &SafeZoneHandler{safeZoneUsecase: safeZoneUsecase}
}

// Create registers a safe zone
// POST /api/v1/safe-zones
func (h *SafeZoneHandler) Create(c *gin.Context) {
	var input entities.CreateSafeZoneInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	zone, err := h.safeZoneUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"safeZone": zone})
}

// GetByID returns one of the user's safe zones
// GET /api/v1/safe-zones/:id
func (h *SafeZoneHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid safe zone ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	zone, err := h.safeZoneUsecase.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"safeZone": zone})
}

// Update applies a partial update to one of the user's safe zones
// PUT /api/v1/safe-zones/:id
func (h *SafeZoneHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid safe zone ID"))
		return
	}

	var input entities.UpdateSafeZoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	zone, err := h.safeZoneUsecase.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"safeZone": zone})
}

// List lists the user's safe zones
// GET /api/v1/safe-zones
func (h *SafeZoneHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	page, limit := parsePagination(c)
	query := &entities.SafeZoneListQuery{
		SearchTerm: c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       page,
		Limit:      limit,
	}

	zones, total, err := h.safeZoneUsecase.List(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, "safeZones", zones, page, limit, total)
}

// Delete removes one of the user's safe zones
// DELETE /api/v1/safe-zones/:id
func (h *SafeZoneHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid safe zone ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	if err := h.safeZoneUsecase.SoftDelete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "safe zone deleted"})
}
