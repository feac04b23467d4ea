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

// AlertPostHandler handles distress alert endpoints
type AlertPostHandler struct {
	postUsecase *usecases.AlertPostUsecase
}

// NewAlertPostHandler creates a new alert post handler
func NewAlertPostHandler(postUsecase *usecases.AlertPostUsecase) *AlertPostHandler {
	return &AlertPostHandler{postUsecase: postUsecase}
}

// Create posts an alert
// POST /api/v1/alert-posts
func (h *AlertPostHandler) Create(c *gin.Context) {
	var input entities.CreateAlertPostInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	post, err := h.postUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"alertPost": post})
}

// GetByID returns one of the user's alerts
// GET /api/v1/alert-posts/:id
func (h *AlertPostHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid alert ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	post, err := h.postUsecase.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alertPost": post})
}

// Update applies a partial update to one of the user's alerts
// PUT /api/v1/alert-posts/:id
func (h *AlertPostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid alert ID"))
		return
	}

	var input entities.UpdateAlertPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	post, err := h.postUsecase.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alertPost": post})
}

// List lists the user's alerts
// GET /api/v1/alert-posts
func (h *AlertPostHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	page, limit := parsePagination(c)
	query := &entities.AlertPostListQuery{
		SearchTerm: c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       page,
		Limit:      limit,
	}

	posts, total, err := h.postUsecase.List(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, "alertPosts", posts, page, limit, total)
}

// Delete removes one of the user's alerts
// DELETE /api/v1/alert-posts/:id
func (h *AlertPostHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid alert ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	if err := h.postUsecase.SoftDelete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "alert deleted"})
}
