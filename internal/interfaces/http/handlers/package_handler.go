package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/interfaces/http/response"
	"safealert.backend/internal/usecases"
)

// PackageHandler handles package catalogue endpoints
type PackageHandler struct {
	packageUsecase *usecases.PackageUsecase
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageUsecase *usecases.PackageUsecase) *PackageHandler {
	return &PackageHandler{packageUsecase: packageUsecase}
}

// Create adds a package to the catalogue
// POST /api/v1/admin/packages
func (h *PackageHandler) Create(c *gin.Context) {
	var input entities.CreatePackageInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pkg, err := h.packageUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"package": pkg})
}

// GetByID returns a package
// GET /api/v1/packages/:id
func (h *PackageHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid package ID"))
		return
	}

	pkg, err := h.packageUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"package": pkg})
}

// List lists catalogue packages
// GET /api/v1/packages
func (h *PackageHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	query := &entities.PackageListQuery{
		SearchTerm: c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       page,
		Limit:      limit,
	}

	packages, total, err := h.packageUsecase.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, "packages", packages, page, limit, total)
}

// Update applies a partial package update
// PUT /api/v1/admin/packages/:id
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid package ID"))
		return
	}

	var input entities.UpdatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pkg, err := h.packageUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"package": pkg})
}

// Delete removes a package from the catalogue
// DELETE /api/v1/admin/packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid package ID"))
		return
	}

	if err := h.packageUsecase.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "package deleted"})
}
