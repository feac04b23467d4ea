package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/interfaces/http/middleware"
	"safealert.backend/internal/interfaces/http/response"
	"safealert.backend/internal/usecases"
)

// PaymentHandler handles checkout and payment endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// Checkout starts a hosted checkout for a subscription
// POST /api/v1/payments/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var input entities.CheckoutInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	url, err := h.paymentUsecase.Checkout(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"checkoutUrl": url})
}

// ConfirmPayment reconciles a returning checkout session. The checkout
// provider redirects the payer here, so the route carries its parameters
// in the query string and stays outside the auth middleware.
// GET /api/v1/payments/confirm-payment?paymentId=...&sessionId=...
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		response.Error(c, domainerrors.BadRequest("sessionId is required"))
		return
	}

	paymentID, err := uuid.Parse(c.Query("paymentId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid paymentId"))
		return
	}

	result, err := h.paymentUsecase.ConfirmPayment(c.Request.Context(), sessionID, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "payment confirmed",
		"result":  result,
	})
}

// GetByID returns one of the current user's payments
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payment ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	payment, err := h.paymentUsecase.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// List lists the current user's payments
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	page, limit := parsePagination(c)
	query := &entities.PaymentListQuery{
		UserID: &userID,
		Sort:   c.Query("sort"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("isPaid"); raw != "" {
		if isPaid, err := strconv.ParseBool(raw); err == nil {
			query.IsPaid = &isPaid
		}
	}

	payments, total, err := h.paymentUsecase.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, "payments", payments, page, limit, total)
}
