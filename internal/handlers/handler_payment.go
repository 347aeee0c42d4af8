package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for the payment lifecycle and the
// receipts issued on approval.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// RegisterPaymentRoutes registers routes related to payments and receipts.
// Exported so handler tests can mount them against a mock service.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("/:id", h.getPayment)
		payments.GET("", h.listPayments)
		payments.GET("/pending", middleware.RequireRoles(domain.RoleAdmin), h.listPendingPayments)
		payments.POST("/:id/ready", h.markReadyForReview)
		payments.POST("/:id/approve", middleware.RequireRoles(domain.RoleAdmin), h.approvePayment)
		payments.POST("/:id/reject", middleware.RequireRoles(domain.RoleAdmin), h.rejectPayment)
		payments.GET("/:id/receipt", h.getReceipt)
	}
	rg.GET("/receipts", middleware.RequireRoles(domain.RoleCollector, domain.RoleAdmin), h.listReceiptsByYear)
}

// createPayment godoc
// @Summary Create a payment intent
// @Description Records a payment for a service year. For channels with a UPI leg the response carries the app launch plan.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.CreatePaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient wallet balance"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, plan, err := h.paymentService.CreatePayment(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: "Insufficient wallet balance"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			logger.Error("Failed to create payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePaymentResponse{
		Payment:    dto.ToPaymentResponse(payment),
		LaunchPlan: plan,
	})
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves a specific payment; owners see their own, staff see all
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not found"})
		} else {
			logger.Error("Failed to get payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve payment"})
		}
		return
	}

	if !ownerOrStaff(c, payment.UserID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Retrieves a page of a user's payments, newest first. Defaults to the caller; staff may pass userID.
// @Tags payments
// @Produce json
// @Param userID query string false "Target user ID (staff only)"
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Opaque token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	targetUserID := c.Query("userID")
	if targetUserID == "" {
		targetUserID = callerID
	}
	if !ownerOrStaff(c, targetUserID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	payments, nextToken, err := h.paymentService.ListPaymentsByUser(c.Request.Context(), targetUserID, params)
	if err != nil {
		logger.Error("Failed to list payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	})
}

// listPendingPayments godoc
// @Summary List the review queue
// @Description Retrieves PENDING payments awaiting resolution, oldest first; admin only
// @Tags payments
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Opaque token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/pending [get]
func (h *paymentHandler) listPendingPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	payments, nextToken, err := h.paymentService.ListPendingPayments(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list pending payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list pending payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	})
}

// markReadyForReview godoc
// @Summary Submit external confirmation
// @Description Attaches the UPI transaction reference and proof, moving an INCOMPLETE payment to PENDING
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param confirmation body dto.MarkReadyForReviewRequest true "External confirmation"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment is not INCOMPLETE"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/ready [post]
func (h *paymentHandler) markReadyForReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	var req dto.MarkReadyForReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.MarkReadyForReview(c.Request.Context(), paymentID, req, actorID)
	if err != nil {
		h.writeLifecycleError(c, logger, err, "Failed to submit payment for review")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// approvePayment godoc
// @Summary Approve a pending payment
// @Description Confirms a PENDING payment and issues its sequential receipt; admin only
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment is not PENDING or receipt allocation conflicted"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/approve [post]
func (h *paymentHandler) approvePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.ApprovePayment(c.Request.Context(), paymentID, adminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAllocationConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Receipt allocation conflicted, retry the approval"})
			return
		}
		h.writeLifecycleError(c, logger, err, "Failed to approve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// rejectPayment godoc
// @Summary Reject a pending payment
// @Description Declines a PENDING payment with a mandatory reason, refunding any wallet leg; admin only
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param rejection body dto.RejectPaymentRequest true "Rejection reason"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment is not PENDING"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/reject [post]
func (h *paymentHandler) rejectPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	var req dto.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.RejectPayment(c.Request.Context(), paymentID, adminID, req)
	if err != nil {
		h.writeLifecycleError(c, logger, err, "Failed to reject payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// getReceipt godoc
// @Summary Get a payment's receipt
// @Description Retrieves the receipt issued when the payment was approved
// @Tags receipts
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/receipt [get]
func (h *paymentHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not found"})
		} else {
			logger.Error("Failed to get payment for receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve receipt"})
		}
		return
	}
	if !ownerOrStaff(c, payment.UserID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	receipt, err := h.paymentService.GetReceiptByPaymentID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No receipt issued for this payment"})
		} else {
			logger.Error("Failed to get receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// listReceiptsByYear godoc
// @Summary List a year's receipts
// @Description Retrieves all receipts of a service year in sequence order; collector and admin only
// @Tags receipts
// @Produce json
// @Param year query int true "Service year"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts [get]
func (h *paymentHandler) listReceiptsByYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A valid year query parameter is required"})
		return
	}

	receipts, err := h.paymentService.ListReceiptsByYear(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to list receipts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list receipts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListReceiptsResponse{
		ServiceYear: year,
		Receipts:    dto.ToReceiptResponses(receipts),
	})
}

// writeLifecycleError maps the shared lifecycle error set onto HTTP statuses.
func (h *paymentHandler) writeLifecycleError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
