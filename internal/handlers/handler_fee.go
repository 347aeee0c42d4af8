package handlers

import (
	"errors"
	"net/http"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// feeHandler exposes the fee quotation endpoint. Quotes are pure computation;
// nothing is stored until a payment intent is created.
type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

func newFeeHandler(fs portssvc.FeeSvcFacade) *feeHandler {
	return &feeHandler{feeService: fs}
}

// registerFeeRoutes registers routes related to fee quotation.
func registerFeeRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newFeeHandler(feeService)
	rg.POST("/fees/quote", h.quoteFee)
}

// quoteFee godoc
// @Summary Quote a yearly fee
// @Description Computes the fee breakdown (base, wiring surcharge, late fee, extras) without creating a payment
// @Tags fees
// @Accept json
// @Produce json
// @Param quote body dto.FeeQuoteRequest true "Fee inputs"
// @Success 200 {object} dto.FeeQuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/quote [post]
func (h *feeHandler) quoteFee(c *gin.Context) {
	var req dto.FeeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	breakdown, err := h.feeService.QuoteFee(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute fee"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeQuoteResponse(breakdown))
}
