package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests for wallet balances, statements, and
// collector-driven credits.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("/:userID/balance", h.getBalance)
		wallets.GET("/:userID/transactions", h.listTransactions)
		wallets.POST("/topup", middleware.RequireRoles(domain.RoleCollector, domain.RoleAdmin), h.topUp)
		wallets.POST("/transfer", h.transfer)
	}
}

// ownerOrStaff allows the wallet owner plus collector/admin roles.
func ownerOrStaff(c *gin.Context, targetUserID string) bool {
	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return false
	}
	if callerID == targetUserID {
		return true
	}
	role, _ := middleware.GetUserRoleFromContext(c)
	return domain.UserRole(role).CanCollect()
}

// getBalance godoc
// @Summary Get wallet balance
// @Description Retrieves the current wallet balance for a user
// @Tags wallets
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{userID}/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	if !ownerOrStaff(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		} else {
			logger.Error("Failed to get wallet balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.WalletBalanceResponse{UserID: userID, Balance: balance})
}

// listTransactions godoc
// @Summary List wallet transactions
// @Description Retrieves a page of the user's wallet ledger, newest first
// @Tags wallets
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Opaque token from the previous page"
// @Success 200 {object} dto.ListWalletTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{userID}/transactions [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	if !ownerOrStaff(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	var params dto.ListWalletTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	transactions, nextToken, err := h.walletService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list wallet transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListWalletTransactionsResponse{
		Transactions: dto.ToWalletTransactionResponses(transactions),
		NextToken:    nextToken,
	})
}

// topUp godoc
// @Summary Top up a wallet
// @Description Credits a subscriber's wallet with collected cash; collector and admin only
// @Tags wallets
// @Accept json
// @Produce json
// @Param topup body dto.TopUpRequest true "Top-up details"
// @Success 201 {object} dto.WalletTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/topup [post]
func (h *walletHandler) topUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.walletService.TopUp(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			logger.Error("Failed to top up wallet", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to top up wallet"})
		}
		return
	}

	logger.Info("Wallet topped up", slog.String("user_id", req.UserID), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToWalletTransactionResponse(txn))
}

// transfer godoc
// @Summary Transfer between wallets
// @Description Atomically moves balance from one wallet to another
// @Tags wallets
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient funds"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/transfer [post]
func (h *walletHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.walletService.Transfer(c.Request.Context(), req, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: "Insufficient wallet balance"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			logger.Error("Failed to transfer between wallets", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to transfer"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
