package services

import (
	"log/slog"

	portsrepo "github.com/citycable/cable_collect_app/internal/core/ports/repositories"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/platform/config"
	"github.com/citycable/cable_collect_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Analytics first so the other services can emit events
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	container.Events = NewPosthogEventPublisher(posthogClient)

	container.Fee = NewFeeService(cfg)
	container.UPI = NewUPIService(cfg)
	container.User = NewUserService(repos.UserRepo)
	container.Wallet = NewWalletService(repos.WalletRepo, repos.UserRepo, container.Events)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.ReceiptRepo, repos.UserRepo, container.Fee, container.UPI, container.Events)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.FeeSvcFacade        = (*feeService)(nil)
	_ portssvc.UPISvcFacade        = (*upiService)(nil)
	_ portssvc.WalletSvcFacade     = (*walletService)(nil)
	_ portssvc.PaymentSvcFacade    = (*paymentService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.TokenSvcFacade      = (*tokenService)(nil)
	_ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)
	_ portssvc.EventPublisherSvc   = (*posthogEventPublisher)(nil)
)
