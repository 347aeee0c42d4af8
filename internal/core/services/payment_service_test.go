package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/core/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockReceiptRepo *MockReceiptRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	cfg := &config.Config{
		UPIPayeeVPA:  "citycable@okaxis",
		UPIPayeeName: "City Cable",
	}
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockReceiptRepo,
		suite.mockUserRepo,
		services.NewFeeService(cfg),
		services.NewUPIService(cfg),
		nil,
	)
}

func feeReq() dto.FeeQuoteRequest {
	return dto.FeeQuoteRequest{
		BaseFee:      decimal.RequireFromString("1200"),
		ExtraCharges: decimal.RequireFromString("300"),
	} // total 1500
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_WalletChannel() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.UserID == userID &&
			p.Method == domain.MethodWallet &&
			p.Status == domain.StatusPending &&
			p.WalletDebited &&
			p.TotalAmount.Equal(decimal.RequireFromString("1500")) &&
			p.WalletAmountUsed.Equal(decimal.RequireFromString("1500")) &&
			p.ExternalAmountPaid.IsZero()
	}), true).Return(nil).Once()

	payment, plan, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear: 2024,
		Method:      string(domain.MethodWallet),
		Fee:         feeReq(),
	}, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Nil(plan, "wallet payments have no external leg to launch")
	suite.Equal(domain.StatusPending, payment.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_RedirectStartsIncomplete() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.StatusIncomplete &&
			!p.WalletDebited &&
			p.ExternalAmountPaid.Equal(decimal.RequireFromString("1500"))
	}), false).Return(nil).Once()

	payment, plan, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear: 2024,
		Method:      string(domain.MethodUPIRedirect),
		Fee:         feeReq(),
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusIncomplete, payment.Status)
	suite.Require().NotNil(plan)
	suite.Len(plan.Options, 5)
	suite.Equal("citycable@okaxis", plan.Manual.PayeeVPA)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_RedirectWithProofIsPending() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.StatusPending && p.ExternalTransactionRef == "UPI123456"
	}), false).Return(nil).Once()

	payment, _, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear:            2024,
		Method:                 string(domain.MethodUPIRedirect),
		Fee:                    feeReq(),
		ExternalTransactionRef: "UPI123456",
		ProofRef:               "blob://proof/1",
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CombinedSplitMustSumToTotal() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	_, _, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear:        2024,
		Method:             string(domain.MethodCombined),
		Fee:                feeReq(),
		WalletAmountUsed:   decimal.RequireFromString("500"),
		ExternalAmountPaid: decimal.RequireFromString("500"), // 1000 != 1500
	}, userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CombinedDebitsWalletLeg() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Method == domain.MethodCombined &&
			p.WalletDebited &&
			p.WalletAmountUsed.Equal(decimal.RequireFromString("600")) &&
			p.ExternalAmountPaid.Equal(decimal.RequireFromString("900"))
	}), true).Return(nil).Once()

	payment, plan, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear:        2024,
		Method:             string(domain.MethodCombined),
		Fee:                feeReq(),
		WalletAmountUsed:   decimal.RequireFromString("600"),
		ExternalAmountPaid: decimal.RequireFromString("900"),
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusIncomplete, payment.Status)
	suite.Require().NotNil(plan)
	// The deep link carries only the external leg
	suite.Contains(plan.Options[0].URI, "am=900.00")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CashNeedsCollector() {
	ctx := context.Background()
	subscriber := &domain.User{UserID: uuid.NewString(), Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, subscriber.UserID).Return(subscriber, nil).Once()

	_, _, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear: 2024,
		Method:      string(domain.MethodCash),
		Fee:         feeReq(),
	}, subscriber.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CollectorEntersCashForSubscriber() {
	ctx := context.Background()
	collector := &domain.User{UserID: uuid.NewString(), Role: domain.RoleCollector, IsActive: true}
	subscriberID := uuid.NewString()
	subscriber := &domain.User{UserID: subscriberID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, collector.UserID).Return(collector, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, subscriberID).Return(subscriber, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.UserID == subscriberID &&
			p.Method == domain.MethodCash &&
			p.Status == domain.StatusPending &&
			p.CreatedBy == collector.UserID
	}), false).Return(nil).Once()

	payment, plan, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		UserID:      subscriberID,
		ServiceYear: 2024,
		Method:      string(domain.MethodCash),
		Fee:         feeReq(),
	}, collector.UserID)

	suite.Require().NoError(err)
	suite.Nil(plan)
	suite.Equal(domain.StatusPending, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_InsufficientFundsPropagates() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.RoleSubscriber, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), true).
		Return(apperrors.ErrInsufficientFunds).Once()

	_, _, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		ServiceYear: 2024,
		Method:      string(domain.MethodWallet),
		Fee:         feeReq(),
	}, userID)

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnknownMethodRejected() {
	_, _, err := suite.service.CreatePayment(context.Background(), dto.CreatePaymentRequest{
		ServiceYear: 2024,
		Method:      "BARTER",
		Fee:         feeReq(),
	}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_ServiceYearOutOfRange() {
	_, _, err := suite.service.CreatePayment(context.Background(), dto.CreatePaymentRequest{
		ServiceYear: time.Now().Year() + 5,
		Method:      string(domain.MethodWallet),
		Fee:         feeReq(),
	}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestMarkReadyForReview_OwnerSuccess() {
	ctx := context.Background()
	userID := uuid.NewString()
	paymentID := uuid.NewString()
	existing := &domain.Payment{PaymentID: paymentID, UserID: userID, Status: domain.StatusIncomplete}
	updated := &domain.Payment{PaymentID: paymentID, UserID: userID, Status: domain.StatusPending, ExternalTransactionRef: "UPI999"}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("MarkReadyForReview", ctx, paymentID, "UPI999", "blob://proof/9", userID).
		Return(updated, nil).Once()

	payment, err := suite.service.MarkReadyForReview(ctx, paymentID, dto.MarkReadyForReviewRequest{
		ExternalTransactionRef: "UPI999",
		ProofRef:               "blob://proof/9",
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestMarkReadyForReview_WrongStatePropagates() {
	ctx := context.Background()
	userID := uuid.NewString()
	paymentID := uuid.NewString()
	existing := &domain.Payment{PaymentID: paymentID, UserID: userID, Status: domain.StatusApproved}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("MarkReadyForReview", ctx, paymentID, "UPI999", "p", userID).
		Return(nil, apperrors.ErrInvalidStateTransition).Once()

	_, err := suite.service.MarkReadyForReview(ctx, paymentID, dto.MarkReadyForReviewRequest{
		ExternalTransactionRef: "UPI999",
		ProofRef:               "p",
	}, userID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *PaymentServiceTestSuite) TestMarkReadyForReview_StrangerForbidden() {
	ctx := context.Background()
	stranger := &domain.User{UserID: uuid.NewString(), Role: domain.RoleSubscriber, IsActive: true}
	paymentID := uuid.NewString()
	existing := &domain.Payment{PaymentID: paymentID, UserID: uuid.NewString(), Status: domain.StatusIncomplete}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, stranger.UserID).Return(stranger, nil).Once()

	_, err := suite.service.MarkReadyForReview(ctx, paymentID, dto.MarkReadyForReviewRequest{
		ExternalTransactionRef: "UPI999",
		ProofRef:               "p",
	}, stranger.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "MarkReadyForReview")
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_AdminSuccess() {
	ctx := context.Background()
	admin := &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin, IsActive: true}
	paymentID := uuid.NewString()
	approved := &domain.Payment{PaymentID: paymentID, Status: domain.StatusApproved, ReceiptNumber: "RCP2024042"}
	receipt := &domain.Receipt{PaymentID: paymentID, ServiceYear: 2024, SequenceNo: 42, ReceiptNumber: "RCP2024042"}

	suite.mockUserRepo.On("FindUserByID", ctx, admin.UserID).Return(admin, nil).Once()
	suite.mockPaymentRepo.On("ApprovePayment", ctx, paymentID, admin.UserID).Return(approved, receipt, nil).Once()

	payment, err := suite.service.ApprovePayment(ctx, paymentID, admin.UserID)

	suite.Require().NoError(err)
	suite.Equal("RCP2024042", payment.ReceiptNumber)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_CollectorForbidden() {
	ctx := context.Background()
	collector := &domain.User{UserID: uuid.NewString(), Role: domain.RoleCollector, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, collector.UserID).Return(collector, nil).Once()

	_, err := suite.service.ApprovePayment(ctx, uuid.NewString(), collector.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ApprovePayment")
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_AllocationConflictPropagates() {
	ctx := context.Background()
	admin := &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin, IsActive: true}
	paymentID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, admin.UserID).Return(admin, nil).Once()
	suite.mockPaymentRepo.On("ApprovePayment", ctx, paymentID, admin.UserID).
		Return(nil, nil, apperrors.ErrAllocationConflict).Once()

	_, err := suite.service.ApprovePayment(ctx, paymentID, admin.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrAllocationConflict)
}

func (suite *PaymentServiceTestSuite) TestRejectPayment_RequiresReason() {
	_, err := suite.service.RejectPayment(context.Background(), uuid.NewString(), uuid.NewString(), dto.RejectPaymentRequest{})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "RejectPayment")
}

func (suite *PaymentServiceTestSuite) TestRejectPayment_AdminSuccess() {
	ctx := context.Background()
	admin := &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin, IsActive: true}
	paymentID := uuid.NewString()
	rejected := &domain.Payment{PaymentID: paymentID, Status: domain.StatusRejected, RejectionReason: "reference not found in bank statement"}

	suite.mockUserRepo.On("FindUserByID", ctx, admin.UserID).Return(admin, nil).Once()
	suite.mockPaymentRepo.On("RejectPayment", ctx, paymentID, admin.UserID, "reference not found in bank statement").
		Return(rejected, nil).Once()

	payment, err := suite.service.RejectPayment(ctx, paymentID, admin.UserID, dto.RejectPaymentRequest{Reason: "reference not found in bank statement"})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, payment.Status)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
