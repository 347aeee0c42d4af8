package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/handlers"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/citycable/cable_collect_app/internal/utils"
	"github.com/citycable/cable_collect_app/internal/utils/upilink"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ListPaymentsByUser(ctx context.Context, userID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Payment), next, args.Error(2)
}

func (m *MockPaymentService) ListPendingPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Payment), next, args.Error(2)
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, *upilink.LaunchPlan, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var plan *upilink.LaunchPlan
	if args.Get(1) != nil {
		plan = args.Get(1).(*upilink.LaunchPlan)
	}
	return args.Get(0).(*domain.Payment), plan, args.Error(2)
}

func (m *MockPaymentService) MarkReadyForReview(ctx context.Context, paymentID string, req dto.MarkReadyForReviewRequest, actorID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ApprovePayment(ctx context.Context, paymentID string, adminID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) RejectPayment(ctx context.Context, paymentID string, adminID string, req dto.RejectPaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) GetReceiptByPaymentID(ctx context.Context, paymentID string) (*domain.Receipt, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockPaymentService) ListReceiptsByYear(ctx context.Context, serviceYear int) ([]domain.Receipt, error) {
	args := m.Called(ctx, serviceYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
	jwtSecret          string
}

// generateTestToken creates a signed JWT carrying the given role claim.
func (suite *PaymentHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "cca-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware so role claims flow into the context
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPaymentService = new(MockPaymentService)
	handlers.RegisterPaymentRoutes(v1, suite.mockPaymentService)
}

func (suite *PaymentHandlerTestSuite) doRequest(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func samplePayment(userID string, status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		PaymentID:   uuid.NewString(),
		UserID:      userID,
		ServiceYear: 2025,
		Method:      domain.MethodCash,
		Status:      status,
		BaseAmount:  decimal.NewFromInt(1200),
		TotalAmount: decimal.NewFromInt(1200),
		AuditFields: domain.AuditFields{CreatedAt: time.Now(), CreatedBy: userID},
	}
}

// --- Test Cases ---

func (suite *PaymentHandlerTestSuite) TestGetPayment_OwnerSuccess() {
	ownerID := uuid.NewString()
	payment := samplePayment(ownerID, domain.StatusPending)

	suite.mockPaymentService.On("GetPaymentByID", mock.Anything, payment.PaymentID).
		Return(payment, nil).Once()

	token := suite.generateTestToken(ownerID, domain.RoleSubscriber)
	w := suite.doRequest(http.MethodGet, "/api/v1/payments/"+payment.PaymentID, nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.PaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(payment.PaymentID, body.PaymentID)
	suite.Equal(string(domain.StatusPending), body.Status)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_OtherSubscriberForbidden() {
	payment := samplePayment(uuid.NewString(), domain.StatusPending)

	suite.mockPaymentService.On("GetPaymentByID", mock.Anything, payment.PaymentID).
		Return(payment, nil).Once()

	// A different subscriber holds the token
	token := suite.generateTestToken(uuid.NewString(), domain.RoleSubscriber)
	w := suite.doRequest(http.MethodGet, "/api/v1/payments/"+payment.PaymentID, nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_CollectorSeesAnyPayment() {
	payment := samplePayment(uuid.NewString(), domain.StatusApproved)

	suite.mockPaymentService.On("GetPaymentByID", mock.Anything, payment.PaymentID).
		Return(payment, nil).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleCollector)
	w := suite.doRequest(http.MethodGet, "/api/v1/payments/"+payment.PaymentID, nil, token)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestApprovePayment_AdminSuccess() {
	adminID := uuid.NewString()
	payment := samplePayment(uuid.NewString(), domain.StatusApproved)
	payment.ReceiptNumber = "RCP2025001"

	suite.mockPaymentService.On("ApprovePayment", mock.Anything, payment.PaymentID, adminID).
		Return(payment, nil).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	url := fmt.Sprintf("/api/v1/payments/%s/approve", payment.PaymentID)
	w := suite.doRequest(http.MethodPost, url, nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.PaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("RCP2025001", body.ReceiptNumber)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestApprovePayment_SubscriberForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleSubscriber)
	url := fmt.Sprintf("/api/v1/payments/%s/approve", uuid.NewString())
	w := suite.doRequest(http.MethodPost, url, nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "ApprovePayment")
}

func (suite *PaymentHandlerTestSuite) TestApprovePayment_AllocationConflict() {
	adminID := uuid.NewString()
	paymentID := uuid.NewString()

	suite.mockPaymentService.On("ApprovePayment", mock.Anything, paymentID, adminID).
		Return(nil, fmt.Errorf("receipt slot contention for year: %w", apperrors.ErrAllocationConflict)).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	url := fmt.Sprintf("/api/v1/payments/%s/approve", paymentID)
	w := suite.doRequest(http.MethodPost, url, nil, token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestApprovePayment_NotPending() {
	adminID := uuid.NewString()
	paymentID := uuid.NewString()

	suite.mockPaymentService.On("ApprovePayment", mock.Anything, paymentID, adminID).
		Return(nil, fmt.Errorf("payment %s is APPROVED, wanted PENDING: %w", paymentID, apperrors.ErrInvalidStateTransition)).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	url := fmt.Sprintf("/api/v1/payments/%s/approve", paymentID)
	w := suite.doRequest(http.MethodPost, url, nil, token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestRejectPayment_MissingReason() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	url := fmt.Sprintf("/api/v1/payments/%s/reject", uuid.NewString())
	w := suite.doRequest(http.MethodPost, url, dto.RejectPaymentRequest{}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RejectPayment")
}

func (suite *PaymentHandlerTestSuite) TestListPendingPayments_AdminSuccess() {
	adminID := uuid.NewString()
	payments := []domain.Payment{
		*samplePayment(uuid.NewString(), domain.StatusPending),
		*samplePayment(uuid.NewString(), domain.StatusPending),
	}

	suite.mockPaymentService.On("ListPendingPayments", mock.Anything,
		mock.MatchedBy(func(p dto.ListPaymentsParams) bool { return p.Limit == 10 }),
	).Return(payments, nil, nil).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.doRequest(http.MethodGet, "/api/v1/payments/pending?limit=10", nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListPaymentsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Payments, 2)
	suite.Nil(body.NextToken)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestMarkReadyForReview_Success() {
	ownerID := uuid.NewString()
	payment := samplePayment(ownerID, domain.StatusPending)
	payment.Method = domain.MethodUPIRedirect
	req := dto.MarkReadyForReviewRequest{
		ExternalTransactionRef: "UPI1234567890",
		ProofRef:               "blob://proof/abc",
	}

	suite.mockPaymentService.On("MarkReadyForReview", mock.Anything, payment.PaymentID, req, ownerID).
		Return(payment, nil).Once()

	token := suite.generateTestToken(ownerID, domain.RoleSubscriber)
	url := fmt.Sprintf("/api/v1/payments/%s/ready", payment.PaymentID)
	w := suite.doRequest(http.MethodPost, url, req, token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestListReceiptsByYear_MissingYear() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleCollector)
	w := suite.doRequest(http.MethodGet, "/api/v1/receipts", nil, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "ListReceiptsByYear")
}

func (suite *PaymentHandlerTestSuite) TestListReceiptsByYear_Success() {
	receipts := []domain.Receipt{
		{
			ReceiptID:     uuid.NewString(),
			PaymentID:     uuid.NewString(),
			ServiceYear:   2025,
			SequenceNo:    1,
			ReceiptNumber: "RCP2025001",
			GeneratedAt:   time.Now(),
		},
	}

	suite.mockPaymentService.On("ListReceiptsByYear", mock.Anything, 2025).
		Return(receipts, nil).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	w := suite.doRequest(http.MethodGet, "/api/v1/receipts?year=2025", nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListReceiptsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2025, body.ServiceYear)
	suite.Len(body.Receipts, 1)
	suite.Equal("RCP2025001", body.Receipts[0].ReceiptNumber)
}

func (suite *PaymentHandlerTestSuite) TestUnauthenticatedRequestRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/payments/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
