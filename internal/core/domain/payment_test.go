package domain_test

import (
	"testing"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodLegs(t *testing.T) {
	cases := []struct {
		method   domain.PaymentMethod
		external bool
		wallet   bool
	}{
		{domain.MethodCash, false, false},
		{domain.MethodWallet, false, true},
		{domain.MethodUPIRedirect, true, false},
		{domain.MethodCombined, true, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.external, tc.method.UsesExternalLeg(), "external leg for %s", tc.method)
		assert.Equal(t, tc.wallet, tc.method.UsesWalletLeg(), "wallet leg for %s", tc.method)
		assert.True(t, tc.method.Valid())
	}
	assert.False(t, domain.PaymentMethod("CHEQUE").Valid())
	assert.False(t, domain.PaymentMethod("").Valid())
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, domain.StatusIncomplete.Terminal())
	assert.False(t, domain.StatusPending.Terminal())
	assert.True(t, domain.StatusApproved.Terminal())
	assert.True(t, domain.StatusRejected.Terminal())
}

func TestReviewReady(t *testing.T) {
	// Cash and wallet payments carry nothing external to confirm.
	cash := &domain.Payment{Method: domain.MethodCash}
	assert.True(t, cash.ReviewReady())

	wallet := &domain.Payment{Method: domain.MethodWallet}
	assert.True(t, wallet.ReviewReady())

	// Redirect channels need both the reference and the proof.
	redirect := &domain.Payment{Method: domain.MethodUPIRedirect}
	assert.False(t, redirect.ReviewReady())

	redirect.ExternalTransactionRef = "UPI123456"
	assert.False(t, redirect.ReviewReady(), "reference alone is not enough")

	redirect.ProofRef = "blob://proof/1"
	assert.True(t, redirect.ReviewReady())

	combined := &domain.Payment{
		Method:                 domain.MethodCombined,
		ExternalTransactionRef: "UPI123456",
	}
	assert.False(t, combined.ReviewReady())
	combined.ProofRef = "blob://proof/2"
	assert.True(t, combined.ReviewReady())
}
