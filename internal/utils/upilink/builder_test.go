package upilink

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayee() Payee {
	return Payee{
		VPA:          "citycable@okbank",
		Name:         "City Cable Network",
		MerchantCode: "4899",
		Currency:     "INR",
	}
}

func TestBuildReference_ShortInputUntouched(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ref := BuildReference("CC", "42", at)
	assert.Equal(t, "CC4220240301120000", ref)
	assert.LessOrEqual(t, len(ref), MaxRefLen)
}

func TestBuildReference_TruncatesDeterministically(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	longID := "9f1c2b3a-4d5e-6f70-8192-a3b4c5d6e7f8"

	first := BuildReference("CCPAY-", longID, at)
	second := BuildReference("CCPAY-", longID, at)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), MaxRefLen)
	assert.True(t, strings.HasPrefix(first, "CCPAY-"))
}

func TestBuildReference_BudgetSplit(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	longID := strings.Repeat("a", 40)

	ref := BuildReference("CCPAY-", longID, at)

	// Prefix is 6 chars, so 29 remain: 11 (40%) for the id, 18 for the
	// timestamp (the full 14-digit stamp fits in that).
	assert.True(t, strings.HasPrefix(ref, "CCPAY-"+strings.Repeat("a", 11)))
	assert.True(t, strings.HasSuffix(ref, "20240301120000"))
	assert.LessOrEqual(t, len(ref), MaxRefLen)
}

func TestBuildLink_EncodesAllFields(t *testing.T) {
	link, err := BuildLink(testPayee(), Request{
		TransactionID:  "CCTID123",
		TransactionRef: "CCREF456",
		Note:           "Cable fee 2024 / flat 7B",
		Amount:         decimal.NewFromInt(1250),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "upi://pay?"))

	parsed, err := url.ParseQuery(strings.TrimPrefix(link, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "citycable@okbank", parsed.Get("pa"))
	assert.Equal(t, "City Cable Network", parsed.Get("pn"))
	assert.Equal(t, "4899", parsed.Get("mc"))
	assert.Equal(t, "CCTID123", parsed.Get("tid"))
	assert.Equal(t, "CCREF456", parsed.Get("tr"))
	assert.Equal(t, "Cable fee 2024 / flat 7B", parsed.Get("tn"))
	assert.Equal(t, "1250.00", parsed.Get("am"))
	assert.Equal(t, "INR", parsed.Get("cu"))
}

func TestBuildLink_RejectsNonPositiveAmount(t *testing.T) {
	_, err := BuildLink(testPayee(), Request{Amount: decimal.Zero})
	assert.Error(t, err)
}

func TestBuildLink_MissingPayee(t *testing.T) {
	_, err := BuildLink(Payee{}, Request{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrMissingPayee)
}

func TestBuildLaunchPlan_OrderedStrategies(t *testing.T) {
	plan, err := BuildLaunchPlan(testPayee(), Request{
		TransactionID:  "CCTID123",
		TransactionRef: "CCREF456",
		Note:           "Cable fee",
		Amount:         decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.Len(t, plan.Options, 5)
	assert.Equal(t, StrategyChooser, plan.Options[0].Strategy)
	assert.Equal(t, StrategyIntent, plan.Options[1].Strategy)
	assert.Equal(t, StrategyLegacyScheme, plan.Options[2].Strategy)
	assert.Equal(t, "500.00", plan.Manual.Amount)
}

func TestBuildLaunchPlan_DegradesToManual(t *testing.T) {
	plan, err := BuildLaunchPlan(Payee{Name: "City Cable Network"}, Request{
		TransactionRef: "CCREF456",
		Amount:         decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, ErrMissingPayee)
	assert.Empty(t, plan.Options)
	assert.Equal(t, "CCREF456", plan.Manual.Reference)
}
