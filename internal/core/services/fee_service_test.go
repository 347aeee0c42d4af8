package services_test

import (
	"context"
	"testing"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuoteFee_FullBreakdown(t *testing.T) {
	svc := services.NewFeeService(&config.Config{})
	ctx := context.Background()

	// 1200 base + 25m * 10/m wiring + 5%/yr for 2 overdue years + 50 extra
	breakdown, err := svc.QuoteFee(ctx, dto.FeeQuoteRequest{
		BaseFee:        d("1200"),
		WiringMeters:   d("25"),
		WiringRate:     d("10"),
		LateFeePercent: d("5"),
		OverdueYears:   2,
		ExtraCharges:   d("50"),
	})
	require.NoError(t, err)

	assert.True(t, d("1200").Equal(breakdown.BaseAmount))
	assert.True(t, d("250").Equal(breakdown.WireSurcharge))
	assert.True(t, d("120").Equal(breakdown.LateFee))
	assert.True(t, d("50").Equal(breakdown.ExtraCharges))
	assert.True(t, d("1620").Equal(breakdown.TotalAmount))
}

func TestQuoteFee_TotalIsAlwaysComponentSum(t *testing.T) {
	svc := services.NewFeeService(&config.Config{})
	ctx := context.Background()

	cases := []dto.FeeQuoteRequest{
		{BaseFee: d("1000")},
		{BaseFee: d("1000"), ExtraCharges: d("0.01")},
		{BaseFee: d("999.99"), WiringMeters: d("3.5"), WiringRate: d("12.75")},
		{BaseFee: d("1500"), LateFeePercent: d("7.5"), OverdueYears: 3},
	}
	for _, req := range cases {
		breakdown, err := svc.QuoteFee(ctx, req)
		require.NoError(t, err)
		sum := breakdown.BaseAmount.Add(breakdown.WireSurcharge).Add(breakdown.LateFee).Add(breakdown.ExtraCharges)
		assert.True(t, sum.Equal(breakdown.TotalAmount), "total %s != component sum %s", breakdown.TotalAmount, sum)
	}
}

func TestQuoteFee_NoOverdueMeansNoLateFee(t *testing.T) {
	svc := services.NewFeeService(&config.Config{})

	breakdown, err := svc.QuoteFee(context.Background(), dto.FeeQuoteRequest{
		BaseFee:        d("1000"),
		LateFeePercent: d("10"),
		OverdueYears:   0,
	})
	require.NoError(t, err)
	assert.True(t, breakdown.LateFee.IsZero())
	assert.True(t, d("1000").Equal(breakdown.TotalAmount))
}

func TestQuoteFee_ConfiguredDefaultsFillOmittedRates(t *testing.T) {
	svc := services.NewFeeService(&config.Config{
		DefaultWiringRate:     d("8"),
		DefaultLateFeePercent: d("4"),
	})

	breakdown, err := svc.QuoteFee(context.Background(), dto.FeeQuoteRequest{
		BaseFee:      d("1000"),
		WiringMeters: d("10"),
		OverdueYears: 1,
	})
	require.NoError(t, err)
	assert.True(t, d("80").Equal(breakdown.WireSurcharge))
	assert.True(t, d("40").Equal(breakdown.LateFee))
}

func TestQuoteFee_NegativeInputsRejected(t *testing.T) {
	svc := services.NewFeeService(&config.Config{})
	ctx := context.Background()

	cases := []dto.FeeQuoteRequest{
		{BaseFee: d("-1")},
		{BaseFee: d("100"), WiringMeters: d("-5")},
		{BaseFee: d("100"), WiringRate: d("-2")},
		{BaseFee: d("100"), LateFeePercent: d("-1")},
		{BaseFee: d("100"), ExtraCharges: d("-10")},
		{BaseFee: d("100"), OverdueYears: -1},
	}
	for _, req := range cases {
		_, err := svc.QuoteFee(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}
