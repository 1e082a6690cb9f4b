package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// FeePolicy holds the deduction rates applied when a withdrawal completes.
type FeePolicy struct {
	// PlatformFeePercent is the marketplace operator's cut, in [0,1].
	PlatformFeePercent decimal.Decimal

	// PaymentProcessingPercent covers payment-rail costs, in [0,1].
	PaymentProcessingPercent decimal.Decimal

	// FixedSurcharge is a flat per-payout charge added to the processing fee.
	FixedSurcharge decimal.Decimal
}

func (p FeePolicy) Validate() error {
	one := decimal.NewFromInt(1)
	if p.PlatformFeePercent.IsNegative() || p.PlatformFeePercent.GreaterThan(one) {
		return fmt.Errorf("fee policy: platform fee percent %s out of range [0,1]", p.PlatformFeePercent)
	}
	if p.PaymentProcessingPercent.IsNegative() || p.PaymentProcessingPercent.GreaterThan(one) {
		return fmt.Errorf("fee policy: payment processing percent %s out of range [0,1]", p.PaymentProcessingPercent)
	}
	if p.FixedSurcharge.IsNegative() {
		return fmt.Errorf("fee policy: fixed surcharge %s must not be negative", p.FixedSurcharge)
	}
	return nil
}

// FeeBreakdown is the derived split of a completed withdrawal amount.
// platformFee + processingFee + netPayout always equals the amount.
type FeeBreakdown struct {
	PlatformFee   decimal.Decimal
	ProcessingFee decimal.Decimal
	NetPayout     decimal.Decimal
}

// ComputeFees splits amount into platform fee, processing fee, and net payout.
// Pure and deterministic. Each fee is rounded to two decimals exactly once
// (round half up); the net payout is derived from the rounded fees so the
// three parts reconcile to the amount with no drift.
func ComputeFees(amount decimal.Decimal, policy FeePolicy) (FeeBreakdown, error) {
	if amount.Sign() <= 0 {
		return FeeBreakdown{}, vo.ErrInvalidAmount
	}

	platformFee := amount.Mul(policy.PlatformFeePercent).Round(2)
	processingFee := amount.Mul(policy.PaymentProcessingPercent).Add(policy.FixedSurcharge).Round(2)
	netPayout := amount.Sub(platformFee).Sub(processingFee)

	return FeeBreakdown{
		PlatformFee:   platformFee,
		ProcessingFee: processingFee,
		NetPayout:     netPayout,
	}, nil
}
