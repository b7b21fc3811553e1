// Package vault exposes the single public swap entry point: validation,
// raw/scaled conversion and fee handling around the per-kind calculators.
// The whole path is a pure function of its inputs; nothing is logged,
// retried, or clamped.
package vault

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
	"swapVault/internal/model"
	"swapVault/internal/pools"
	"swapVault/internal/scaling"
)

// QuoteResult is the outcome of one swap computation. For GivenIn the
// calculated amount is the output owed to the trader; for GivenOut it is the
// required input.
type QuoteResult struct {
	AmountCalculatedRaw    *uint256.Int
	AmountCalculatedScaled *uint256.Int

	// Fee amounts in the WAD domain, in token-in terms.
	SwapFeeScaled     *uint256.Int
	ProtocolFeeScaled *uint256.Int
}

// Swap computes the quote for one request against one pool snapshot.
func Swap(req model.SwapRequest, pool *model.PoolState) (*QuoteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	indexIn, ok := pool.TokenIndex(req.TokenIn)
	if !ok {
		return nil, fmt.Errorf("%w: token in %s not in pool %s", model.ErrUnknownToken, req.TokenIn, pool.PoolID)
	}
	indexOut, ok := pool.TokenIndex(req.TokenOut)
	if !ok {
		return nil, fmt.Errorf("%w: token out %s not in pool %s", model.ErrUnknownToken, req.TokenOut, pool.PoolID)
	}

	if req.Kind == model.GivenIn {
		return swapGivenIn(pool, req.AmountRaw, indexIn, indexOut)
	}
	return swapGivenOut(pool, req.AmountRaw, indexIn, indexOut)
}

// swapGivenIn scales the fixed input down, takes the swap fee off the input
// before the invariant, and scales the computed output down: every rounding
// under-credits the trader.
func swapGivenIn(pool *model.PoolState, amountRaw *uint256.Int, indexIn, indexOut int) (*QuoteResult, error) {
	amountScaled, err := scaling.ToScaled18(
		amountRaw, pool.ScalingFactors[indexIn], pool.TokenRates[indexIn], fixedpoint.RoundDown)
	if err != nil {
		return nil, fmt.Errorf("scale input: %w", err)
	}

	feeScaled, err := fixedpoint.MulUp(amountScaled, pool.SwapFee)
	if err != nil {
		return nil, fmt.Errorf("swap fee: %w", err)
	}
	netScaled, err := fixedpoint.Sub(amountScaled, feeScaled)
	if err != nil {
		return nil, fmt.Errorf("swap fee: %w", err)
	}

	outScaled, err := pools.ComputeSwap(pool, netScaled, indexIn, indexOut, model.GivenIn)
	if err != nil {
		return nil, err
	}

	outRaw, err := scaling.ToRaw(
		outScaled, pool.ScalingFactors[indexOut], pool.TokenRates[indexOut], fixedpoint.RoundDown)
	if err != nil {
		return nil, fmt.Errorf("unscale output: %w", err)
	}

	protocolFee, err := fixedpoint.MulDown(feeScaled, pool.AggregateSwapFee)
	if err != nil {
		return nil, fmt.Errorf("aggregate fee: %w", err)
	}

	return &QuoteResult{
		AmountCalculatedRaw:    outRaw,
		AmountCalculatedScaled: outScaled,
		SwapFeeScaled:          feeScaled,
		ProtocolFeeScaled:      protocolFee,
	}, nil
}

// swapGivenOut scales the fixed output up, solves for the curve input, then
// grosses it up so the fee comes on top of what the invariant requires:
// every rounding over-charges the trader.
func swapGivenOut(pool *model.PoolState, amountRaw *uint256.Int, indexIn, indexOut int) (*QuoteResult, error) {
	outScaled, err := scaling.ToScaled18(
		amountRaw, pool.ScalingFactors[indexOut], pool.TokenRates[indexOut], fixedpoint.RoundUp)
	if err != nil {
		return nil, fmt.Errorf("scale output: %w", err)
	}

	curveIn, err := pools.ComputeSwap(pool, outScaled, indexIn, indexOut, model.GivenOut)
	if err != nil {
		return nil, err
	}

	grossIn, err := fixedpoint.DivUp(curveIn, fixedpoint.Complement(pool.SwapFee))
	if err != nil {
		return nil, fmt.Errorf("swap fee: %w", err)
	}
	feeScaled, err := fixedpoint.Sub(grossIn, curveIn)
	if err != nil {
		return nil, fmt.Errorf("swap fee: %w", err)
	}

	inRaw, err := scaling.ToRaw(
		grossIn, pool.ScalingFactors[indexIn], pool.TokenRates[indexIn], fixedpoint.RoundUp)
	if err != nil {
		return nil, fmt.Errorf("unscale input: %w", err)
	}

	protocolFee, err := fixedpoint.MulDown(feeScaled, pool.AggregateSwapFee)
	if err != nil {
		return nil, fmt.Errorf("aggregate fee: %w", err)
	}

	return &QuoteResult{
		AmountCalculatedRaw:    inRaw,
		AmountCalculatedScaled: grossIn,
		SwapFeeScaled:          feeScaled,
		ProtocolFeeScaled:      protocolFee,
	}, nil
}

// BuildRecord renders a computed quote for persistence.
func BuildRecord(req model.SwapRequest, pool *model.PoolState, res *QuoteResult, quotedAt time.Time) model.QuoteRecord {
	return model.QuoteRecord{
		PoolID:            pool.PoolID,
		PoolKind:          string(pool.Kind),
		Kind:              req.Kind.String(),
		TokenIn:           req.TokenIn,
		TokenOut:          req.TokenOut,
		AmountRaw:         req.AmountRaw.Dec(),
		CalculatedRaw:     res.AmountCalculatedRaw.Dec(),
		CalculatedScaled:  res.AmountCalculatedScaled.Dec(),
		SwapFeeScaled:     res.SwapFeeScaled.Dec(),
		ProtocolFeeScaled: res.ProtocolFeeScaled.Dec(),
		QuotedAt:          quotedAt.UTC().Format(time.RFC3339Nano),
	}
}
