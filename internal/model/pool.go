package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
)

// PoolKind discriminates which swap calculator applies to a pool.
type PoolKind string

const (
	KindConstantProduct PoolKind = "constant-product"
	KindBoundedCurve    PoolKind = "bounded-curve"
	KindBuffer          PoolKind = "buffer"
)

// WrapDirection states whether a buffer pool converts underlying into
// wrapped units or back. Explicit in the pool state, never inferred from
// token order.
type WrapDirection string

const (
	DirectionWrap   WrapDirection = "wrap"
	DirectionUnwrap WrapDirection = "unwrap"
)

// BoundedCurveParams carries the square-root price bounds of a
// range-restricted constant-product curve, both WAD-scaled.
type BoundedCurveParams struct {
	SqrtPriceLower *uint256.Int
	SqrtPriceUpper *uint256.Int
}

// BufferParams carries the wrap rate (underlying value per wrapped share,
// WAD-scaled) and the conversion direction of a buffer pool.
type BufferParams struct {
	WrapRate  *uint256.Int
	Direction WrapDirection
}

// PoolState is an immutable-per-call snapshot of one pool. The engine never
// mutates it; a value passed into Swap must not be mutated concurrently
// with the call.
type PoolState struct {
	PoolID string
	Tokens []string

	// Parallel to Tokens.
	ScalingFactors []*uint256.Int
	TokenRates     []*uint256.Int
	BalancesScaled []*uint256.Int

	SwapFee          *uint256.Int
	AggregateSwapFee *uint256.Int
	TotalSupply      *uint256.Int

	SupportsUnbalancedLiquidity bool

	Kind         PoolKind
	BoundedCurve *BoundedCurveParams
	Buffer       *BufferParams
}

// TokenIndex resolves a token address to its position in the pool's token
// set. Addresses compare after checksum normalization.
func (p *PoolState) TokenIndex(token string) (int, bool) {
	want := common.HexToAddress(token)
	for i, t := range p.Tokens {
		if common.HexToAddress(t) == want {
			return i, true
		}
	}
	return 0, false
}

// Validate enforces the snapshot invariants.
func (p *PoolState) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil pool state", ErrInvalidInput)
	}
	if p.PoolID == "" {
		return fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}
	if len(p.Tokens) < 2 {
		return fmt.Errorf("%w: pool %s needs at least two tokens", ErrInvalidInput, p.PoolID)
	}
	if len(p.ScalingFactors) != len(p.Tokens) ||
		len(p.TokenRates) != len(p.Tokens) ||
		len(p.BalancesScaled) != len(p.Tokens) {
		return fmt.Errorf("%w: pool %s token array lengths mismatch", ErrInvalidInput, p.PoolID)
	}

	seen := make(map[common.Address]bool, len(p.Tokens))
	for i, token := range p.Tokens {
		if !common.IsHexAddress(token) {
			return fmt.Errorf("%w: pool %s token %q", ErrInvalidInput, p.PoolID, token)
		}
		addr := common.HexToAddress(token)
		if seen[addr] {
			return fmt.Errorf("%w: pool %s duplicate token %s", ErrInvalidInput, p.PoolID, token)
		}
		seen[addr] = true

		if p.ScalingFactors[i] == nil || p.ScalingFactors[i].IsZero() {
			return fmt.Errorf("%w: pool %s scaling factor %d", ErrInvalidInput, p.PoolID, i)
		}
		if p.TokenRates[i] == nil || p.TokenRates[i].IsZero() {
			return fmt.Errorf("%w: pool %s token rate %d", ErrInvalidInput, p.PoolID, i)
		}
		if p.BalancesScaled[i] == nil {
			return fmt.Errorf("%w: pool %s balance %d", ErrInvalidInput, p.PoolID, i)
		}
	}

	if err := validateFee(p.SwapFee); err != nil {
		return fmt.Errorf("%w: pool %s swap fee", ErrInvalidInput, p.PoolID)
	}
	if err := validateFee(p.AggregateSwapFee); err != nil {
		return fmt.Errorf("%w: pool %s aggregate swap fee", ErrInvalidInput, p.PoolID)
	}
	if p.TotalSupply == nil {
		return fmt.Errorf("%w: pool %s total supply", ErrInvalidInput, p.PoolID)
	}

	switch p.Kind {
	case KindConstantProduct:
		return nil
	case KindBoundedCurve:
		return p.validateBoundedCurve()
	case KindBuffer:
		return p.validateBuffer()
	default:
		return fmt.Errorf("%w: pool %s kind %q", ErrInvalidInput, p.PoolID, p.Kind)
	}
}

func (p *PoolState) validateBoundedCurve() error {
	params := p.BoundedCurve
	if params == nil || params.SqrtPriceLower == nil || params.SqrtPriceUpper == nil {
		return fmt.Errorf("%w: pool %s missing curve bounds", ErrInvalidInput, p.PoolID)
	}
	if params.SqrtPriceLower.IsZero() {
		return fmt.Errorf("%w: pool %s lower bound is zero", ErrInvalidInput, p.PoolID)
	}
	if !params.SqrtPriceUpper.Gt(params.SqrtPriceLower) {
		return fmt.Errorf("%w: pool %s bounds not increasing", ErrInvalidInput, p.PoolID)
	}
	if len(p.Tokens) != 2 {
		return fmt.Errorf("%w: pool %s bounded curve needs exactly two tokens", ErrInvalidInput, p.PoolID)
	}
	return nil
}

func (p *PoolState) validateBuffer() error {
	params := p.Buffer
	if params == nil || params.WrapRate == nil || params.WrapRate.IsZero() {
		return fmt.Errorf("%w: pool %s missing wrap rate", ErrInvalidInput, p.PoolID)
	}
	if params.Direction != DirectionWrap && params.Direction != DirectionUnwrap {
		return fmt.Errorf("%w: pool %s wrap direction %q", ErrInvalidInput, p.PoolID, params.Direction)
	}
	if len(p.Tokens) != 2 {
		return fmt.Errorf("%w: pool %s buffer needs exactly two tokens", ErrInvalidInput, p.PoolID)
	}
	return nil
}

func validateFee(fee *uint256.Int) error {
	if fee == nil || fee.Cmp(fixedpoint.WAD) >= 0 {
		return ErrInvalidInput
	}
	return nil
}
