package pools

import (
	"fmt"

	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
	"swapVault/internal/model"
)

// The bounded curve is a constant-product invariant restricted to the price
// range [lower^2, upper^2] for token 0 quoted in token 1. The invariant L
// solves a*L^2 - b*L - c = 0 with
//
//	a = 1 - lower/upper
//	b = x*lower + y/upper
//	c = x*y
//
// and the curve trades on virtual balances v0 = x + L/upper,
// v1 = y + L*lower. At a range boundary one actual balance reaches zero;
// trades that would reach or cross it are rejected as out of range, the
// same boundary convention the constant product applies to a full drain.

var four = uint256.NewInt(4)

// boundedCurveInvariant computes L with every term rounded so the result is
// biased in the requested direction.
func boundedCurveInvariant(x, y *uint256.Int, params *model.BoundedCurveParams, rounding fixedpoint.Rounding) (*uint256.Int, error) {
	lower := params.SqrtPriceLower
	upper := params.SqrtPriceUpper

	mul := fixedpoint.MulDown
	div := fixedpoint.DivDown
	sqrt := fixedpoint.SqrtDown
	if rounding == fixedpoint.RoundUp {
		mul = fixedpoint.MulUp
		div = fixedpoint.DivUp
		sqrt = fixedpoint.SqrtUp
	}

	// The ratio lower/upper rounds opposite to a = 1 - ratio, and a is
	// biased separately for its two roles: down in the radicand, up in the
	// denominator when L rounds down (and conversely).
	ratioDown, err := fixedpoint.DivDown(lower, upper)
	if err != nil {
		return nil, err
	}
	ratioUp, err := fixedpoint.DivUp(lower, upper)
	if err != nil {
		return nil, err
	}
	aUp := fixedpoint.Complement(ratioDown)
	aDown := fixedpoint.Complement(ratioUp)
	if aDown.IsZero() && aUp.IsZero() {
		return nil, fmt.Errorf("%w: degenerate price range", model.ErrInvalidInput)
	}

	bLeft, err := mul(x, lower)
	if err != nil {
		return nil, err
	}
	bRight, err := div(y, upper)
	if err != nil {
		return nil, err
	}
	b, err := fixedpoint.Add(bLeft, bRight)
	if err != nil {
		return nil, err
	}

	c, err := mul(x, y)
	if err != nil {
		return nil, err
	}

	bSquared, err := mul(b, b)
	if err != nil {
		return nil, err
	}
	aRadicand := aDown
	aDenominator := aUp
	if rounding == fixedpoint.RoundUp {
		aRadicand = aUp
		aDenominator = aDown
	}
	ac, err := mul(aRadicand, c)
	if err != nil {
		return nil, err
	}
	ac4, overflow := new(uint256.Int).MulOverflow(ac, four)
	if overflow {
		return nil, fixedpoint.ErrArithmeticOverflow
	}
	radicand, err := fixedpoint.Add(bSquared, ac4)
	if err != nil {
		return nil, err
	}

	root, err := sqrt(radicand)
	if err != nil {
		return nil, err
	}
	numerator, err := fixedpoint.Add(b, root)
	if err != nil {
		return nil, err
	}
	denominator, overflow := new(uint256.Int).AddOverflow(aDenominator, aDenominator)
	if overflow {
		return nil, fixedpoint.ErrArithmeticOverflow
	}
	return div(numerator, denominator)
}

// virtualBalance returns the actual balance plus the range offset for one
// token index, with the offset rounded in the requested direction.
func virtualBalance(pool *model.PoolState, invariant *uint256.Int, index int, rounding fixedpoint.Rounding) (*uint256.Int, error) {
	params := pool.BoundedCurve

	var offset *uint256.Int
	var err error
	if index == 0 {
		if rounding == fixedpoint.RoundUp {
			offset, err = fixedpoint.DivUp(invariant, params.SqrtPriceUpper)
		} else {
			offset, err = fixedpoint.DivDown(invariant, params.SqrtPriceUpper)
		}
	} else {
		if rounding == fixedpoint.RoundUp {
			offset, err = fixedpoint.MulUp(invariant, params.SqrtPriceLower)
		} else {
			offset, err = fixedpoint.MulDown(invariant, params.SqrtPriceLower)
		}
	}
	if err != nil {
		return nil, err
	}
	return fixedpoint.Add(pool.BalancesScaled[index], offset)
}

// boundedCurveSwap solves the constant-product equation on virtual balances.
// The in-side virtual balance is built from the invariant rounded up and the
// out-side from the invariant rounded down, so the result is never more
// favorable to the trader than exact arithmetic.
func boundedCurveSwap(pool *model.PoolState, amount *uint256.Int, indexIn, indexOut int, kind model.SwapKind) (*uint256.Int, error) {
	x := pool.BalancesScaled[0]
	y := pool.BalancesScaled[1]

	invariantUp, err := boundedCurveInvariant(x, y, pool.BoundedCurve, fixedpoint.RoundUp)
	if err != nil {
		return nil, err
	}
	invariantDown, err := boundedCurveInvariant(x, y, pool.BoundedCurve, fixedpoint.RoundDown)
	if err != nil {
		return nil, err
	}

	virtualIn, err := virtualBalance(pool, invariantUp, indexIn, fixedpoint.RoundUp)
	if err != nil {
		return nil, err
	}
	virtualOut, err := virtualBalance(pool, invariantDown, indexOut, fixedpoint.RoundDown)
	if err != nil {
		return nil, err
	}

	balanceOut := pool.BalancesScaled[indexOut]

	if kind == model.GivenIn {
		denominator, err := fixedpoint.Add(virtualIn, amount)
		if err != nil {
			return nil, err
		}
		amountOut, err := fixedpoint.MulDivDown(virtualOut, amount, denominator)
		if err != nil {
			return nil, err
		}
		if amountOut.Cmp(balanceOut) >= 0 {
			return nil, fmt.Errorf("%w: pool %s output %s would cross the price boundary (balance %s)",
				model.ErrSwapOutOfRange, pool.PoolID, amountOut, balanceOut)
		}
		return amountOut, nil
	}

	if amount.Cmp(balanceOut) >= 0 {
		return nil, fmt.Errorf("%w: pool %s requested output %s would cross the price boundary (balance %s)",
			model.ErrSwapOutOfRange, pool.PoolID, amount, balanceOut)
	}
	denominator, err := fixedpoint.Sub(virtualOut, amount)
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulDivUp(virtualIn, amount, denominator)
}
