// Package pools implements the per-kind swap calculators. Amounts entering
// and leaving every calculator are WAD-scaled; raw/native conversion belongs
// to the vault dispatcher.
package pools

import (
	"fmt"

	"github.com/holiman/uint256"

	"swapVault/internal/model"
)

// ComputeSwap dispatches to the calculator matching the pool kind.
func ComputeSwap(pool *model.PoolState, amountScaled *uint256.Int, indexIn, indexOut int, kind model.SwapKind) (*uint256.Int, error) {
	switch pool.Kind {
	case model.KindConstantProduct:
		return constantProductSwap(pool, amountScaled, indexIn, indexOut, kind)
	case model.KindBoundedCurve:
		return boundedCurveSwap(pool, amountScaled, indexIn, indexOut, kind)
	case model.KindBuffer:
		return bufferSwap(pool, amountScaled, kind)
	default:
		return nil, fmt.Errorf("%w: pool kind %q", model.ErrInvalidInput, pool.Kind)
	}
}
