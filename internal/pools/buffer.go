package pools

import (
	"fmt"

	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
	"swapVault/internal/model"
)

// bufferSwap converts between an underlying asset and its wrapped
// representative at the buffer's rate (underlying value per wrapped share).
// Output rounds down and required input rounds up, so the buffer never pays
// out more value than it received.
func bufferSwap(pool *model.PoolState, amount *uint256.Int, kind model.SwapKind) (*uint256.Int, error) {
	params := pool.Buffer
	rate := params.WrapRate

	switch params.Direction {
	case model.DirectionWrap:
		if kind == model.GivenIn {
			// Underlying in, wrapped out.
			return fixedpoint.DivDown(amount, rate)
		}
		// Wrapped out fixed, underlying in.
		return fixedpoint.MulUp(amount, rate)
	case model.DirectionUnwrap:
		if kind == model.GivenIn {
			// Wrapped in, underlying out.
			return fixedpoint.MulDown(amount, rate)
		}
		// Underlying out fixed, wrapped in.
		return fixedpoint.DivUp(amount, rate)
	default:
		return nil, fmt.Errorf("%w: pool %s wrap direction %q", model.ErrInvalidInput, pool.PoolID, params.Direction)
	}
}
