package pools

import (
	"fmt"

	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
	"swapVault/internal/model"
)

// constantProductSwap solves x*y=k over the live balances. Output rounds
// down, required input rounds up.
func constantProductSwap(pool *model.PoolState, amount *uint256.Int, indexIn, indexOut int, kind model.SwapKind) (*uint256.Int, error) {
	balanceIn := pool.BalancesScaled[indexIn]
	balanceOut := pool.BalancesScaled[indexOut]

	if kind == model.GivenIn {
		denominator, err := fixedpoint.Add(balanceIn, amount)
		if err != nil {
			return nil, err
		}
		return fixedpoint.MulDivDown(balanceOut, amount, denominator)
	}

	if amount.Cmp(balanceOut) >= 0 {
		return nil, fmt.Errorf("%w: pool %s output %s exceeds balance %s",
			model.ErrSwapOutOfRange, pool.PoolID, amount, balanceOut)
	}
	denominator, err := fixedpoint.Sub(balanceOut, amount)
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulDivUp(balanceIn, amount, denominator)
}
