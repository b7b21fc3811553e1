package pools

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"swapVault/internal/model"
)

func constantProductPool(balance0, balance1 string) *model.PoolState {
	return &model.PoolState{
		PoolID: "cp-1",
		Tokens: []string{
			"0x1111111111111111111111111111111111111111",
			"0x2222222222222222222222222222222222222222",
		},
		ScalingFactors:   []*uint256.Int{fp("1000000000000000000"), fp("1000000000000000000")},
		TokenRates:       []*uint256.Int{fp("1000000000000000000"), fp("1000000000000000000")},
		BalancesScaled:   []*uint256.Int{fp(balance0), fp(balance1)},
		SwapFee:          new(uint256.Int),
		AggregateSwapFee: new(uint256.Int),
		TotalSupply:      fp("2000000000000000000000"),
		Kind:             model.KindConstantProduct,
	}
}

func TestConstantProductGivenIn(t *testing.T) {
	pool := constantProductPool("1000000000000000000000", "1000000000000000000000")

	// 10 in against 1000:1000 reserves: floor(1000*10/1010).
	got, err := ComputeSwap(pool, fp("10000000000000000000"), 0, 1, model.GivenIn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("9900990099009900990"); !got.Eq(want) {
		t.Fatalf("output mismatch: got %s want %s", got, want)
	}
}

func TestConstantProductGivenOutRecoversInput(t *testing.T) {
	pool := constantProductPool("1000000000000000000000", "1000000000000000000000")

	out, err := ComputeSwap(pool, fp("10000000000000000000"), 0, 1, model.GivenIn)
	if err != nil {
		t.Fatalf("given in: %v", err)
	}
	back, err := ComputeSwap(pool, out, 0, 1, model.GivenOut)
	if err != nil {
		t.Fatalf("given out: %v", err)
	}
	if back.Gt(fp("10000000000000000000")) {
		t.Fatalf("required input exceeds the original: %s", back)
	}
	if back.Lt(fp("9999999999999999000")) {
		t.Fatalf("required input far below the original: %s", back)
	}
}

func TestConstantProductGivenOutExceedsReserve(t *testing.T) {
	pool := constantProductPool("1000000000000000000000", "1000000000000000000000")

	_, err := ComputeSwap(pool, fp("1000000000000000000000"), 0, 1, model.GivenOut)
	if !errors.Is(err, model.ErrSwapOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestConstantProductMonotonic(t *testing.T) {
	pool := constantProductPool("1000000000000000000000", "500000000000000000000")

	prev := new(uint256.Int)
	step := fp("1000000000000000001")
	amount := new(uint256.Int).Set(step)
	for i := 0; i < 50; i++ {
		out, err := ComputeSwap(pool, amount, 0, 1, model.GivenIn)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if out.Lt(prev) {
			t.Fatalf("output decreased at step %d: %s < %s", i, out, prev)
		}
		prev = out
		amount = new(uint256.Int).Add(amount, step)
	}
}
