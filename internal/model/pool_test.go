package model

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

const (
	tokenA = "0x00000000000000000000000000000000000000aa"
	tokenB = "0x00000000000000000000000000000000000000bb"
)

func wad(s string) *uint256.Int {
	return uint256.MustFromDecimal(s)
}

func validConstantProduct() *PoolState {
	return &PoolState{
		PoolID:           "pool-cp",
		Tokens:           []string{tokenA, tokenB},
		ScalingFactors:   []*uint256.Int{wad("1000000000000000000"), wad("1000000000000000000")},
		TokenRates:       []*uint256.Int{wad("1000000000000000000"), wad("1000000000000000000")},
		BalancesScaled:   []*uint256.Int{wad("100000000000000000000"), wad("100000000000000000000")},
		SwapFee:          uint256.NewInt(0),
		AggregateSwapFee: uint256.NewInt(0),
		TotalSupply:      wad("100000000000000000000"),
		Kind:             KindConstantProduct,
	}
}

func TestPoolStateValidate(t *testing.T) {
	if err := validConstantProduct().Validate(); err != nil {
		t.Fatalf("valid pool rejected: %v", err)
	}
}

func TestPoolStateValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PoolState)
	}{
		{"empty pool id", func(p *PoolState) { p.PoolID = "" }},
		{"single token", func(p *PoolState) {
			p.Tokens = p.Tokens[:1]
			p.ScalingFactors = p.ScalingFactors[:1]
			p.TokenRates = p.TokenRates[:1]
			p.BalancesScaled = p.BalancesScaled[:1]
		}},
		{"array length mismatch", func(p *PoolState) { p.TokenRates = p.TokenRates[:1] }},
		{"bad token address", func(p *PoolState) { p.Tokens[1] = "not-an-address" }},
		{"duplicate token", func(p *PoolState) { p.Tokens[1] = tokenA }},
		{"zero scaling factor", func(p *PoolState) { p.ScalingFactors[0] = uint256.NewInt(0) }},
		{"zero token rate", func(p *PoolState) { p.TokenRates[0] = uint256.NewInt(0) }},
		{"nil balance", func(p *PoolState) { p.BalancesScaled[1] = nil }},
		{"swap fee at one", func(p *PoolState) { p.SwapFee = wad("1000000000000000000") }},
		{"nil aggregate fee", func(p *PoolState) { p.AggregateSwapFee = nil }},
		{"unknown kind", func(p *PoolState) { p.Kind = PoolKind("weighted") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := validConstantProduct()
			tc.mutate(pool)
			err := pool.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPoolStateValidateBoundedCurve(t *testing.T) {
	pool := validConstantProduct()
	pool.Kind = KindBoundedCurve
	pool.BoundedCurve = &BoundedCurveParams{
		SqrtPriceLower: wad("948683298050513799"),
		SqrtPriceUpper: wad("1048808848170151546"),
	}
	if err := pool.Validate(); err != nil {
		t.Fatalf("valid bounded curve rejected: %v", err)
	}

	pool.BoundedCurve.SqrtPriceUpper = wad("948683298050513799")
	if err := pool.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("equal bounds: want ErrInvalidInput, got %v", err)
	}

	pool.BoundedCurve = nil
	if err := pool.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing bounds: want ErrInvalidInput, got %v", err)
	}
}

func TestPoolStateValidateBuffer(t *testing.T) {
	pool := validConstantProduct()
	pool.Kind = KindBuffer
	pool.Buffer = &BufferParams{
		WrapRate:  wad("1050000000000000000"),
		Direction: DirectionWrap,
	}
	if err := pool.Validate(); err != nil {
		t.Fatalf("valid buffer rejected: %v", err)
	}

	pool.Buffer.Direction = WrapDirection("sideways")
	if err := pool.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad direction: want ErrInvalidInput, got %v", err)
	}

	pool.Buffer = &BufferParams{WrapRate: uint256.NewInt(0), Direction: DirectionWrap}
	if err := pool.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero wrap rate: want ErrInvalidInput, got %v", err)
	}
}

func TestTokenIndexNormalizesCase(t *testing.T) {
	pool := validConstantProduct()
	idx, ok := pool.TokenIndex("0x00000000000000000000000000000000000000AA")
	if !ok || idx != 0 {
		t.Fatalf("want index 0, got %d ok=%v", idx, ok)
	}
	if _, ok := pool.TokenIndex("0x00000000000000000000000000000000000000cc"); ok {
		t.Fatalf("unknown token resolved")
	}
}

func TestParseSwapKind(t *testing.T) {
	cases := map[string]SwapKind{
		"given-in":  GivenIn,
		"GivenIn":   GivenIn,
		"exact-out": GivenOut,
		"given-out": GivenOut,
	}
	for input, want := range cases {
		got, err := ParseSwapKind(input)
		if err != nil {
			t.Fatalf("ParseSwapKind(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseSwapKind(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseSwapKind("both"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
