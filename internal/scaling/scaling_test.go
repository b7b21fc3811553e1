package scaling

import (
	"testing"

	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
)

func fp(s string) *uint256.Int {
	return uint256.MustFromDecimal(s)
}

func TestToScaled18SixDecimals(t *testing.T) {
	// 1.234560 of a 6-decimal token, unit rate.
	raw := uint256.NewInt(1_234_560)
	factor := fp("1000000000000000000000000000000") // 1e30
	rate := fp("1000000000000000000")

	got, err := ToScaled18(raw, factor, rate, fixedpoint.RoundDown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("1234560000000000000"); !got.Eq(want) {
		t.Fatalf("scaled mismatch: got %s want %s", got, want)
	}
}

func TestToScaled18AppliesRate(t *testing.T) {
	raw := uint256.NewInt(1_000_000)
	factor := fp("1000000000000000000000000000000")
	rate := fp("2000000000000000000")

	got, err := ToScaled18(raw, factor, rate, fixedpoint.RoundDown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("2000000000000000000"); !got.Eq(want) {
		t.Fatalf("rated scaling mismatch: got %s want %s", got, want)
	}
}

func TestRoundTripNeverLosesValue(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		factor string
		rate   string
	}{
		{"unit rate 18 decimals", "123456789123456789", "1000000000000000000", "1000000000000000000"},
		{"six decimals", "123457", "1000000000000000000000000000000", "1000000000000000000"},
		{"awkward rate", "999999999999999999", "1000000000000000000", "1050000000000000001"},
		{"tiny amount", "1", "1000000000000000000000000000000", "3333333333333333333"},
		{"rebasing rate below one", "777777777", "1000000000000000000000000000000", "987654321098765432"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := fp(tc.raw)
			factor := fp(tc.factor)
			rate := fp(tc.rate)

			scaled, err := ToScaled18(raw, factor, rate, fixedpoint.RoundDown)
			if err != nil {
				t.Fatalf("scale: %v", err)
			}
			back, err := ToRaw(scaled, factor, rate, fixedpoint.RoundUp)
			if err != nil {
				t.Fatalf("unscale: %v", err)
			}
			if back.Lt(raw) {
				t.Fatalf("round trip lost value: %s -> %s -> %s", raw, scaled, back)
			}
		})
	}
}

func TestToRawRoundsPerCaller(t *testing.T) {
	scaled := fp("1000000000000000001")
	factor := fp("1000000000000000000")
	rate := fp("3000000000000000000")

	down, err := ToRaw(scaled, factor, rate, fixedpoint.RoundDown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	up, err := ToRaw(scaled, factor, rate, fixedpoint.RoundUp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up.Gt(down) {
		t.Fatalf("round up should exceed round down for inexact division: up=%s down=%s", up, down)
	}
}
