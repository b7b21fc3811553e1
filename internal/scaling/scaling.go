// Package scaling converts raw on-chain token amounts to and from the
// internal 18-decimal domain using per-token scaling factors and live
// exchange rates.
package scaling

import (
	"github.com/holiman/uint256"

	"swapVault/internal/fixedpoint"
)

// ToScaled18 converts a raw native-decimals amount into the WAD domain:
// the amount is multiplied by the token's scaling factor, then by its
// exchange rate, both with the caller's rounding.
func ToScaled18(raw, factor, rate *uint256.Int, rounding fixedpoint.Rounding) (*uint256.Int, error) {
	if rounding == fixedpoint.RoundUp {
		scaled, err := fixedpoint.MulUp(raw, factor)
		if err != nil {
			return nil, err
		}
		return fixedpoint.MulUp(scaled, rate)
	}
	scaled, err := fixedpoint.MulDown(raw, factor)
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulDown(scaled, rate)
}

// ToRaw converts a WAD amount back into raw native-decimals units: the
// amount is divided by the rate, then by the scaling factor, both with the
// caller's rounding.
func ToRaw(scaled, factor, rate *uint256.Int, rounding fixedpoint.Rounding) (*uint256.Int, error) {
	if rounding == fixedpoint.RoundUp {
		unrated, err := fixedpoint.DivUp(scaled, rate)
		if err != nil {
			return nil, err
		}
		return fixedpoint.DivUp(unrated, factor)
	}
	unrated, err := fixedpoint.DivDown(scaled, rate)
	if err != nil {
		return nil, err
	}
	return fixedpoint.DivDown(unrated, factor)
}
