package fixedpoint

import (
	"math/big"

	"github.com/holiman/uint256"
)

// The radicand x*WAD can exceed 256 bits, so the square root runs on
// math/big and the result is checked back into uint256 range.

var wadBig = big.NewInt(1e18)

// SqrtDown returns the WAD square root of x, rounded down:
// floor(sqrt(x*WAD)).
func SqrtDown(x *uint256.Int) (*uint256.Int, error) {
	rad := new(big.Int).Mul(x.ToBig(), wadBig)
	root := new(big.Int).Sqrt(rad)
	out, overflow := uint256.FromBig(root)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return out, nil
}

// SqrtUp returns the WAD square root of x, rounded up.
func SqrtUp(x *uint256.Int) (*uint256.Int, error) {
	rad := new(big.Int).Mul(x.ToBig(), wadBig)
	root := new(big.Int).Sqrt(rad)
	if new(big.Int).Mul(root, root).Cmp(rad) < 0 {
		root.Add(root, big.NewInt(1))
	}
	out, overflow := uint256.FromBig(root)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return out, nil
}
