package fixedpoint

import (
	"errors"

	"github.com/holiman/uint256"
)

// WAD is the fixed-point scale: scaled values carry 18 decimals.
var WAD = uint256.NewInt(1e18)

var one = uint256.NewInt(1)

var (
	// ErrArithmeticOverflow signals an intermediate value outside the
	// 256-bit range. Never clamped or wrapped around.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrDivisionByZero signals a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Rounding selects the direction of the rounding error for one operation.
// Every call site states it explicitly; it is a protocol-level safety
// property, not an implementation detail.
type Rounding int

const (
	RoundDown Rounding = iota
	RoundUp
)

func (r Rounding) String() string {
	if r == RoundUp {
		return "up"
	}
	return "down"
}

// MulDown returns a*b/WAD rounded down.
func MulDown(a, b *uint256.Int) (*uint256.Int, error) {
	p, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return p.Div(p, WAD), nil
}

// MulUp returns a*b/WAD rounded up.
func MulUp(a, b *uint256.Int) (*uint256.Int, error) {
	p, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	if p.IsZero() {
		return p, nil
	}
	p.Sub(p, one)
	p.Div(p, WAD)
	return p.Add(p, one), nil
}

// DivDown returns a*WAD/b rounded down.
func DivDown(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrDivisionByZero
	}
	p, overflow := new(uint256.Int).MulOverflow(a, WAD)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return p.Div(p, b), nil
}

// DivUp returns a*WAD/b rounded up.
func DivUp(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrDivisionByZero
	}
	if a.IsZero() {
		return new(uint256.Int), nil
	}
	p, overflow := new(uint256.Int).MulOverflow(a, WAD)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	p.Sub(p, one)
	p.Div(p, b)
	return p.Add(p, one), nil
}

// MulDivDown returns a*b/c rounded down, without the WAD scale.
func MulDivDown(a, b, c *uint256.Int) (*uint256.Int, error) {
	if c.IsZero() {
		return nil, ErrDivisionByZero
	}
	p, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return p.Div(p, c), nil
}

// MulDivUp returns a*b/c rounded up, without the WAD scale.
func MulDivUp(a, b, c *uint256.Int) (*uint256.Int, error) {
	if c.IsZero() {
		return nil, ErrDivisionByZero
	}
	p, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	if p.IsZero() {
		return p, nil
	}
	p.Sub(p, one)
	p.Div(p, c)
	return p.Add(p, one), nil
}

// Add returns a+b, failing instead of wrapping around.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	s, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return s, nil
}

// Sub returns a-b, failing when b > a.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	if b.Gt(a) {
		return nil, ErrArithmeticOverflow
	}
	return new(uint256.Int).Sub(a, b), nil
}

// Complement returns WAD-x, or zero when x >= WAD. Used for fee math.
func Complement(x *uint256.Int) *uint256.Int {
	if x.Cmp(WAD) >= 0 {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(WAD, x)
}
