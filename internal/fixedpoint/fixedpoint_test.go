package fixedpoint

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func fp(s string) *uint256.Int {
	return uint256.MustFromDecimal(s)
}

func TestMulDown(t *testing.T) {
	got, err := MulDown(fp("3000000000000000000"), fp("1500000000000000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("4500000000000000000"); !got.Eq(want) {
		t.Fatalf("mul down mismatch: got %s want %s", got, want)
	}
}

func TestMulRoundingSplit(t *testing.T) {
	a := uint256.NewInt(1)
	b := uint256.NewInt(1)

	down, err := MulDown(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !down.IsZero() {
		t.Fatalf("1*1/WAD should floor to zero, got %s", down)
	}

	up, err := MulUp(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up.Eq(uint256.NewInt(1)) {
		t.Fatalf("1*1/WAD should ceil to one, got %s", up)
	}
}

func TestDivRoundingSplit(t *testing.T) {
	a := uint256.NewInt(1)
	b := fp("3000000000000000000")

	down, err := DivDown(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !down.IsZero() {
		t.Fatalf("div down should floor to zero, got %s", down)
	}

	up, err := DivUp(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up.Eq(uint256.NewInt(1)) {
		t.Fatalf("div up should ceil to one, got %s", up)
	}
}

func TestDivDownExact(t *testing.T) {
	got, err := DivDown(fp("10000000000000000000"), fp("4000000000000000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("2500000000000000000"); !got.Eq(want) {
		t.Fatalf("div down mismatch: got %s want %s", got, want)
	}
}

func TestDivisionByZero(t *testing.T) {
	zero := new(uint256.Int)
	if _, err := DivDown(WAD, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if _, err := DivUp(WAD, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if _, err := MulDivDown(WAD, WAD, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestOverflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	two := uint256.NewInt(2)

	if _, err := MulDown(max, two); !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if _, err := MulUp(max, two); !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if _, err := DivDown(max, WAD); !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if _, err := Add(max, two); !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if _, err := Sub(two, max); !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected underflow, got %v", err)
	}
}

func TestMulDiv(t *testing.T) {
	a := uint256.NewInt(10)
	b := uint256.NewInt(3)
	c := uint256.NewInt(4)

	down, err := MulDivDown(a, b, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !down.Eq(uint256.NewInt(7)) {
		t.Fatalf("muldiv down mismatch: got %s", down)
	}

	up, err := MulDivUp(a, b, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up.Eq(uint256.NewInt(8)) {
		t.Fatalf("muldiv up mismatch: got %s", up)
	}
}

func TestComplement(t *testing.T) {
	got := Complement(fp("300000000000000000"))
	if want := fp("700000000000000000"); !got.Eq(want) {
		t.Fatalf("complement mismatch: got %s want %s", got, want)
	}
	if !Complement(fp("2000000000000000000")).IsZero() {
		t.Fatalf("complement above WAD should saturate at zero")
	}
}

func TestSqrtExact(t *testing.T) {
	got, err := SqrtDown(fp("4000000000000000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("2000000000000000000"); !got.Eq(want) {
		t.Fatalf("sqrt(4) mismatch: got %s want %s", got, want)
	}

	up, err := SqrtUp(fp("4000000000000000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up.Eq(got) {
		t.Fatalf("sqrt up of a perfect square should match down: %s != %s", up, got)
	}
}

func TestSqrtRounding(t *testing.T) {
	down, err := SqrtDown(fp("2000000000000000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("1414213562373095048"); !down.Eq(want) {
		t.Fatalf("sqrt(2) down mismatch: got %s want %s", down, want)
	}

	up, err := SqrtUp(fp("2000000000000000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fp("1414213562373095049"); !up.Eq(want) {
		t.Fatalf("sqrt(2) up mismatch: got %s want %s", up, want)
	}
}
