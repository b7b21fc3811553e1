package model

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SwapKind selects which side of the trade is fixed.
type SwapKind int

const (
	// GivenIn fixes the input amount and solves for the output.
	GivenIn SwapKind = iota
	// GivenOut fixes the output amount and solves for the required input.
	GivenOut
)

func (k SwapKind) String() string {
	if k == GivenOut {
		return "given-out"
	}
	return "given-in"
}

// ParseSwapKind parses the textual swap kind used in requests and records.
func ParseSwapKind(input string) (SwapKind, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "given-in", "givenin", "exact-in":
		return GivenIn, nil
	case "given-out", "givenout", "exact-out":
		return GivenOut, nil
	default:
		return GivenIn, fmt.Errorf("%w: swap kind %q", ErrInvalidInput, input)
	}
}

// SwapRequest is one swap to quote against a pool snapshot. Constructed once
// per call, never mutated by the engine.
type SwapRequest struct {
	AmountRaw *uint256.Int
	TokenIn   string
	TokenOut  string
	Kind      SwapKind
}

// Validate enforces the request invariants.
func (r SwapRequest) Validate() error {
	if r.AmountRaw == nil || r.AmountRaw.IsZero() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !common.IsHexAddress(r.TokenIn) {
		return fmt.Errorf("%w: token in %q", ErrInvalidInput, r.TokenIn)
	}
	if !common.IsHexAddress(r.TokenOut) {
		return fmt.Errorf("%w: token out %q", ErrInvalidInput, r.TokenOut)
	}
	if common.HexToAddress(r.TokenIn) == common.HexToAddress(r.TokenOut) {
		return fmt.Errorf("%w: token in equals token out", ErrInvalidInput)
	}
	if r.Kind != GivenIn && r.Kind != GivenOut {
		return fmt.Errorf("%w: swap kind %d", ErrInvalidInput, r.Kind)
	}
	return nil
}
