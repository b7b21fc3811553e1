// Package snapshot loads pool state snapshots from JSONL files. The engine
// itself only ever accepts the typed, validated values produced here.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"swapVault/internal/model"
)

const maxLineBytes = 1024 * 1024

// Loader reads pool snapshots from a JSONL file, one pool per line.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load parses and validates every snapshot line, keyed by pool id. A
// malformed or duplicate line fails the whole load: quoting against a
// partially loaded snapshot set would be silent data corruption.
func (l *Loader) Load(path string) (map[string]*model.PoolState, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshots: %w", err)
	}
	defer file.Close()

	pools := make(map[string]*model.PoolState)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record model.PoolSnapshotRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("parse snapshot line %d: %w", lineNo, err)
		}

		state, err := ParsePoolSnapshot(record)
		if err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", lineNo, err)
		}
		if _, exists := pools[state.PoolID]; exists {
			return nil, fmt.Errorf("snapshot line %d: duplicate pool %s", lineNo, state.PoolID)
		}
		pools[state.PoolID] = state

		l.logger.Debug("snapshot loaded",
			zap.String("pool_id", state.PoolID),
			zap.String("kind", string(state.Kind)),
			zap.Int("tokens", len(state.Tokens)),
		)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read snapshots: %w", err)
	}

	return pools, nil
}

// ParsePoolSnapshot converts a JSONL record into a validated PoolState.
func ParsePoolSnapshot(record model.PoolSnapshotRecord) (*model.PoolState, error) {
	state := &model.PoolState{
		PoolID:                      record.PoolID,
		Tokens:                      record.Tokens,
		Kind:                        model.PoolKind(strings.ToLower(strings.TrimSpace(record.Kind))),
		SupportsUnbalancedLiquidity: record.SupportsUnbalancedLiquidity,
	}

	var err error
	if state.ScalingFactors, err = parseAmounts(record.ScalingFactors, "scaling_factors"); err != nil {
		return nil, err
	}
	if state.TokenRates, err = parseAmounts(record.TokenRates, "token_rates"); err != nil {
		return nil, err
	}
	if state.BalancesScaled, err = parseAmounts(record.BalancesScaled, "balances_scaled"); err != nil {
		return nil, err
	}
	if state.SwapFee, err = parseAmountOrZero(record.SwapFee, "swap_fee"); err != nil {
		return nil, err
	}
	if state.AggregateSwapFee, err = parseAmountOrZero(record.AggregateSwapFee, "aggregate_swap_fee"); err != nil {
		return nil, err
	}
	if state.TotalSupply, err = parseAmountOrZero(record.TotalSupply, "total_supply"); err != nil {
		return nil, err
	}

	switch state.Kind {
	case model.KindBoundedCurve:
		lower, err := parseAmount(record.SqrtPriceLower, "sqrt_price_lower")
		if err != nil {
			return nil, err
		}
		upper, err := parseAmount(record.SqrtPriceUpper, "sqrt_price_upper")
		if err != nil {
			return nil, err
		}
		state.BoundedCurve = &model.BoundedCurveParams{
			SqrtPriceLower: lower,
			SqrtPriceUpper: upper,
		}
	case model.KindBuffer:
		rate, err := parseAmount(record.WrapRate, "wrap_rate")
		if err != nil {
			return nil, err
		}
		state.Buffer = &model.BufferParams{
			WrapRate:  rate,
			Direction: model.WrapDirection(strings.ToLower(strings.TrimSpace(record.WrapDirection))),
		}
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

func parseAmounts(values []string, field string) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, 0, len(values))
	for i, value := range values {
		parsed, err := parseAmount(value, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func parseAmount(value, field string) (*uint256.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: %s is required", model.ErrInvalidInput, field)
	}
	parsed, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", model.ErrInvalidInput, field, value)
	}
	return parsed, nil
}

func parseAmountOrZero(value, field string) (*uint256.Int, error) {
	if strings.TrimSpace(value) == "" {
		return new(uint256.Int), nil
	}
	return parseAmount(value, field)
}
