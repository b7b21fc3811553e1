package model

// JSONL record types. Big values travel as decimal strings so snapshots and
// quotes survive JSON number precision limits.

// PoolSnapshotRecord is the JSONL representation of one pool snapshot.
type PoolSnapshotRecord struct {
	PoolID                      string   `json:"pool_id"`
	Kind                        string   `json:"kind"`
	Tokens                      []string `json:"tokens"`
	ScalingFactors              []string `json:"scaling_factors"`
	TokenRates                  []string `json:"token_rates"`
	BalancesScaled              []string `json:"balances_scaled"`
	SwapFee                     string   `json:"swap_fee"`
	AggregateSwapFee            string   `json:"aggregate_swap_fee"`
	TotalSupply                 string   `json:"total_supply"`
	SupportsUnbalancedLiquidity bool     `json:"supports_unbalanced_liquidity"`

	// Bounded curve only.
	SqrtPriceLower string `json:"sqrt_price_lower,omitempty"`
	SqrtPriceUpper string `json:"sqrt_price_upper,omitempty"`

	// Buffer only.
	WrapRate      string `json:"wrap_rate,omitempty"`
	WrapDirection string `json:"wrap_direction,omitempty"`
}

// SwapRequestRecord is the JSONL representation of one swap request in a
// batch input file.
type SwapRequestRecord struct {
	PoolID    string `json:"pool_id"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	AmountRaw string `json:"amount_raw"`
	Kind      string `json:"kind"`
}

// QuoteRecord is the JSONL/storage representation of one computed quote.
type QuoteRecord struct {
	PoolID            string `json:"pool_id"`
	PoolKind          string `json:"pool_kind"`
	Kind              string `json:"kind"`
	TokenIn           string `json:"token_in"`
	TokenOut          string `json:"token_out"`
	AmountRaw         string `json:"amount_raw"`
	CalculatedRaw     string `json:"calculated_raw"`
	CalculatedScaled  string `json:"calculated_scaled"`
	SwapFeeScaled     string `json:"swap_fee_scaled"`
	ProtocolFeeScaled string `json:"protocol_fee_scaled"`
	QuotedAt          string `json:"quoted_at"`
}

// QuoteError records a failed quote for a batch input line.
type QuoteError struct {
	PoolID    string `json:"pool_id"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	AmountRaw string `json:"amount_raw"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}
