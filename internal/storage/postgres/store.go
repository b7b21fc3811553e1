package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapVault/internal/model"
)

// Store provides Postgres persistence for computed quotes.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutQuoteBatch inserts or updates quotes keyed by the full request.
func (s *Store) PutQuoteBatch(quotes []model.QuoteRecord) error {
	return s.UpsertQuotes(context.Background(), quotes)
}

// UpsertQuotes inserts or updates quotes.
func (s *Store) UpsertQuotes(ctx context.Context, quotes []model.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO quotes (
				pool_id, pool_kind, kind, token_in, token_out, amount_raw,
				calculated_raw, calculated_scaled, swap_fee_scaled,
				protocol_fee_scaled, quoted_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (pool_id, kind, token_in, token_out, amount_raw)
			DO UPDATE SET
				pool_kind = EXCLUDED.pool_kind,
				calculated_raw = EXCLUDED.calculated_raw,
				calculated_scaled = EXCLUDED.calculated_scaled,
				swap_fee_scaled = EXCLUDED.swap_fee_scaled,
				protocol_fee_scaled = EXCLUDED.protocol_fee_scaled,
				quoted_at = EXCLUDED.quoted_at,
				updated_at = now()
		`,
			q.PoolID,
			q.PoolKind,
			q.Kind,
			q.TokenIn,
			q.TokenOut,
			q.AmountRaw,
			q.CalculatedRaw,
			q.CalculatedScaled,
			q.SwapFeeScaled,
			q.ProtocolFeeScaled,
			q.QuotedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
