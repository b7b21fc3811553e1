package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapVault/internal/config"
	"swapVault/internal/model"
	"swapVault/internal/rates"
	"swapVault/internal/snapshot"
	"swapVault/internal/storage"
	"swapVault/internal/storage/postgres"
	"swapVault/internal/vault"
)

func runBatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Pools == "" {
		return fmt.Errorf("pools path is required")
	}
	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolSet, err := snapshot.NewLoader(logger).Load(cfg.Pools)
	if err != nil {
		return err
	}

	if cfg.RPCURL != "" {
		client, err := rates.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer client.Close()
		provider := rates.NewProvider(client, logger)
		for _, pool := range poolSet {
			provider.RefreshPool(ctx, pool)
		}
	}

	sinks := []storage.QuoteSink{storage.NewJsonlStorage(cfg.Out)}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, store)
	}
	errorSink := storage.NewJsonlStorage(cfg.Errors)

	logger.Info("batch start",
		zap.String("pools", cfg.Pools),
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.Int("pool_count", len(poolSet)),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Bool("pg_enabled", cfg.PGDSN != ""),
	)

	runner := &batchRunner{
		pools:     poolSet,
		sinks:     sinks,
		errorSink: errorSink,
		batchSize: cfg.BatchSize,
		logger:    logger,
	}
	return runner.run(ctx, cfg.In)
}

type batchRunner struct {
	pools     map[string]*model.PoolState
	sinks     []storage.QuoteSink
	errorSink *storage.JsonlStorage
	batchSize int
	logger    *zap.Logger

	quotes   []model.QuoteRecord
	failures []model.QuoteError
	quoted   int
	failed   int
}

func (r *batchRunner) run(ctx context.Context, inPath string) error {
	file, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			if err := r.flush(); err != nil {
				return err
			}
			return ctx.Err()
		default:
		}

		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.SwapRequestRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("parse request line %d: %w", lineNo, err)
		}

		r.process(record)

		if len(r.quotes) >= r.batchSize || len(r.failures) >= r.batchSize {
			if err := r.flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if err := r.flush(); err != nil {
		return err
	}

	r.logger.Info("batch done",
		zap.Int("requests", lineNo),
		zap.Int("quoted", r.quoted),
		zap.Int("failed", r.failed),
	)
	return nil
}

func (r *batchRunner) process(record model.SwapRequestRecord) {
	quote, err := r.quote(record)
	if err != nil {
		r.failures = append(r.failures, model.QuoteError{
			PoolID:    record.PoolID,
			TokenIn:   record.TokenIn,
			TokenOut:  record.TokenOut,
			AmountRaw: record.AmountRaw,
			Kind:      record.Kind,
			Error:     err.Error(),
		})
		r.failed++
		return
	}
	r.quotes = append(r.quotes, quote)
	r.quoted++
}

func (r *batchRunner) quote(record model.SwapRequestRecord) (model.QuoteRecord, error) {
	pool, ok := r.pools[record.PoolID]
	if !ok {
		return model.QuoteRecord{}, fmt.Errorf("pool %s not found", record.PoolID)
	}

	amount, err := uint256.FromDecimal(record.AmountRaw)
	if err != nil {
		return model.QuoteRecord{}, fmt.Errorf("parse amount %q: %w", record.AmountRaw, err)
	}
	kind, err := model.ParseSwapKind(record.Kind)
	if err != nil {
		return model.QuoteRecord{}, err
	}

	req := model.SwapRequest{
		AmountRaw: amount,
		TokenIn:   record.TokenIn,
		TokenOut:  record.TokenOut,
		Kind:      kind,
	}

	res, err := vault.Swap(req, pool)
	if err != nil {
		return model.QuoteRecord{}, err
	}
	return vault.BuildRecord(req, pool, res, time.Now()), nil
}

func (r *batchRunner) flush() error {
	for _, sink := range r.sinks {
		if err := sink.PutQuoteBatch(r.quotes); err != nil {
			return fmt.Errorf("write quotes: %w", err)
		}
	}
	if err := r.errorSink.PutErrorBatch(r.failures); err != nil {
		return fmt.Errorf("write quote errors: %w", err)
	}
	r.quotes = r.quotes[:0]
	r.failures = r.failures[:0]
	return nil
}
