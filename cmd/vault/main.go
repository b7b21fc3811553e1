package main

import (
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
	"go.uber.org/zap/zapcore"

	"swapVault/internal/config"
	"swapVault/internal/model"
	"swapVault/internal/rates"
	"swapVault/internal/snapshot"
	"swapVault/internal/vault"
)

func main() {
	root := &cobra.Command{
		Use:          "vault",
		Short:        "AMM swap quoting engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a single swap against a pool snapshot",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("pools", "", "pool snapshots JSONL path")
	quoteCmd.Flags().String("pool", "", "pool id to quote against")
	quoteCmd.Flags().String("token-in", "", "input token address")
	quoteCmd.Flags().String("token-out", "", "output token address")
	quoteCmd.Flags().String("amount", "", "fixed amount in raw token units")
	quoteCmd.Flags().String("kind", "given-in", "swap kind (given-in, given-out)")
	quoteCmd.Flags().String("rpc", "", "optional RPC URL for live token rates")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Quote a JSONL file of swap requests",
		RunE:  runBatch,
	}

	batchCmd.Flags().String("pools", "", "pool snapshots JSONL path")
	batchCmd.Flags().String("in", "", "input swap requests JSONL")
	batchCmd.Flags().String("out", "./data/quotes.jsonl", "output quotes JSONL")
	batchCmd.Flags().String("errors", "./data/quote_errors.jsonl", "failed quotes JSONL")
	batchCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for quote upserts")
	batchCmd.Flags().Int("batch-size", 500, "quotes per sink flush")
	batchCmd.Flags().String("rpc", "", "optional RPC URL for live token rates")
	batchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(batchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
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
	if cfg.PoolID == "" {
		return fmt.Errorf("pool id is required")
	}

	amount, err := uint256.FromDecimal(cfg.Amount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", cfg.Amount, err)
	}
	kind, err := model.ParseSwapKind(cfg.Kind)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolSet, err := snapshot.NewLoader(logger).Load(cfg.Pools)
	if err != nil {
		return err
	}
	pool, ok := poolSet[cfg.PoolID]
	if !ok {
		return fmt.Errorf("pool %s not found in %s", cfg.PoolID, cfg.Pools)
	}

	if cfg.RPCURL != "" {
		client, err := rates.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer client.Close()
		rates.NewProvider(client, logger).RefreshPool(ctx, pool)
	}

	req := model.SwapRequest{
		AmountRaw: amount,
		TokenIn:   cfg.TokenIn,
		TokenOut:  cfg.TokenOut,
		Kind:      kind,
	}

	res, err := vault.Swap(req, pool)
	if err != nil {
		return err
	}

	record := vault.BuildRecord(req, pool, res, time.Now())
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	fmt.Println(string(line))

	logger.Info("quote computed",
		zap.String("pool_id", pool.PoolID),
		zap.String("kind", record.Kind),
		zap.String("amount_raw", record.AmountRaw),
		zap.String("calculated_raw", record.CalculatedRaw),
	)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
