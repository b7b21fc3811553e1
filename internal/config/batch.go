package config

import "github.com/spf13/pflag"

// BatchConfig holds configuration for the batch command.
type BatchConfig struct {
	Pools     string
	In        string
	Out       string
	Errors    string
	PGDSN     string
	BatchSize int
	RPCURL    string
	LogLevel  string
}

// LoadBatch merges config file, environment variables, and flags into BatchConfig.
func LoadBatch(cfgFile string, flags *pflag.FlagSet) (BatchConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return BatchConfig{}, err
	}

	v.SetDefault("out", "./data/quotes.jsonl")
	v.SetDefault("errors", "./data/quote_errors.jsonl")
	v.SetDefault("batch-size", 500)
	v.SetDefault("log-level", "info")

	cfg := BatchConfig{
		Pools:     v.GetString("pools"),
		In:        v.GetString("in"),
		Out:       v.GetString("out"),
		Errors:    v.GetString("errors"),
		PGDSN:     v.GetString("pg-dsn"),
		BatchSize: v.GetInt("batch-size"),
		RPCURL:    v.GetString("rpc"),
		LogLevel:  v.GetString("log-level"),
	}

	return cfg, nil
}
