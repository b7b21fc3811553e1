// Package rates refreshes token exchange rates over RPC before quoting.
// Entirely optional: without an RPC URL the snapshot rates are used as-is,
// and the engine itself never touches the network.
package rates

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"swapVault/internal/model"
)

const rateProviderABIJSON = `[
  {"inputs": [], "name": "getRate", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

var (
	rateABI     abi.ABI
	rateABIOnce sync.Once
	rateABIErr  error
)

func getRateABI() (abi.ABI, error) {
	rateABIOnce.Do(func() {
		rateABI, rateABIErr = abi.JSON(strings.NewReader(rateProviderABIJSON))
	})
	return rateABI, rateABIErr
}

// Provider fetches WAD token rates via getRate() with an in-memory cache.
type Provider struct {
	client *Client
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[common.Address]*uint256.Int
}

func NewProvider(client *Client, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		client: client,
		logger: logger,
		cache:  make(map[common.Address]*uint256.Int),
	}
}

// TokenRate returns the live rate for a token, from cache or RPC.
func (p *Provider) TokenRate(ctx context.Context, token common.Address) (*uint256.Int, error) {
	p.mu.RLock()
	cached, ok := p.cache[token]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	rate, err := p.fetchRate(ctx, token)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[token] = rate
	p.mu.Unlock()
	return rate, nil
}

// RefreshPool overwrites the snapshot rates of a pool with live ones where
// the token exposes getRate(). Tokens without a rate provider keep their
// snapshot value. Must complete before the pool is handed to the engine.
func (p *Provider) RefreshPool(ctx context.Context, pool *model.PoolState) {
	for i, token := range pool.Tokens {
		rate, err := p.TokenRate(ctx, common.HexToAddress(token))
		if err != nil {
			p.logger.Debug("keeping snapshot rate",
				zap.String("pool_id", pool.PoolID),
				zap.String("token", token),
				zap.Error(err),
			)
			continue
		}
		pool.TokenRates[i] = rate
		p.logger.Debug("token rate refreshed",
			zap.String("pool_id", pool.PoolID),
			zap.String("token", token),
			zap.String("rate", rate.Dec()),
		)
	}
}

func (p *Provider) fetchRate(ctx context.Context, token common.Address) (*uint256.Int, error) {
	if p.client == nil {
		return nil, fmt.Errorf("rpc client is nil")
	}
	providerABI, err := getRateABI()
	if err != nil {
		return nil, err
	}

	data, err := providerABI.Pack("getRate")
	if err != nil {
		return nil, fmt.Errorf("pack getRate: %w", err)
	}

	msg := ethereum.CallMsg{To: &token, Data: data}
	resp, err := p.client.CallContract(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("call getRate: %w", err)
	}

	values, err := providerABI.Unpack("getRate", resp)
	if err != nil {
		return nil, fmt.Errorf("unpack getRate: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("getRate return size %d", len(values))
	}
	rateBig, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getRate unexpected type %T", values[0])
	}
	rate, overflow := uint256.FromBig(rateBig)
	if overflow || rate.IsZero() {
		return nil, fmt.Errorf("getRate value out of range: %s", rateBig)
	}
	return rate, nil
}
