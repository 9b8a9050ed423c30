package provider

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/dando385/esplora-cli/internal/config"
	"github.com/dando385/esplora-cli/internal/logger"
)

// Tip is a provider's view of the chain tip.
type Tip struct {
	Height uint32
	Hash   chainhash.Hash
}

// TipFetcher is the part of the data service the status check needs.
type TipFetcher interface {
	GetHeight(ctx context.Context) (uint32, error)
	GetTipHash(ctx context.Context) (chainhash.Hash, error)
}

// FetchTip reads height then hash. The two reads are not atomic, so a block
// found in between can pair a height with the next block's hash.
func FetchTip(ctx context.Context, svc TipFetcher) (Tip, error) {
	height, err := svc.GetHeight(ctx)
	if err != nil {
		return Tip{}, fmt.Errorf("tip height: %w", err)
	}
	hash, err := svc.GetTipHash(ctx)
	if err != nil {
		return Tip{}, fmt.Errorf("tip hash: %w", err)
	}
	return Tip{Height: height, Hash: hash}, nil
}

// CheckAll fetches the tip from every configured endpoint concurrently.
func CheckAll(ctx context.Context, cfg *config.Config, log logger.AppLogger) []Result[Tip] {
	return ExecuteAll(ctx, cfg.AllEndpoints(), func(ctx context.Context, p config.Provider) (Tip, error) {
		return FetchTip(ctx, NewClient(cfg, p, log))
	})
}

// MaxHeight returns the highest tip among successful results and whether
// any result succeeded.
func MaxHeight(results []Result[Tip]) (uint32, bool) {
	var best uint32
	var ok bool
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !ok || r.Value.Height > best {
			best = r.Value.Height
		}
		ok = true
	}
	return best, ok
}
