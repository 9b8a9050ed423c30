package dispatch

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/dando385/esplora-cli/internal/esplora"
)

// Service is the data service the dispatcher calls out to. *esplora.Client
// satisfies it.
//
// Lookups whose entity may not exist report it with an error matching
// esplora.ErrNotFound. A rejected broadcast is reported as an
// *esplora.StatusError.
type Service interface {
	GetTx(ctx context.Context, txid chainhash.Hash) (*wire.MsgTx, error)
	GetTxidAtBlockIndex(ctx context.Context, blockHash chainhash.Hash, index uint32) (chainhash.Hash, error)
	GetTxStatus(ctx context.Context, txid chainhash.Hash) (*esplora.TxStatus, error)
	GetHeaderByHash(ctx context.Context, blockHash chainhash.Hash) (*wire.BlockHeader, error)
	GetBlockStatus(ctx context.Context, blockHash chainhash.Hash) (*esplora.BlockStatus, error)
	GetBlockByHash(ctx context.Context, blockHash chainhash.Hash) (*wire.MsgBlock, error)
	GetMerkleProof(ctx context.Context, txid chainhash.Hash) (*esplora.MerkleProof, error)
	GetMerkleBlock(ctx context.Context, txid chainhash.Hash) (*wire.MsgMerkleBlock, error)
	GetOutputStatus(ctx context.Context, txid chainhash.Hash, index uint64) (*esplora.OutputStatus, error)
	Broadcast(ctx context.Context, tx *wire.MsgTx) error
	GetHeight(ctx context.Context) (uint32, error)
	GetTipHash(ctx context.Context) (chainhash.Hash, error)
	GetBlockHash(ctx context.Context, height uint32) (chainhash.Hash, error)
	GetFeeEstimates(ctx context.Context) (esplora.FeeEstimates, error)
	ScriptHashTxs(ctx context.Context, script []byte, lastSeen *chainhash.Hash) ([]esplora.Tx, error)
	GetBlocks(ctx context.Context, height *uint32) ([]esplora.BlockSummary, error)
}

var _ Service = (*esplora.Client)(nil)
