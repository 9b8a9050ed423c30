// Package dispatch maps a parsed operation onto exactly one data service call.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/dando385/esplora-cli/internal/esplora"
	"github.com/dando385/esplora-cli/internal/logger"
	"github.com/dando385/esplora-cli/internal/request"
)

// Result is a successful dispatch. Value is whatever the service returned
// and is handed to the renderer untouched.
type Result struct {
	Op      string
	Value   any
	Latency time.Duration
}

// BroadcastReceipt is the result of an accepted broadcast.
type BroadcastReceipt struct {
	Txid chainhash.Hash
}

type Dispatcher struct {
	svc Service
	log logger.AppLogger
}

func New(svc Service, log logger.AppLogger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{svc: svc, log: log}
}

// Dispatch issues the single service call for op. It never retries; the
// service owns any retry policy for reads, and broadcasts are never repeated.
func (d *Dispatcher) Dispatch(ctx context.Context, op request.Operation) (*Result, error) {
	name := op.Name()
	d.log.Debug("dispatching", "op", name)

	start := time.Now()
	value, err := d.call(ctx, op)
	latency := time.Since(start)

	if err != nil {
		derr := &Error{Op: name, Kind: classify(op, err), Err: err}
		d.log.Warn("operation failed", "op", name, "kind", derr.Kind.String(), "latency", latency, "error", err)
		return nil, derr
	}

	d.log.Debug("operation succeeded", "op", name, "latency", latency)
	return &Result{Op: name, Value: value, Latency: latency}, nil
}

func (d *Dispatcher) call(ctx context.Context, op request.Operation) (any, error) {
	switch op := op.(type) {
	case request.GetTx:
		return d.svc.GetTx(ctx, op.Txid)
	case request.GetTxAtBlockIndex:
		return d.svc.GetTxidAtBlockIndex(ctx, op.BlockHash, op.Index)
	case request.GetTxStatus:
		return d.svc.GetTxStatus(ctx, op.Txid)
	case request.GetHeaderByHash:
		return d.svc.GetHeaderByHash(ctx, op.BlockHash)
	case request.GetBlockStatus:
		return d.svc.GetBlockStatus(ctx, op.BlockHash)
	case request.GetBlockByHash:
		return d.svc.GetBlockByHash(ctx, op.BlockHash)
	case request.GetMerkleProof:
		return d.svc.GetMerkleProof(ctx, op.Txid)
	case request.GetMerkleBlock:
		return d.svc.GetMerkleBlock(ctx, op.Txid)
	case request.GetOutputStatus:
		return d.svc.GetOutputStatus(ctx, op.Txid, op.Index)
	case request.Broadcast:
		if err := d.svc.Broadcast(ctx, op.Tx); err != nil {
			return nil, err
		}
		return BroadcastReceipt{Txid: op.Tx.TxHash()}, nil
	case request.GetHeight:
		return d.svc.GetHeight(ctx)
	case request.GetTipHash:
		return d.svc.GetTipHash(ctx)
	case request.GetBlockHash:
		return d.svc.GetBlockHash(ctx, op.Height)
	case request.GetFeeEstimates:
		return d.svc.GetFeeEstimates(ctx)
	case request.GetScriptHashTransactions:
		return d.svc.ScriptHashTxs(ctx, op.Script, op.LastSeen)
	case request.GetBlocks:
		return d.svc.GetBlocks(ctx, op.Height)
	default:
		return nil, fmt.Errorf("unsupported operation %T", op)
	}
}

// classify decides the reported kind. Not-found is only meaningful for
// lookups whose entity is expected to exist; anywhere else it is an
// unexpected answer and stays a transport failure.
func classify(op request.Operation, err error) Kind {
	switch op.(type) {
	case request.GetTx, request.GetTxAtBlockIndex, request.GetMerkleProof, request.GetOutputStatus:
		if errors.Is(err, esplora.ErrNotFound) {
			return KindNotFound
		}
	case request.Broadcast:
		// the node answers a rejected transaction with 4xx; 5xx means it
		// was never seen
		if se, ok := esplora.IsStatus(err); ok && se.Code >= 400 && se.Code < 500 {
			return KindBroadcastRejected
		}
	}
	return KindTransport
}
