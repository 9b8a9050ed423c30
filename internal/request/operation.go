// Package request turns raw command-line arguments into typed operations.
//
// Every supported query is one concrete type implementing Operation. The
// Parse* functions are pure: they either return a fully validated value or a
// *ParseError, and they never touch the network. Arguments are checked in
// declaration order and the first failure is returned.
package request

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Operation is one of the closed set of queries below.
type Operation interface {
	// Name is the subcommand name, e.g. "get-tx".
	Name() string
	operation()
}

type GetTx struct{ Txid chainhash.Hash }

type GetTxAtBlockIndex struct {
	BlockHash chainhash.Hash
	Index     uint32
}

type GetTxStatus struct{ Txid chainhash.Hash }

type GetHeaderByHash struct{ BlockHash chainhash.Hash }

type GetBlockStatus struct{ BlockHash chainhash.Hash }

type GetBlockByHash struct{ BlockHash chainhash.Hash }

type GetMerkleProof struct{ Txid chainhash.Hash }

type GetMerkleBlock struct{ Txid chainhash.Hash }

type GetOutputStatus struct {
	Txid  chainhash.Hash
	Index uint64
}

// Broadcast carries an already deserialized transaction.
type Broadcast struct{ Tx *wire.MsgTx }

type GetHeight struct{}

type GetTipHash struct{}

type GetBlockHash struct{ Height uint32 }

type GetFeeEstimates struct{}

// GetScriptHashTransactions requests one page of confirmed history.
// LastSeen is nil for the first page.
type GetScriptHashTransactions struct {
	Script   []byte
	LastSeen *chainhash.Hash
}

// GetBlocks lists recent block summaries, from the tip when Height is nil.
type GetBlocks struct{ Height *uint32 }

func (GetTx) Name() string                     { return "get-tx" }
func (GetTxAtBlockIndex) Name() string         { return "get-tx-at-block-index" }
func (GetTxStatus) Name() string               { return "get-tx-status" }
func (GetHeaderByHash) Name() string           { return "get-header-by-hash" }
func (GetBlockStatus) Name() string            { return "get-block-status" }
func (GetBlockByHash) Name() string            { return "get-block-by-hash" }
func (GetMerkleProof) Name() string            { return "get-merkle-proof" }
func (GetMerkleBlock) Name() string            { return "get-merkle-block" }
func (GetOutputStatus) Name() string           { return "get-output-status" }
func (Broadcast) Name() string                 { return "broadcast" }
func (GetHeight) Name() string                 { return "get-height" }
func (GetTipHash) Name() string                { return "get-tip-hash" }
func (GetBlockHash) Name() string              { return "get-block-hash" }
func (GetFeeEstimates) Name() string           { return "get-fee-estimates" }
func (GetScriptHashTransactions) Name() string { return "get-script-hash-transactions" }
func (GetBlocks) Name() string                 { return "get-blocks" }

func (GetTx) operation()                     {}
func (GetTxAtBlockIndex) operation()         {}
func (GetTxStatus) operation()               {}
func (GetHeaderByHash) operation()           {}
func (GetBlockStatus) operation()            {}
func (GetBlockByHash) operation()            {}
func (GetMerkleProof) operation()            {}
func (GetMerkleBlock) operation()            {}
func (GetOutputStatus) operation()           {}
func (Broadcast) operation()                 {}
func (GetHeight) operation()                 {}
func (GetTipHash) operation()                {}
func (GetBlockHash) operation()              {}
func (GetFeeEstimates) operation()           {}
func (GetScriptHashTransactions) operation() {}
func (GetBlocks) operation()                 {}

func ParseGetTx(id string) (GetTx, error) {
	txid, err := ParseHash(ParamTxid, id)
	if err != nil {
		return GetTx{}, err
	}
	return GetTx{Txid: txid}, nil
}

func ParseGetTxAtBlockIndex(blockHash, index string) (GetTxAtBlockIndex, error) {
	hash, err := ParseHash(ParamBlock, blockHash)
	if err != nil {
		return GetTxAtBlockIndex{}, err
	}
	i, err := ParseUint32(ParamIndex, index)
	if err != nil {
		return GetTxAtBlockIndex{}, err
	}
	return GetTxAtBlockIndex{BlockHash: hash, Index: i}, nil
}

func ParseGetTxStatus(id string) (GetTxStatus, error) {
	txid, err := ParseHash(ParamTxid, id)
	if err != nil {
		return GetTxStatus{}, err
	}
	return GetTxStatus{Txid: txid}, nil
}

func ParseGetHeaderByHash(blockHash string) (GetHeaderByHash, error) {
	hash, err := ParseHash(ParamBlock, blockHash)
	if err != nil {
		return GetHeaderByHash{}, err
	}
	return GetHeaderByHash{BlockHash: hash}, nil
}

func ParseGetBlockStatus(blockHash string) (GetBlockStatus, error) {
	hash, err := ParseHash(ParamBlock, blockHash)
	if err != nil {
		return GetBlockStatus{}, err
	}
	return GetBlockStatus{BlockHash: hash}, nil
}

func ParseGetBlockByHash(blockHash string) (GetBlockByHash, error) {
	hash, err := ParseHash(ParamBlock, blockHash)
	if err != nil {
		return GetBlockByHash{}, err
	}
	return GetBlockByHash{BlockHash: hash}, nil
}

func ParseGetMerkleProof(id string) (GetMerkleProof, error) {
	txid, err := ParseHash(ParamTxid, id)
	if err != nil {
		return GetMerkleProof{}, err
	}
	return GetMerkleProof{Txid: txid}, nil
}

func ParseGetMerkleBlock(id string) (GetMerkleBlock, error) {
	txid, err := ParseHash(ParamTxid, id)
	if err != nil {
		return GetMerkleBlock{}, err
	}
	return GetMerkleBlock{Txid: txid}, nil
}

func ParseGetOutputStatus(id, index string) (GetOutputStatus, error) {
	txid, err := ParseHash(ParamTxid, id)
	if err != nil {
		return GetOutputStatus{}, err
	}
	vout, err := ParseUint64(ParamVout, index)
	if err != nil {
		return GetOutputStatus{}, err
	}
	return GetOutputStatus{Txid: txid, Index: vout}, nil
}

func ParseBroadcast(txHex string) (Broadcast, error) {
	tx, err := ParseRawTransaction(ParamTxHex, txHex)
	if err != nil {
		return Broadcast{}, err
	}
	return Broadcast{Tx: tx}, nil
}

func ParseGetBlockHash(height string) (GetBlockHash, error) {
	h, err := ParseUint32(ParamHeight, height)
	if err != nil {
		return GetBlockHash{}, err
	}
	return GetBlockHash{Height: h}, nil
}

// ParseGetScriptHashTransactions parses the script argument with enc (net is
// used by ScriptAddress only) and the optional pagination cursor.
func ParseGetScriptHashTransactions(script string, enc ScriptEncoding, net *chaincfg.Params, lastSeen Optional) (GetScriptHashTransactions, error) {
	b, err := ParseScript(ParamScript, script, enc, net)
	if err != nil {
		return GetScriptHashTransactions{}, err
	}
	cursor, err := ParseOptionalHash(ParamLastSeen, lastSeen)
	if err != nil {
		return GetScriptHashTransactions{}, err
	}
	return GetScriptHashTransactions{Script: b, LastSeen: cursor}, nil
}

func ParseGetBlocks(height Optional) (GetBlocks, error) {
	h, err := ParseOptionalUint32(ParamHeight, height)
	if err != nil {
		return GetBlocks{}, err
	}
	return GetBlocks{Height: h}, nil
}
