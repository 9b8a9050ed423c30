// Package mocks holds testify mocks for the dispatch package interfaces.
package mocks

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/mock"

	"github.com/dando385/esplora-cli/internal/esplora"
)

// Service is a mock of dispatch.Service.
type Service struct {
	mock.Mock
}

// NewService creates a Service mock and registers its expectation check on t.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := &Service{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Service) GetTx(ctx context.Context, txid chainhash.Hash) (*wire.MsgTx, error) {
	ret := m.Called(ctx, txid)
	tx, _ := ret.Get(0).(*wire.MsgTx)
	return tx, ret.Error(1)
}

func (m *Service) GetTxidAtBlockIndex(ctx context.Context, blockHash chainhash.Hash, index uint32) (chainhash.Hash, error) {
	ret := m.Called(ctx, blockHash, index)
	h, _ := ret.Get(0).(chainhash.Hash)
	return h, ret.Error(1)
}

func (m *Service) GetTxStatus(ctx context.Context, txid chainhash.Hash) (*esplora.TxStatus, error) {
	ret := m.Called(ctx, txid)
	st, _ := ret.Get(0).(*esplora.TxStatus)
	return st, ret.Error(1)
}

func (m *Service) GetHeaderByHash(ctx context.Context, blockHash chainhash.Hash) (*wire.BlockHeader, error) {
	ret := m.Called(ctx, blockHash)
	h, _ := ret.Get(0).(*wire.BlockHeader)
	return h, ret.Error(1)
}

func (m *Service) GetBlockStatus(ctx context.Context, blockHash chainhash.Hash) (*esplora.BlockStatus, error) {
	ret := m.Called(ctx, blockHash)
	st, _ := ret.Get(0).(*esplora.BlockStatus)
	return st, ret.Error(1)
}

func (m *Service) GetBlockByHash(ctx context.Context, blockHash chainhash.Hash) (*wire.MsgBlock, error) {
	ret := m.Called(ctx, blockHash)
	b, _ := ret.Get(0).(*wire.MsgBlock)
	return b, ret.Error(1)
}

func (m *Service) GetMerkleProof(ctx context.Context, txid chainhash.Hash) (*esplora.MerkleProof, error) {
	ret := m.Called(ctx, txid)
	p, _ := ret.Get(0).(*esplora.MerkleProof)
	return p, ret.Error(1)
}

func (m *Service) GetMerkleBlock(ctx context.Context, txid chainhash.Hash) (*wire.MsgMerkleBlock, error) {
	ret := m.Called(ctx, txid)
	mb, _ := ret.Get(0).(*wire.MsgMerkleBlock)
	return mb, ret.Error(1)
}

func (m *Service) GetOutputStatus(ctx context.Context, txid chainhash.Hash, index uint64) (*esplora.OutputStatus, error) {
	ret := m.Called(ctx, txid, index)
	st, _ := ret.Get(0).(*esplora.OutputStatus)
	return st, ret.Error(1)
}

func (m *Service) Broadcast(ctx context.Context, tx *wire.MsgTx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *Service) GetHeight(ctx context.Context) (uint32, error) {
	ret := m.Called(ctx)
	h, _ := ret.Get(0).(uint32)
	return h, ret.Error(1)
}

func (m *Service) GetTipHash(ctx context.Context) (chainhash.Hash, error) {
	ret := m.Called(ctx)
	h, _ := ret.Get(0).(chainhash.Hash)
	return h, ret.Error(1)
}

func (m *Service) GetBlockHash(ctx context.Context, height uint32) (chainhash.Hash, error) {
	ret := m.Called(ctx, height)
	h, _ := ret.Get(0).(chainhash.Hash)
	return h, ret.Error(1)
}

func (m *Service) GetFeeEstimates(ctx context.Context) (esplora.FeeEstimates, error) {
	ret := m.Called(ctx)
	fees, _ := ret.Get(0).(esplora.FeeEstimates)
	return fees, ret.Error(1)
}

func (m *Service) ScriptHashTxs(ctx context.Context, script []byte, lastSeen *chainhash.Hash) ([]esplora.Tx, error) {
	ret := m.Called(ctx, script, lastSeen)
	txs, _ := ret.Get(0).([]esplora.Tx)
	return txs, ret.Error(1)
}

func (m *Service) GetBlocks(ctx context.Context, height *uint32) ([]esplora.BlockSummary, error) {
	ret := m.Called(ctx, height)
	blocks, _ := ret.Get(0).([]esplora.BlockSummary)
	return blocks, ret.Error(1)
}
