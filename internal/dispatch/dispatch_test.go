package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dando385/esplora-cli/internal/dispatch"
	"github.com/dando385/esplora-cli/internal/dispatch/mocks"
	"github.com/dando385/esplora-cli/internal/esplora"
	"github.com/dando385/esplora-cli/internal/request"
)

const (
	txidHex  = "b6f6991d03df0e2e04dafffcd6bc418aac66049e2cd74b80f14ac86db1e3f0da"
	blockHex = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
)

func hash(t *testing.T, s string) chainhash.Hash {
	t.Helper()
	h, err := chainhash.NewHashFromStr(s)
	require.NoError(t, err)
	return *h
}

func sampleTx() *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{1}, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(5000, []byte{0x51}))
	return tx
}

func u32(v uint32) *uint32 { return &v }

func TestDispatchEveryOperationCallsOnce(t *testing.T) {
	txid := hash(t, txidHex)
	block := hash(t, blockHex)
	tx := sampleTx()
	script := []byte{0x76, 0xa9}

	tests := []struct {
		name   string
		op     request.Operation
		method string
		args   []any
		ret    []any
		want   any
	}{
		{"get-tx", request.GetTx{Txid: txid}, "GetTx", []any{txid}, []any{tx, nil}, tx},
		{"get-tx-at-block-index", request.GetTxAtBlockIndex{BlockHash: block, Index: 7}, "GetTxidAtBlockIndex", []any{block, uint32(7)}, []any{txid, nil}, txid},
		{"get-tx-status", request.GetTxStatus{Txid: txid}, "GetTxStatus", []any{txid}, []any{&esplora.TxStatus{}, nil}, &esplora.TxStatus{}},
		{"get-header-by-hash", request.GetHeaderByHash{BlockHash: block}, "GetHeaderByHash", []any{block}, []any{&wire.BlockHeader{Version: 1}, nil}, &wire.BlockHeader{Version: 1}},
		{"get-block-status", request.GetBlockStatus{BlockHash: block}, "GetBlockStatus", []any{block}, []any{&esplora.BlockStatus{InBestChain: true}, nil}, &esplora.BlockStatus{InBestChain: true}},
		{"get-block-by-hash", request.GetBlockByHash{BlockHash: block}, "GetBlockByHash", []any{block}, []any{&wire.MsgBlock{}, nil}, &wire.MsgBlock{}},
		{"get-merkle-proof", request.GetMerkleProof{Txid: txid}, "GetMerkleProof", []any{txid}, []any{&esplora.MerkleProof{Pos: 3}, nil}, &esplora.MerkleProof{Pos: 3}},
		{"get-merkle-block", request.GetMerkleBlock{Txid: txid}, "GetMerkleBlock", []any{txid}, []any{&wire.MsgMerkleBlock{Transactions: 2}, nil}, &wire.MsgMerkleBlock{Transactions: 2}},
		{"get-output-status", request.GetOutputStatus{Txid: txid, Index: 1}, "GetOutputStatus", []any{txid, uint64(1)}, []any{&esplora.OutputStatus{}, nil}, &esplora.OutputStatus{}},
		{"broadcast", request.Broadcast{Tx: tx}, "Broadcast", []any{tx}, []any{nil}, dispatch.BroadcastReceipt{Txid: tx.TxHash()}},
		{"get-height", request.GetHeight{}, "GetHeight", nil, []any{uint32(840000), nil}, uint32(840000)},
		{"get-tip-hash", request.GetTipHash{}, "GetTipHash", nil, []any{block, nil}, block},
		{"get-block-hash", request.GetBlockHash{Height: 0}, "GetBlockHash", []any{uint32(0)}, []any{block, nil}, block},
		{"get-fee-estimates", request.GetFeeEstimates{}, "GetFeeEstimates", nil, []any{esplora.FeeEstimates{1: 20.5}, nil}, esplora.FeeEstimates{1: 20.5}},
		{"get-script-hash-transactions", request.GetScriptHashTransactions{Script: script}, "ScriptHashTxs", []any{script, (*chainhash.Hash)(nil)}, []any{[]esplora.Tx{{Txid: txidHex}}, nil}, []esplora.Tx{{Txid: txidHex}}},
		{"get-blocks", request.GetBlocks{}, "GetBlocks", []any{(*uint32)(nil)}, []any{[]esplora.BlockSummary{{Height: 1}}, nil}, []esplora.BlockSummary{{Height: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewService(t)
			args := append([]any{mock.Anything}, tt.args...)
			svc.On(tt.method, args...).Return(tt.ret...).Once()

			res, err := dispatch.New(svc, nil).Dispatch(context.Background(), tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.name, res.Op)
			assert.Equal(t, tt.want, res.Value)
			svc.AssertNumberOfCalls(t, tt.method, 1)
		})
	}
}

func TestDispatchOutputStatusNotFound(t *testing.T) {
	op, err := request.ParseGetOutputStatus(txidHex, "4")
	require.NoError(t, err)

	svc := mocks.NewService(t)
	svc.On("GetOutputStatus", mock.Anything, op.Txid, uint64(4)).
		Return(nil, fmt.Errorf("/tx/%s/outspend/4: %w", txidHex, esplora.ErrNotFound)).Once()

	_, err = dispatch.New(svc, nil).Dispatch(context.Background(), op)
	require.Error(t, err)
	assert.True(t, dispatch.IsKind(err, dispatch.KindNotFound))
	assert.False(t, dispatch.IsKind(err, dispatch.KindTransport))
	assert.ErrorIs(t, err, esplora.ErrNotFound)

	_, isParse := request.IsParseError(err)
	assert.False(t, isParse)
	svc.AssertNumberOfCalls(t, "GetOutputStatus", 1)
}

func TestDispatchNotFoundOnlyForExistenceLookups(t *testing.T) {
	notFound := fmt.Errorf("x: %w", esplora.ErrNotFound)
	txid := hash(t, txidHex)

	svc := mocks.NewService(t)
	svc.On("GetTxStatus", mock.Anything, txid).Return(nil, notFound).Once()
	svc.On("GetTx", mock.Anything, txid).Return(nil, notFound).Once()

	d := dispatch.New(svc, nil)

	_, err := d.Dispatch(context.Background(), request.GetTxStatus{Txid: txid})
	assert.True(t, dispatch.IsKind(err, dispatch.KindTransport))

	_, err = d.Dispatch(context.Background(), request.GetTx{Txid: txid})
	assert.True(t, dispatch.IsKind(err, dispatch.KindNotFound))
}

func TestDispatchTransportErrorIsVerbatim(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	svc := mocks.NewService(t)
	svc.On("GetHeight", mock.Anything).Return(uint32(0), cause).Once()

	_, err := dispatch.New(svc, nil).Dispatch(context.Background(), request.GetHeight{})
	require.Error(t, err)

	var derr *dispatch.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dispatch.KindTransport, derr.Kind)
	assert.Equal(t, "get-height", derr.Op)
	assert.Same(t, cause, derr.Err)
	assert.Equal(t, "get-height: transport: dial tcp: connection refused", err.Error())
}

func TestDispatchBroadcast(t *testing.T) {
	tx := sampleTx()

	t.Run("rejected", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.On("Broadcast", mock.Anything, tx).Return(&esplora.StatusError{
			Method: http.MethodPost,
			Path:   "/tx",
			Code:   http.StatusBadRequest,
			Body:   "sendrawtransaction RPC error: bad-txns-inputs-missingorspent",
		}).Once()

		_, err := dispatch.New(svc, nil).Dispatch(context.Background(), request.Broadcast{Tx: tx})
		assert.True(t, dispatch.IsKind(err, dispatch.KindBroadcastRejected))
		assert.Contains(t, err.Error(), "bad-txns-inputs-missingorspent")
		svc.AssertNumberOfCalls(t, "Broadcast", 1)
	})

	for _, code := range []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			svc := mocks.NewService(t)
			svc.On("Broadcast", mock.Anything, tx).Return(&esplora.StatusError{
				Method: http.MethodPost,
				Path:   "/tx",
				Code:   code,
				Body:   "upstream unavailable",
			}).Once()

			_, err := dispatch.New(svc, nil).Dispatch(context.Background(), request.Broadcast{Tx: tx})
			assert.True(t, dispatch.IsKind(err, dispatch.KindTransport))
			assert.False(t, dispatch.IsKind(err, dispatch.KindBroadcastRejected))
			svc.AssertNumberOfCalls(t, "Broadcast", 1)
		})
	}

	t.Run("network failure", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.On("Broadcast", mock.Anything, tx).Return(errors.New("POST /tx: i/o timeout")).Once()

		_, err := dispatch.New(svc, nil).Dispatch(context.Background(), request.Broadcast{Tx: tx})
		assert.True(t, dispatch.IsKind(err, dispatch.KindTransport))
		svc.AssertNumberOfCalls(t, "Broadcast", 1)
	})
}

func TestBroadcastInvalidTransactionIsParseError(t *testing.T) {
	// valid hex, not a transaction; no operation value exists to dispatch
	_, err := request.ParseBroadcast("deadbeef")
	pe, ok := request.IsParseError(err)
	require.True(t, ok)
	assert.ErrorIs(t, pe, request.ErrInvalidTransaction)
}

func TestDispatchBlocksAbsentVersusPresentHeight(t *testing.T) {
	absent, err := request.ParseGetBlocks(request.Absent)
	require.NoError(t, err)
	present, err := request.ParseGetBlocks(request.Some("800000"))
	require.NoError(t, err)

	svc := mocks.NewService(t)
	svc.On("GetBlocks", mock.Anything, (*uint32)(nil)).Return([]esplora.BlockSummary{}, nil).Once()
	svc.On("GetBlocks", mock.Anything, u32(800000)).Return([]esplora.BlockSummary{}, nil).Once()

	d := dispatch.New(svc, nil)
	_, err = d.Dispatch(context.Background(), absent)
	require.NoError(t, err)
	_, err = d.Dispatch(context.Background(), present)
	require.NoError(t, err)

	require.Len(t, svc.Calls, 2)
	assert.Nil(t, svc.Calls[0].Arguments.Get(1))
	assert.Equal(t, uint32(800000), *svc.Calls[1].Arguments.Get(1).(*uint32))
}

func TestDispatchScriptHashPagesAreIndependent(t *testing.T) {
	script := "76a91429d6a3540acfa0a950bef2bfdc75cd51c24390fd88ac"
	lastSeen := hash(t, txidHex)

	first, err := request.ParseGetScriptHashTransactions(script, request.ScriptHex, nil, request.Absent)
	require.NoError(t, err)
	again, err := request.ParseGetScriptHashTransactions(script, request.ScriptHex, nil, request.Absent)
	require.NoError(t, err)
	next, err := request.ParseGetScriptHashTransactions(script, request.ScriptHex, nil, request.Some(txidHex))
	require.NoError(t, err)

	page := []esplora.Tx{{Txid: txidHex}}
	svc := mocks.NewService(t)
	svc.On("ScriptHashTxs", mock.Anything, first.Script, (*chainhash.Hash)(nil)).Return(page, nil).Twice()
	svc.On("ScriptHashTxs", mock.Anything, first.Script, &lastSeen).Return([]esplora.Tx{}, nil).Once()

	d := dispatch.New(svc, nil)
	for _, op := range []request.Operation{first, again, next} {
		_, err := d.Dispatch(context.Background(), op)
		require.NoError(t, err)
	}
	svc.AssertNumberOfCalls(t, "ScriptHashTxs", 3)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", dispatch.KindTransport.String())
	assert.Equal(t, "not found", dispatch.KindNotFound.String())
	assert.Equal(t, "broadcast rejected", dispatch.KindBroadcastRejected.String())
	assert.Equal(t, "kind(9)", dispatch.Kind(9).String())
}
