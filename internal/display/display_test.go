package display

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dando385/esplora-cli/internal/dispatch"
	"github.com/dando385/esplora-cli/internal/esplora"
)

const (
	sampleTxHex   = "010000000101820e2169131a77976cf204ce28685e49a6d2278861c33b6241ba3ae3e0a49f020000008b48304502210098a2851420e4daba656fd79cb60cb565bd7218b6b117fda9a512ffbf17f8f178022005c61f31fef3ce3f906eb672e05b65f506045a65a80431b5eaf28e0999266993014104f0f86fa57c424deb160d0fc7693f13fce5ed6542c29483c51953e4fa87ebf247487ed79b1ddcf3de66b182217fcaf3fcef3fcb44737eb93b1fcb8927ebecea26ffffffff02805cd705000000001976a91429d6a3540acfa0a950bef2bfdc75cd51c24390fd88ac80841e00000000001976a91417b5038a413f5c5ee288caa64cfab35a0c01914e88ac00000000"
	sampleTxid    = "b6f6991d03df0e2e04dafffcd6bc418aac66049e2cd74b80f14ac86db1e3f0da"
	genesisHash   = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	genesisHeader = "0100000000000000000000000000000000000000000000000000000000000000000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a29ab5f49ffff001d1dac2b7c"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	now = func() time.Time { return time.Date(2009, 1, 4, 18, 15, 5, 0, time.UTC) }
	os.Exit(m.Run())
}

func sampleTx(t *testing.T) *wire.MsgTx {
	t.Helper()
	raw, err := hex.DecodeString(sampleTxHex)
	require.NoError(t, err)
	tx := &wire.MsgTx{}
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	return tx
}

func genesis(t *testing.T) *wire.BlockHeader {
	t.Helper()
	raw, err := hex.DecodeString(genesisHeader)
	require.NoError(t, err)
	h := &wire.BlockHeader{}
	require.NoError(t, h.Deserialize(bytes.NewReader(raw)))
	return h
}

func render(t *testing.T, f Format, res *dispatch.Result) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, Options{Format: f, Provider: "blockstream.info"}))
	return buf.String()
}

func u32(v uint32) *uint32 { return &v }
func str(v string) *string { return &v }

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTerminal, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestRenderTxJSON(t *testing.T) {
	out := render(t, FormatJSON, &dispatch.Result{Op: "get-tx", Value: sampleTx(t), Latency: 12 * time.Millisecond})

	var got struct {
		Operation string `json:"operation"`
		Provider  string `json:"provider"`
		LatencyMs int64  `json:"latency_ms"`
		Result    TxView `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "get-tx", got.Operation)
	assert.Equal(t, "blockstream.info", got.Provider)
	assert.Equal(t, int64(12), got.LatencyMs)

	tx := got.Result
	assert.Equal(t, sampleTxid, tx.Txid)
	assert.Equal(t, sampleTxid, tx.Wtxid)
	assert.Equal(t, int32(1), tx.Version)
	assert.Equal(t, 258, tx.Size)
	assert.Equal(t, 258*4, tx.Weight)
	assert.Equal(t, 258, tx.VSize)

	require.Len(t, tx.Inputs, 1)
	assert.Equal(t, uint32(2), tx.Inputs[0].Vout)
	assert.Equal(t, uint32(0xffffffff), tx.Inputs[0].Sequence)
	assert.False(t, tx.Inputs[0].Coinbase)
	assert.NotEmpty(t, tx.Inputs[0].ScriptSigAsm)

	require.Len(t, tx.Outputs, 2)
	assert.Equal(t, int64(98000000), tx.Outputs[0].Value)
	assert.Equal(t, int64(2000000), tx.Outputs[1].Value)
	assert.Equal(t, "pubkeyhash", tx.Outputs[0].Type)
	assert.Equal(t, "14pDqB95GWLWCjFxM4t96H2kXH7QMKSsgG", tx.Outputs[0].Address)
	assert.Equal(t, "76a91429d6a3540acfa0a950bef2bfdc75cd51c24390fd88ac", tx.Outputs[0].ScriptPubKey)
	assert.True(t, strings.HasPrefix(tx.Outputs[0].Asm, "OP_DUP OP_HASH160"))
}

func TestRenderTxAddressFollowsChain(t *testing.T) {
	v := NewTxView(sampleTx(t), &chaincfg.TestNet3Params)
	assert.Equal(t, "mjLB8EE45Xmkyqja4drWvCF5PGi7CJAf4A", v.Outputs[0].Address)
}

func TestRenderTxTerminal(t *testing.T) {
	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-tx", Value: sampleTx(t), Latency: 40 * time.Millisecond})

	assert.Contains(t, out, "Transaction "+sampleTxid)
	assert.Contains(t, out, "Inputs (1)")
	assert.Contains(t, out, "Outputs (2)")
	assert.Contains(t, out, "14pDqB95GWLWCjFxM4t96H2kXH7QMKSsgG")
	assert.Contains(t, out, "Sequence:  0xffffffff")
	assert.Contains(t, out, "Provider: blockstream.info (40ms)")
}

func TestRenderHeader(t *testing.T) {
	h := genesis(t)

	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-header-by-hash", Value: h})
	assert.Contains(t, out, "Block Header "+genesisHash)
	assert.Contains(t, out, "2009-01-03 18:15:05 UTC (1d ago)")
	assert.Contains(t, out, "1d00ffff")
	assert.Contains(t, out, "2083236893")

	v := View(h, nil).(HeaderView)
	assert.Equal(t, genesisHash, v.Hash)
	assert.Equal(t, "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b", v.MerkleRoot)
	assert.Equal(t, uint64(1231006505), v.Timestamp)
	assert.Equal(t, strings.Repeat("0", 64), v.PrevBlock)
}

func TestRenderMerkleBlockJSON(t *testing.T) {
	leaf := chainhash.Hash{0xaa}
	mb := &wire.MsgMerkleBlock{
		Header:       *genesis(t),
		Transactions: 1,
		Hashes:       []*chainhash.Hash{&leaf},
		Flags:        []byte{0x01},
	}

	out := render(t, FormatJSON, &dispatch.Result{Op: "get-merkle-block", Value: mb})
	var got struct {
		Result MerkleBlockView `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, genesisHash, got.Result.Header.Hash)
	assert.Equal(t, uint32(1), got.Result.Transactions)
	assert.Equal(t, []string{leaf.String()}, got.Result.Hashes)
	assert.Equal(t, "01", got.Result.Flags)
}

func TestRenderBlock(t *testing.T) {
	block := &wire.MsgBlock{Header: *genesis(t), Transactions: []*wire.MsgTx{sampleTx(t)}}

	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-block-by-hash", Value: block})
	assert.Contains(t, out, "Block "+genesisHash)
	assert.Contains(t, out, "Transactions: 1")
	assert.Contains(t, out, sampleTxid)

	v := NewBlockView(block, &chaincfg.MainNetParams)
	assert.Equal(t, 1, v.TxCount)
	assert.Equal(t, 80+1+258, v.Size)
}

func TestRenderBareValues(t *testing.T) {
	hash, err := chainhash.NewHashFromStr(genesisHash)
	require.NoError(t, err)

	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-tip-hash", Value: *hash})
	assert.Contains(t, out, "Tip Hash: "+genesisHash)

	out = render(t, FormatTerminal, &dispatch.Result{Op: "get-block-hash", Value: *hash})
	assert.Contains(t, out, "Block Hash: "+genesisHash)

	out = render(t, FormatTerminal, &dispatch.Result{Op: "get-height", Value: uint32(840000)})
	assert.Contains(t, out, "Tip Height: 840,000")

	out = render(t, FormatJSON, &dispatch.Result{Op: "get-tip-hash", Value: *hash})
	assert.Contains(t, out, `"result": "`+genesisHash+`"`)
}

func TestRenderStatuses(t *testing.T) {
	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-tx-status", Value: &esplora.TxStatus{}})
	assert.Contains(t, out, "Confirmed: ⚠ unconfirmed")
	assert.NotContains(t, out, "Block Height")

	out = render(t, FormatTerminal, &dispatch.Result{Op: "get-tx-status", Value: &esplora.TxStatus{
		Confirmed:   true,
		BlockHeight: u32(0),
		BlockHash:   str(genesisHash),
	}})
	assert.Contains(t, out, "Confirmed: ✓ yes")
	assert.Contains(t, out, "Block Hash:   "+genesisHash)

	out = render(t, FormatTerminal, &dispatch.Result{Op: "get-block-status", Value: &esplora.BlockStatus{
		InBestChain: true,
		Height:      u32(1),
		NextBest:    str(genesisHash),
	}})
	assert.Contains(t, out, "In Best Chain: ✓ yes")
	assert.Contains(t, out, "Next Best: "+genesisHash)

	vin := uint64(3)
	out = render(t, FormatTerminal, &dispatch.Result{Op: "get-output-status", Value: &esplora.OutputStatus{
		Spent:  true,
		Txid:   str(sampleTxid),
		Vin:    &vin,
		Status: &esplora.TxStatus{Confirmed: true},
	}})
	assert.Contains(t, out, "Output: spent")
	assert.Contains(t, out, "Spending Tx: "+sampleTxid)
	assert.Contains(t, out, "Input Index:  3")
}

func TestRenderFeesSorted(t *testing.T) {
	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-fee-estimates", Value: esplora.FeeEstimates{
		144: 1.027,
		6:   12.5,
		1:   30.25,
	}})

	i1 := strings.Index(out, "30.250")
	i6 := strings.Index(out, "12.500")
	i144 := strings.Index(out, "1.027")
	require.True(t, i1 > 0 && i6 > 0 && i144 > 0, out)
	assert.Less(t, i1, i6)
	assert.Less(t, i6, i144)
}

func TestRenderHistoryShowsCursor(t *testing.T) {
	last := strings.Repeat("ab", 32)
	txs := []esplora.Tx{
		{Txid: sampleTxid, Status: esplora.TxStatus{Confirmed: true, BlockHeight: u32(170)}, Fee: 1000},
		{
			Txid: last,
			Vin:  []esplora.Vin{{IsCoinbase: true, ScriptSig: "04ffff001d"}},
			Vout: []esplora.Vout{{ScriptPubKeyType: "p2pk", ScriptPubKey: "41aa", Value: 5000000000}},
		},
	}

	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-script-hash-transactions", Value: txs})
	assert.Contains(t, out, "Transactions (2)")
	assert.Contains(t, out, "@ 170")
	assert.Contains(t, out, "unconfirmed")
	assert.Contains(t, out, "coinbase")
	assert.Contains(t, out, "Next Page Cursor: "+last)

	out = render(t, FormatTerminal, &dispatch.Result{Op: "get-script-hash-transactions", Value: []esplora.Tx{}})
	assert.Contains(t, out, "no transactions")
	assert.NotContains(t, out, "Next Page Cursor")
}

func TestRenderBlocks(t *testing.T) {
	blocks := []esplora.BlockSummary{{
		ID:                genesisHash,
		Height:            840000,
		Timestamp:         1713571767,
		TxCount:           3050,
		Size:              2325617,
		MerkleRoot:        "merkle",
		PreviousBlockHash: str("parent"),
	}}

	out := render(t, FormatTerminal, &dispatch.Result{Op: "get-blocks", Value: blocks})
	assert.Contains(t, out, "840,000")
	assert.Contains(t, out, genesisHash)
	assert.Contains(t, out, "2,325,617")
	assert.Contains(t, out, "merkle merkle")
	assert.Contains(t, out, "parent parent")
}

func TestRenderBroadcastReceipt(t *testing.T) {
	tx := sampleTx(t)
	res := &dispatch.Result{Op: "broadcast", Value: dispatch.BroadcastReceipt{Txid: tx.TxHash()}}

	assert.Contains(t, render(t, FormatTerminal, res), "Broadcast accepted")

	var got struct {
		Result ReceiptView `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(render(t, FormatJSON, res)), &got))
	assert.Equal(t, ReceiptView{Txid: sampleTxid, Accepted: true}, got.Result)
}

func TestRenderUnknownValue(t *testing.T) {
	err := Render(&bytes.Buffer{}, &dispatch.Result{Op: "x", Value: struct{}{}}, Options{})
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "4,294,967,295", FormatNumber(4294967295))
}

func TestFormatTimestamp(t *testing.T) {
	ref := time.Unix(1_000_000, 0)
	assert.Equal(t, "—", FormatTimestamp(0, ref))
	assert.Contains(t, FormatTimestamp(1_000_000-30, ref), "(30s ago)")
	assert.Contains(t, FormatTimestamp(1_000_000-120, ref), "(2m ago)")
	assert.Contains(t, FormatTimestamp(1_000_000-7200, ref), "(2h ago)")
	assert.Contains(t, FormatTimestamp(1_000_000+60, ref), "(in the future)")
}

func TestStatusFormatter(t *testing.T) {
	f := &StatusFormatter{Rows: []StatusRow{
		{Provider: "a", URL: "https://a", Height: 100, TipHash: "aaaa", Latency: 50 * time.Millisecond},
		{Provider: "b", URL: "https://b", Height: 100, TipHash: "bbbb", Latency: 80 * time.Millisecond},
		{Provider: "c", URL: "https://c", Height: 98, TipHash: "cccc"},
		{Provider: "d", URL: "https://d", Err: errors.New("connection refused")},
	}}

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf))
	out := buf.String()

	assert.Contains(t, out, "✗ DOWN")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "-2")
	assert.Contains(t, out, "TIP HASH MISMATCH at height 100")
	assert.NotContains(t, out, "at height 98")
}

func TestStatusFormatterJSON(t *testing.T) {
	f := &StatusFormatter{Rows: []StatusRow{
		{Provider: "a", URL: "https://a", Height: 100, TipHash: "aaaa", Latency: 50 * time.Millisecond},
		{Provider: "d", URL: "https://d", Err: errors.New("connection refused")},
		{Provider: "regtest", URL: "http://127.0.0.1:3002", Height: 0, TipHash: "0f9188f1"},
	}}

	var buf bytes.Buffer
	require.NoError(t, f.FormatJSON(&buf))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, "a", rows[0]["provider"])
	assert.Equal(t, float64(100), rows[0]["height"])
	assert.Equal(t, "aaaa", rows[0]["tip_hash"])
	assert.Equal(t, float64(50), rows[0]["latency_ms"])
	assert.NotContains(t, rows[0], "error")

	assert.Equal(t, "connection refused", rows[1]["error"])
	assert.NotContains(t, rows[1], "tip_hash")

	// a node at genesis still reports its height
	assert.Equal(t, float64(0), rows[2]["height"])
	assert.NotContains(t, rows[2], "error")
}
