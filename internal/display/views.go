package display

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/dando385/esplora-cli/internal/dispatch"
)

// TxView is a decoded transaction with hashes in display order.
type TxView struct {
	Txid     string      `json:"txid"`
	Wtxid    string      `json:"wtxid"`
	Version  int32       `json:"version"`
	Locktime uint32      `json:"locktime"`
	Size     int         `json:"size"`
	VSize    int         `json:"vsize"`
	Weight   int         `json:"weight"`
	Inputs   []TxInView  `json:"vin"`
	Outputs  []TxOutView `json:"vout"`
}

type TxInView struct {
	Txid         string   `json:"txid"`
	Vout         uint32   `json:"vout"`
	Coinbase     bool     `json:"is_coinbase"`
	ScriptSig    string   `json:"scriptsig"`
	ScriptSigAsm string   `json:"scriptsig_asm"`
	Witness      []string `json:"witness,omitempty"`
	Sequence     uint32   `json:"sequence"`
}

type TxOutView struct {
	Value        int64  `json:"value"`
	ScriptPubKey string `json:"scriptpubkey"`
	Asm          string `json:"scriptpubkey_asm"`
	Type         string `json:"scriptpubkey_type"`
	Address      string `json:"scriptpubkey_address,omitempty"`
}

type HeaderView struct {
	Hash       string `json:"id"`
	Version    int32  `json:"version"`
	PrevBlock  string `json:"previousblockhash"`
	MerkleRoot string `json:"merkle_root"`
	Timestamp  uint64 `json:"timestamp"`
	Bits       string `json:"bits"`
	Nonce      uint32 `json:"nonce"`
}

type BlockView struct {
	HeaderView
	Size         int      `json:"size"`
	StrippedSize int      `json:"stripped_size"`
	Weight       int      `json:"weight"`
	TxCount      int      `json:"tx_count"`
	Transactions []TxView `json:"transactions"`
}

// MerkleBlockView is a BIP37 merkle block.
type MerkleBlockView struct {
	Header       HeaderView `json:"header"`
	Transactions uint32     `json:"tx_count"`
	Hashes       []string   `json:"hashes"`
	Flags        string     `json:"flags"`
}

type ReceiptView struct {
	Txid     string `json:"txid"`
	Accepted bool   `json:"accepted"`
}

// View converts wire and hash values into their display structs. Values
// that already carry JSON tags are returned unchanged.
func View(value any, net *chaincfg.Params) any {
	switch v := value.(type) {
	case *wire.MsgTx:
		return NewTxView(v, net)
	case *wire.BlockHeader:
		return NewHeaderView(v)
	case *wire.MsgBlock:
		return NewBlockView(v, net)
	case *wire.MsgMerkleBlock:
		return NewMerkleBlockView(v)
	case chainhash.Hash:
		return v.String()
	case dispatch.BroadcastReceipt:
		return ReceiptView{Txid: v.Txid.String(), Accepted: true}
	default:
		return value
	}
}

func NewTxView(tx *wire.MsgTx, net *chaincfg.Params) TxView {
	size := tx.SerializeSize()
	weight := tx.SerializeSizeStripped()*3 + size

	v := TxView{
		Txid:     tx.TxHash().String(),
		Wtxid:    tx.WitnessHash().String(),
		Version:  tx.Version,
		Locktime: tx.LockTime,
		Size:     size,
		VSize:    (weight + 3) / 4,
		Weight:   weight,
		Inputs:   make([]TxInView, 0, len(tx.TxIn)),
		Outputs:  make([]TxOutView, 0, len(tx.TxOut)),
	}

	for _, in := range tx.TxIn {
		iv := TxInView{
			Txid:         in.PreviousOutPoint.Hash.String(),
			Vout:         in.PreviousOutPoint.Index,
			Coinbase:     isCoinbase(in),
			ScriptSig:    hex.EncodeToString(in.SignatureScript),
			ScriptSigAsm: disasm(in.SignatureScript),
			Sequence:     in.Sequence,
		}
		for _, item := range in.Witness {
			iv.Witness = append(iv.Witness, hex.EncodeToString(item))
		}
		v.Inputs = append(v.Inputs, iv)
	}

	for _, out := range tx.TxOut {
		class, addrs, _, _ := txscript.ExtractPkScriptAddrs(out.PkScript, net)
		ov := TxOutView{
			Value:        out.Value,
			ScriptPubKey: hex.EncodeToString(out.PkScript),
			Asm:          disasm(out.PkScript),
			Type:         class.String(),
		}
		if len(addrs) == 1 {
			ov.Address = addrs[0].EncodeAddress()
		}
		v.Outputs = append(v.Outputs, ov)
	}

	return v
}

func NewHeaderView(h *wire.BlockHeader) HeaderView {
	return HeaderView{
		Hash:       h.BlockHash().String(),
		Version:    h.Version,
		PrevBlock:  h.PrevBlock.String(),
		MerkleRoot: h.MerkleRoot.String(),
		Timestamp:  uint64(h.Timestamp.Unix()),
		Bits:       fmt.Sprintf("%08x", h.Bits),
		Nonce:      h.Nonce,
	}
}

func NewBlockView(b *wire.MsgBlock, net *chaincfg.Params) BlockView {
	size := b.SerializeSize()
	stripped := b.SerializeSizeStripped()

	v := BlockView{
		HeaderView:   NewHeaderView(&b.Header),
		Size:         size,
		StrippedSize: stripped,
		Weight:       stripped*3 + size,
		TxCount:      len(b.Transactions),
		Transactions: make([]TxView, 0, len(b.Transactions)),
	}
	for _, tx := range b.Transactions {
		v.Transactions = append(v.Transactions, NewTxView(tx, net))
	}
	return v
}

func NewMerkleBlockView(mb *wire.MsgMerkleBlock) MerkleBlockView {
	v := MerkleBlockView{
		Header:       NewHeaderView(&mb.Header),
		Transactions: mb.Transactions,
		Hashes:       make([]string, 0, len(mb.Hashes)),
		Flags:        hex.EncodeToString(mb.Flags),
	}
	for _, h := range mb.Hashes {
		v.Hashes = append(v.Hashes, h.String())
	}
	return v
}

func isCoinbase(in *wire.TxIn) bool {
	return in.PreviousOutPoint.Index == wire.MaxPrevOutIndex &&
		in.PreviousOutPoint.Hash == (chainhash.Hash{})
}

func disasm(script []byte) string {
	if len(script) == 0 {
		return ""
	}
	s, err := txscript.DisasmString(script)
	if err != nil {
		// DisasmString returns the decodable prefix along with the error
		return s + " [error]"
	}
	return s
}
