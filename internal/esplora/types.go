// Package esplora is a REST client for the Esplora block explorer API
// (blockstream.info, mempool.space and self-hosted electrs).
//
// JSON endpoints decode into the structs below, which mirror the API field
// for field. Binary and hex endpoints decode into btcd wire types.
package esplora

// TxStatus is the confirmation state of a transaction. The block fields are
// nil while the transaction is unconfirmed.
type TxStatus struct {
	Confirmed   bool    `json:"confirmed"`
	BlockHeight *uint32 `json:"block_height,omitempty"`
	BlockHash   *string `json:"block_hash,omitempty"`
	BlockTime   *uint64 `json:"block_time,omitempty"`
}

// BlockStatus reports whether a block is on the best chain.
type BlockStatus struct {
	InBestChain bool    `json:"in_best_chain"`
	Height      *uint32 `json:"height,omitempty"`
	NextBest    *string `json:"next_best,omitempty"`
}

// MerkleProof is an electrum-style inclusion proof: the sibling hashes from
// the transaction up to the merkle root and the transaction's position.
type MerkleProof struct {
	BlockHeight uint32   `json:"block_height"`
	Merkle      []string `json:"merkle"`
	Pos         uint64   `json:"pos"`
}

// OutputStatus reports whether an output has been spent and, if so, by which input.
type OutputStatus struct {
	Spent  bool      `json:"spent"`
	Txid   *string   `json:"txid,omitempty"`
	Vin    *uint64   `json:"vin,omitempty"`
	Status *TxStatus `json:"status,omitempty"`
}

// FeeEstimates maps a confirmation target in blocks to a fee rate in sat/vB.
type FeeEstimates map[uint16]float64

// BlockSummary is one entry of the /blocks listing.
type BlockSummary struct {
	ID                string  `json:"id"`
	Height            uint32  `json:"height"`
	Version           int32   `json:"version"`
	Timestamp         uint64  `json:"timestamp"`
	MedianTime        uint64  `json:"mediantime"`
	TxCount           uint32  `json:"tx_count"`
	Size              uint64  `json:"size"`
	Weight            uint64  `json:"weight"`
	MerkleRoot        string  `json:"merkle_root"`
	PreviousBlockHash *string `json:"previousblockhash"`
	Nonce             uint32  `json:"nonce"`
	Bits              uint32  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}

// Tx is a transaction as returned by the history endpoints, including
// prevouts and fee.
type Tx struct {
	Txid     string   `json:"txid"`
	Version  int32    `json:"version"`
	Locktime uint32   `json:"locktime"`
	Vin      []Vin    `json:"vin"`
	Vout     []Vout   `json:"vout"`
	Size     uint32   `json:"size"`
	Weight   uint64   `json:"weight"`
	Fee      uint64   `json:"fee"`
	Status   TxStatus `json:"status"`
}

type Vin struct {
	Txid                  string   `json:"txid"`
	Vout                  uint32   `json:"vout"`
	Prevout               *Vout    `json:"prevout"`
	ScriptSig             string   `json:"scriptsig"`
	ScriptSigAsm          string   `json:"scriptsig_asm"`
	Witness               []string `json:"witness,omitempty"`
	IsCoinbase            bool     `json:"is_coinbase"`
	Sequence              uint32   `json:"sequence"`
	InnerRedeemScriptAsm  string   `json:"inner_redeemscript_asm,omitempty"`
	InnerWitnessScriptAsm string   `json:"inner_witnessscript_asm,omitempty"`
}

type Vout struct {
	ScriptPubKey        string `json:"scriptpubkey"`
	ScriptPubKeyAsm     string `json:"scriptpubkey_asm"`
	ScriptPubKeyType    string `json:"scriptpubkey_type"`
	ScriptPubKeyAddress string `json:"scriptpubkey_address,omitempty"`
	Value               uint64 `json:"value"`
}
