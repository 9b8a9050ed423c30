package esplora

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// GetTx fetches a transaction by id. Unknown ids return ErrNotFound.
func (c *Client) GetTx(ctx context.Context, txid chainhash.Hash) (*wire.MsgTx, error) {
	path := fmt.Sprintf("/tx/%s/raw", txid)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, optional(err)
	}

	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("GET %s: invalid transaction: %w", path, err)
	}
	return tx, nil
}

// GetTxidAtBlockIndex returns the id of the transaction at index within a
// block. An unknown block or an index past the end returns ErrNotFound.
func (c *Client) GetTxidAtBlockIndex(ctx context.Context, blockHash chainhash.Hash, index uint32) (chainhash.Hash, error) {
	path := fmt.Sprintf("/block/%s/txid/%d", blockHash, index)
	text, err := c.getText(ctx, path)
	if err != nil {
		return chainhash.Hash{}, optional(err)
	}
	return decodeHash(path, text)
}

func (c *Client) GetTxStatus(ctx context.Context, txid chainhash.Hash) (*TxStatus, error) {
	var status TxStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s/status", txid), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) GetHeaderByHash(ctx context.Context, blockHash chainhash.Hash) (*wire.BlockHeader, error) {
	path := fmt.Sprintf("/block/%s/header", blockHash)
	raw, err := c.getHex(ctx, path)
	if err != nil {
		return nil, err
	}

	header := &wire.BlockHeader{}
	r := bytes.NewReader(raw)
	if err := header.Deserialize(r); err != nil {
		return nil, fmt.Errorf("GET %s: invalid header: %w", path, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("GET %s: invalid header: %d trailing bytes", path, r.Len())
	}
	return header, nil
}

func (c *Client) GetBlockStatus(ctx context.Context, blockHash chainhash.Hash) (*BlockStatus, error) {
	var status BlockStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/block/%s/status", blockHash), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) GetBlockByHash(ctx context.Context, blockHash chainhash.Hash) (*wire.MsgBlock, error) {
	path := fmt.Sprintf("/block/%s/raw", blockHash)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	block := &wire.MsgBlock{}
	if err := block.Deserialize(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("GET %s: invalid block: %w", path, err)
	}
	return block, nil
}

// GetMerkleProof returns ErrNotFound for unknown or unconfirmed transactions.
func (c *Client) GetMerkleProof(ctx context.Context, txid chainhash.Hash) (*MerkleProof, error) {
	var proof MerkleProof
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s/merkle-proof", txid), &proof); err != nil {
		return nil, optional(err)
	}
	return &proof, nil
}

// GetMerkleBlock returns a BIP37 merkle block proving inclusion of txid.
func (c *Client) GetMerkleBlock(ctx context.Context, txid chainhash.Hash) (*wire.MsgMerkleBlock, error) {
	path := fmt.Sprintf("/tx/%s/merkleblock-proof", txid)
	raw, err := c.getHex(ctx, path)
	if err != nil {
		return nil, err
	}

	mb := &wire.MsgMerkleBlock{}
	if err := mb.BtcDecode(bytes.NewReader(raw), wire.ProtocolVersion, wire.BaseEncoding); err != nil {
		return nil, fmt.Errorf("GET %s: invalid merkle block: %w", path, err)
	}
	return mb, nil
}

// GetOutputStatus returns ErrNotFound when the output does not exist.
func (c *Client) GetOutputStatus(ctx context.Context, txid chainhash.Hash, index uint64) (*OutputStatus, error) {
	var status OutputStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s/outspend/%d", txid, index), &status); err != nil {
		return nil, optional(err)
	}
	return &status, nil
}

// Broadcast submits a serialized transaction. A non-2xx answer is returned
// as a *StatusError carrying the node's rejection message.
func (c *Client) Broadcast(ctx context.Context, tx *wire.MsgTx) error {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return fmt.Errorf("serialize transaction: %w", err)
	}

	txid, err := c.post(ctx, "/tx", hex.EncodeToString(buf.Bytes()))
	if err != nil {
		return err
	}
	c.log.Debug("broadcast accepted", "txid", txid)
	return nil
}

func (c *Client) GetHeight(ctx context.Context) (uint32, error) {
	path := "/blocks/tip/height"
	text, err := c.getText(ctx, path)
	if err != nil {
		return 0, err
	}
	h, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("GET %s: invalid height %q: %w", path, text, err)
	}
	return uint32(h), nil
}

func (c *Client) GetTipHash(ctx context.Context) (chainhash.Hash, error) {
	path := "/blocks/tip/hash"
	text, err := c.getText(ctx, path)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return decodeHash(path, text)
}

func (c *Client) GetBlockHash(ctx context.Context, height uint32) (chainhash.Hash, error) {
	path := fmt.Sprintf("/block-height/%d", height)
	text, err := c.getText(ctx, path)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return decodeHash(path, text)
}

func (c *Client) GetFeeEstimates(ctx context.Context) (FeeEstimates, error) {
	var fees FeeEstimates
	if err := c.getJSON(ctx, "/fee-estimates", &fees); err != nil {
		return nil, err
	}
	return fees, nil
}

// ScriptHashTxs returns one page of confirmed history for an output script.
// The first page is requested with a nil lastSeen; later pages pass the last
// txid of the previous page.
func (c *Client) ScriptHashTxs(ctx context.Context, script []byte, lastSeen *chainhash.Hash) ([]Tx, error) {
	path := fmt.Sprintf("/scripthash/%s/txs", ScriptHash(script))
	if lastSeen != nil {
		path = fmt.Sprintf("%s/chain/%s", path, lastSeen)
	}

	var txs []Tx
	if err := c.getJSON(ctx, path, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetBlocks lists recent block summaries ending at height, or at the tip
// when height is nil. The page size is decided by the server.
func (c *Client) GetBlocks(ctx context.Context, height *uint32) ([]BlockSummary, error) {
	path := "/blocks"
	if height != nil {
		path = fmt.Sprintf("/blocks/%d", *height)
	}

	var blocks []BlockSummary
	if err := c.getJSON(ctx, path, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ScriptHash is the Esplora script identifier: the hex SHA-256 of the
// script in natural byte order.
func ScriptHash(script []byte) string {
	return hex.EncodeToString(chainhash.HashB(script))
}

func (c *Client) getHex(ctx context.Context, path string) ([]byte, error) {
	text, err := c.getText(ctx, path)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("GET %s: invalid hex response: %w", path, err)
	}
	return raw, nil
}

func decodeHash(path, text string) (chainhash.Hash, error) {
	if len(text) != 2*chainhash.HashSize {
		return chainhash.Hash{}, fmt.Errorf("GET %s: invalid hash %q", path, text)
	}
	h, err := chainhash.NewHashFromStr(text)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("GET %s: invalid hash %q: %w", path, text, err)
	}
	return *h, nil
}
