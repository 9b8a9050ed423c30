package request

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Argument names used in parse errors.
const (
	ParamTxid     = "transaction id"
	ParamBlock    = "block hash"
	ParamIndex    = "index"
	ParamVout     = "output index"
	ParamTxHex    = "transaction hex"
	ParamHeight   = "height"
	ParamScript   = "script"
	ParamLastSeen = "last seen transaction id"
)

// Optional is a raw optional argument. Present is false only when the
// argument was not supplied at all; an empty string that was supplied is
// present and goes through the normal parsing rule.
type Optional struct {
	Value   string
	Present bool
}

// Some returns a present optional argument.
func Some(v string) Optional { return Optional{Value: v, Present: true} }

// Absent is the explicit "not supplied" value.
var Absent = Optional{}

// ParseHash parses a 32-byte hash given as display-order hex, the form used
// by explorers and the Esplora API for both transaction ids and block hashes.
// The returned hash's String() reproduces the canonical lowercase hex.
func ParseHash(param, s string) (chainhash.Hash, error) {
	b, err := decodeHex(param, s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	if len(b) != chainhash.HashSize {
		return chainhash.Hash{}, newParseError(param, s,
			fmt.Errorf("%w: got %d bytes, want %d", ErrWrongLength, len(b), chainhash.HashSize))
	}

	// display order is the reverse of the internal byte order
	var h chainhash.Hash
	for i, c := range b {
		h[chainhash.HashSize-1-i] = c
	}
	return h, nil
}

// ParseOptionalHash applies ParseHash to a present argument. Absent yields nil.
func ParseOptionalHash(param string, o Optional) (*chainhash.Hash, error) {
	if !o.Present {
		return nil, nil
	}
	h, err := ParseHash(param, o.Value)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ParseUint32 parses a decimal height or block index.
func ParseUint32(param, s string) (uint32, error) {
	v, err := parseUint(param, s, 32)
	return uint32(v), err
}

// ParseOptionalUint32 applies ParseUint32 to a present argument. Absent yields nil.
func ParseOptionalUint32(param string, o Optional) (*uint32, error) {
	if !o.Present {
		return nil, nil
	}
	v, err := ParseUint32(param, o.Value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseUint64 parses a decimal output index.
func ParseUint64(param, s string) (uint64, error) {
	return parseUint(param, s, 64)
}

func parseUint(param, s string, bits int) (uint64, error) {
	// strconv rejects signs, whitespace and the empty string in base 10
	v, err := strconv.ParseUint(s, 10, bits)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, newParseError(param, s, fmt.Errorf("%w: exceeds %d bits", ErrOutOfRange, bits))
	}
	return 0, newParseError(param, s, ErrInvalidNumber)
}

// ParseRawTransaction validates a broadcast payload in two stages: hex
// decoding, then consensus deserialization. The stages fail with different
// sentinels (ErrOddLength/ErrInvalidHex versus ErrInvalidTransaction).
func ParseRawTransaction(param, s string) (*wire.MsgTx, error) {
	raw, err := decodeHex(param, s)
	if err != nil {
		return nil, err
	}
	return DecodeTransaction(param, s, raw)
}

// DecodeTransaction is the second stage of ParseRawTransaction. The whole
// byte sequence must be consumed.
func DecodeTransaction(param, s string, raw []byte) (*wire.MsgTx, error) {
	tx := &wire.MsgTx{}
	r := bytes.NewReader(raw)
	if err := tx.Deserialize(r); err != nil {
		return nil, newParseError(param, s, fmt.Errorf("%w: %v", ErrInvalidTransaction, err))
	}
	if r.Len() != 0 {
		return nil, newParseError(param, s,
			fmt.Errorf("%w: %d trailing bytes", ErrInvalidTransaction, r.Len()))
	}
	return tx, nil
}

func decodeHex(param, s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, newParseError(param, s, ErrOddLength)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newParseError(param, s, fmt.Errorf("%w: %v", ErrInvalidHex, err))
	}
	return b, nil
}
