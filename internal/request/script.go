package request

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ScriptEncoding selects how the script argument of
// get-script-hash-transactions is turned into script bytes.
type ScriptEncoding string

const (
	// ScriptHex hex-decodes the argument like every other identifier.
	ScriptHex ScriptEncoding = "hex"
	// ScriptRaw forwards the argument's own bytes unchanged.
	ScriptRaw ScriptEncoding = "raw"
	// ScriptAddress decodes a Bitcoin address into its output script.
	ScriptAddress ScriptEncoding = "address"
)

// ScriptEncodings lists the accepted encodings in help order.
var ScriptEncodings = []ScriptEncoding{ScriptHex, ScriptRaw, ScriptAddress}

// ParseScriptEncoding validates a --script-encoding value.
func ParseScriptEncoding(s string) (ScriptEncoding, error) {
	for _, enc := range ScriptEncodings {
		if string(enc) == s {
			return enc, nil
		}
	}
	return "", fmt.Errorf("unknown script encoding %q (expected hex, raw or address)", s)
}

// ChainParams maps a chain name from config to btcd network parameters.
func ChainParams(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown chain %q", name)
	}
}

// ParseScript converts the raw script argument according to enc. net is only
// consulted for ScriptAddress.
func ParseScript(param, s string, enc ScriptEncoding, net *chaincfg.Params) ([]byte, error) {
	switch enc {
	case ScriptRaw:
		return []byte(s), nil
	case ScriptHex, "":
		return decodeHex(param, s)
	case ScriptAddress:
		if net == nil {
			net = &chaincfg.MainNetParams
		}
		addr, err := btcutil.DecodeAddress(s, net)
		if err != nil {
			return nil, newParseError(param, s, fmt.Errorf("%w: %v", ErrInvalidScript, err))
		}
		if !addr.IsForNet(net) {
			return nil, newParseError(param, s,
				fmt.Errorf("%w: address is not for %s", ErrInvalidScript, net.Name))
		}
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return nil, newParseError(param, s, fmt.Errorf("%w: %v", ErrInvalidScript, err))
		}
		return script, nil
	default:
		return nil, newParseError(param, s, fmt.Errorf("%w: unknown encoding %q", ErrInvalidScript, enc))
	}
}
