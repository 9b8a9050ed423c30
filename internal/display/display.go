// Package display renders dispatch results for the terminal or as JSON.
//
// Commands keep parsing and dispatch separate from rendering by handing the
// *dispatch.Result to Render. Every field of the result is shown in both
// formats; the JSON format is the complete machine-readable form.
package display

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/dando385/esplora-cli/internal/dispatch"
)

// Format selects the output encoding.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTerminal, "":
		return FormatTerminal, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want terminal or json)", s)
	}
}

// Options controls rendering. Net is used to derive addresses from output
// scripts and defaults to mainnet.
type Options struct {
	Format   Format
	Provider string
	Net      *chaincfg.Params
}

// Render writes res to w in the requested format.
func Render(w io.Writer, res *dispatch.Result, opts Options) error {
	if opts.Net == nil {
		opts.Net = &chaincfg.MainNetParams
	}

	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, res, opts)
	case FormatTerminal, "":
		return renderTerminal(w, res, opts)
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}
}
