package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/request"
)

func getScriptHashTransactionsCmd(a *app) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "get-script-hash-transactions <script> [last-seen-txid]",
		Short: "List confirmed history for an output script",
		Long: `List one page of confirmed transactions paying to or spending from an
output script, newest first.

The script is given as hex by default. --script-encoding address accepts a
Bitcoin address for the configured chain instead, and --script-encoding raw
forwards the argument's own bytes without decoding.

Each invocation fetches exactly one page. To continue, pass the last txid of
the previous page (printed as "Next Page Cursor") as last-seen-txid.

Examples:
  esplora get-script-hash-transactions 76a91429d6a3540acfa0a950bef2bfdc75cd51c24390fd88ac
  esplora get-script-hash-transactions 14pDqB95GWLWCjFxM4t96H2kXH7QMKSsgG --script-encoding address
  esplora get-script-hash-transactions 76a914...88ac b6f6991d03df0e2e04dafffcd6bc418aac66049e2cd74b80f14ac86db1e3f0da`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := request.ParseScriptEncoding(encoding)
			if err != nil {
				return &usageError{err: err}
			}

			// addresses are decoded for the configured chain
			if enc == request.ScriptAddress {
				if err := a.setup(); err != nil {
					return err
				}
			}

			op, err := request.ParseGetScriptHashTransactions(args[0], enc, a.net, optionalArg(args, 1))
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), op)
		},
	}

	names := make([]string, 0, len(request.ScriptEncodings))
	for _, enc := range request.ScriptEncodings {
		names = append(names, string(enc))
	}
	cmd.Flags().StringVar(&encoding, "script-encoding", string(request.ScriptHex),
		fmt.Sprintf("How the script argument is read: %s", strings.Join(names, "|")))

	return cmd
}
