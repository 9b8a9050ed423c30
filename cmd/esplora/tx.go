package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/request"
)

func getTxCmd(a *app) *cobra.Command {
	return opCmd(a, "get-tx <txid>", "Fetch and decode a transaction",
		`Fetch a raw transaction by id and decode it.

Exits with code 3 when the transaction is unknown.

Examples:
  esplora get-tx b6f6991d03df0e2e04dafffcd6bc418aac66049e2cd74b80f14ac86db1e3f0da
  esplora get-tx b6f6991d03df0e2e04dafffcd6bc418aac66049e2cd74b80f14ac86db1e3f0da --format json`,
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetTx(args[0]) })
}

func getTxAtBlockIndexCmd(a *app) *cobra.Command {
	return opCmd(a, "get-tx-at-block-index <block-hash> <index>", "Fetch the txid at a position in a block",
		`Return the id of the transaction at index within the block.

Exits with code 3 when the block is unknown or the index is past the end.

Examples:
  esplora get-tx-at-block-index 000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f 0`,
		cobra.ExactArgs(2),
		func(args []string) (request.Operation, error) {
			return request.ParseGetTxAtBlockIndex(args[0], args[1])
		})
}

func getTxStatusCmd(a *app) *cobra.Command {
	return opCmd(a, "get-tx-status <txid>", "Show the confirmation status of a transaction",
		"Show whether a transaction is confirmed and, if so, in which block. Unconfirmed is a valid answer.",
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetTxStatus(args[0]) })
}

func getMerkleProofCmd(a *app) *cobra.Command {
	return opCmd(a, "get-merkle-proof <txid>", "Fetch an electrum-style merkle inclusion proof",
		"Fetch the merkle branch proving a confirmed transaction's inclusion. Exits with code 3 when there is none.",
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetMerkleProof(args[0]) })
}

func getMerkleBlockCmd(a *app) *cobra.Command {
	return opCmd(a, "get-merkle-block <txid>", "Fetch a BIP37 merkle block proving inclusion",
		"Fetch and decode the BIP37 merkle block (partial merkle tree) for a confirmed transaction.",
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetMerkleBlock(args[0]) })
}

func getOutputStatusCmd(a *app) *cobra.Command {
	return opCmd(a, "get-output-status <txid> <vout>", "Show whether an output has been spent",
		`Show the spend status of output vout of a transaction.

Exits with code 3 when the output does not exist.

Examples:
  esplora get-output-status b6f6991d03df0e2e04dafffcd6bc418aac66049e2cd74b80f14ac86db1e3f0da 0`,
		cobra.ExactArgs(2),
		func(args []string) (request.Operation, error) {
			return request.ParseGetOutputStatus(args[0], args[1])
		})
}

func broadcastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <tx-hex|->",
		Short: "Broadcast a signed raw transaction",
		Long: `Decode a signed raw transaction and submit it to the network.

The hex is checked and decoded as a transaction before anything is sent.
Pass - to read the hex from stdin. A rejection by the node exits with code 5
and is never retried.

Examples:
  esplora broadcast 0100000001...
  bitcoin-cli signrawtransactionwithwallet ... | jq -r .hex | esplora broadcast -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			txHex := args[0]
			if txHex == "-" {
				data, err := io.ReadAll(a.stdin)
				if err != nil {
					return fmt.Errorf("read transaction from stdin: %w", err)
				}
				txHex = strings.TrimSpace(string(data))
			}

			op, err := request.ParseBroadcast(txHex)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), op)
		},
	}
}
