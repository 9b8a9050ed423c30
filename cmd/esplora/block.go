package main

import (
	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/request"
)

func getHeaderByHashCmd(a *app) *cobra.Command {
	return opCmd(a, "get-header-by-hash <block-hash>", "Fetch and decode a block header",
		`Fetch the 80-byte header of a block and decode it.

Examples:
  esplora get-header-by-hash 000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f`,
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetHeaderByHash(args[0]) })
}

func getBlockStatusCmd(a *app) *cobra.Command {
	return opCmd(a, "get-block-status <block-hash>", "Show whether a block is on the best chain",
		"Show whether a block is on the best chain, its height and the next block.",
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetBlockStatus(args[0]) })
}

func getBlockByHashCmd(a *app) *cobra.Command {
	return opCmd(a, "get-block-by-hash <block-hash>", "Fetch and decode a full block",
		"Fetch the raw block and decode its header and every transaction.",
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetBlockByHash(args[0]) })
}

func getBlockHashCmd(a *app) *cobra.Command {
	return opCmd(a, "get-block-hash <height>", "Fetch the hash of the block at a height",
		`Fetch the hash of the best-chain block at height.

Examples:
  esplora get-block-hash 0
  esplora get-block-hash 840000`,
		cobra.ExactArgs(1),
		func(args []string) (request.Operation, error) { return request.ParseGetBlockHash(args[0]) })
}

func getBlocksCmd(a *app) *cobra.Command {
	return opCmd(a, "get-blocks [height]", "List recent block summaries",
		`List block summaries ending at height, or at the tip when no height is given.
The server decides the page size.

Examples:
  esplora get-blocks
  esplora get-blocks 840000`,
		cobra.MaximumNArgs(1),
		func(args []string) (request.Operation, error) {
			return request.ParseGetBlocks(optionalArg(args, 0))
		})
}
