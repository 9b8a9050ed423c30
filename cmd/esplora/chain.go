package main

import (
	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/request"
)

func getHeightCmd(a *app) *cobra.Command {
	return opCmd(a, "get-height", "Show the current tip height",
		"Show the height of the best-chain tip.",
		cobra.NoArgs,
		func([]string) (request.Operation, error) { return request.GetHeight{}, nil })
}

func getTipHashCmd(a *app) *cobra.Command {
	return opCmd(a, "get-tip-hash", "Show the current tip block hash",
		"Show the hash of the best-chain tip.",
		cobra.NoArgs,
		func([]string) (request.Operation, error) { return request.GetTipHash{}, nil })
}

func getFeeEstimatesCmd(a *app) *cobra.Command {
	return opCmd(a, "get-fee-estimates", "Show fee rate estimates by confirmation target",
		"Show the estimated fee rate in sat/vB for each confirmation target (in blocks).",
		cobra.NoArgs,
		func([]string) (request.Operation, error) { return request.GetFeeEstimates{}, nil })
}
