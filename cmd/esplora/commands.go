package main

import (
	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/request"
)

type parseFunc func(args []string) (request.Operation, error)

// opCmd builds a command whose positional arguments parse straight into one
// operation. Parsing finishes before any network access.
func opCmd(a *app, use, short, long string, arity cobra.PositionalArgs, parse parseFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  usageArgs(arity),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parse(args)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), op)
		},
	}
}

// optionalArg reports args[i] as present only when it was supplied.
func optionalArg(args []string, i int) request.Optional {
	if i < len(args) {
		return request.Some(args[i])
	}
	return request.Absent
}
