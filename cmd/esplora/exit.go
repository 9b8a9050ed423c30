package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/dispatch"
	"github.com/dando385/esplora-cli/internal/request"
)

const (
	exitOK        = 0
	exitFailure   = 1 // configuration or setup problems
	exitUsage     = 2 // bad flags, arity or a parse error
	exitNotFound  = 3
	exitTransport = 4
	exitRejected  = 5
)

// usageError marks command-line mistakes caught before any parsing rule ran.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra arity check so its failures map to exitUsage.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue):
		return exitUsage
	}
	if _, ok := request.IsParseError(err); ok {
		return exitUsage
	}

	var de *dispatch.Error
	if !errors.As(err, &de) {
		return exitFailure
	}
	switch de.Kind {
	case dispatch.KindNotFound:
		return exitNotFound
	case dispatch.KindBroadcastRejected:
		return exitRejected
	default:
		return exitTransport
	}
}
