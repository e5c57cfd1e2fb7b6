package common

import (
	"context"

	"parsume/internal/errors"
)

// OperationFunc is a generic signature for a command's core operation.
type OperationFunc[Output any] func(ctx context.Context) (Output, error)

// RunCommand encapsulates the common logic for CLI commands: run the
// operation, then format and write its result per the command configuration.
func RunCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation OperationFunc[Output],
) error {
	outputHandler := NewOutputHandler(logger)

	// Validate the output target before doing any work
	fileProcessor := NewFileProcessor(logger)
	if err := fileProcessor.ValidateOutputFile(cmdConfig.OutputFile); err != nil {
		return err
	}

	result, err := operation(ctx)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
