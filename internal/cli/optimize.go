package cli

import (
	"context"
	"fmt"

	"parsume/internal/common"
	"parsume/internal/pipeline"
	"parsume/internal/types"
	"parsume/internal/utils"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Run the checklist-based ATS optimization report",
	Long: `Generate a checklist-style optimization report for a resume: points
for contact data, skills quality, experience depth, education, and summary,
with prioritized suggestions.

With a job description file, keyword overlap is measured and missing
keywords are reported. Parsing always runs locally for this command.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var optimizeConfig common.CommandConfig

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	registerFormatCompletion(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if err := utils.ValidateFileSize(args[0], int64(cfg.App.MaxFileSize)); err != nil {
		return err
	}

	var jobDescription string
	if len(args) == 2 {
		fileProcessor := common.NewFileProcessor(logger)
		contents, err := fileProcessor.ReadTextFiles(args[1])
		if err != nil {
			return err
		}
		jobDescription = contents[0]
	}

	pipe, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build optimization pipeline: %w", err)
	}
	defer func() {
		if err := pipe.Close(); err != nil {
			logger.Warn("Failed to close pipeline", "error", err)
		}
	}()

	logger.Info("Starting optimization report",
		"file", args[0],
		"job_chars", len(jobDescription),
		"output_format", optimizeConfig.OutputFormat)

	err = common.RunCommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		func(ctx context.Context) (types.OptimizeResult, error) {
			record, err := pipe.ParseFile(ctx, args[0], pipeline.ModeLocal)
			if err != nil {
				return types.OptimizeResult{}, err
			}
			return pipe.Optimize(record, jobDescription), nil
		},
	)
	if err != nil {
		return fmt.Errorf("failed to build optimization report: %w", err)
	}

	logger.Info("Optimization report completed successfully")
	return nil
}
