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

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file] [job-description-file]",
	Short: "Score a resume for ATS compatibility",
	Long: `Score a resume for ATS compatibility. The resume is parsed first,
then analyzed for keyword match, content quality, and formatting.

The job description file is optional: without one the keyword sub-analysis
is skipped and its weight is spread over the other components.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var (
	scoreConfig common.CommandConfig
	scoreMode   string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	scoreCmd.Flags().StringVarP(&scoreMode, "mode", "m", "", "Scoring mode: local, llm, or hybrid (default from config)")

	registerFormatCompletion(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	mode, err := resolveMode(scoreMode, cfg.App.DefaultMode)
	if err != nil {
		return err
	}

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
		return fmt.Errorf("failed to build scoring pipeline: %w", err)
	}
	defer func() {
		if err := pipe.Close(); err != nil {
			logger.Warn("Failed to close pipeline", "error", err)
		}
	}()

	logger.Info("Starting ATS scoring",
		"file", args[0],
		"mode", mode,
		"job_chars", len(jobDescription),
		"output_format", scoreConfig.OutputFormat)

	err = common.RunCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		func(ctx context.Context) (types.ATSAnalysis, error) {
			record, err := pipe.ParseFile(ctx, args[0], mode)
			if err != nil {
				return types.ATSAnalysis{}, err
			}
			return pipe.Score(ctx, record, jobDescription, mode)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}

	logger.Info("ATS scoring completed successfully")
	return nil
}
