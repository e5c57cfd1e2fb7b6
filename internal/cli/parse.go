package cli

import (
	"context"
	"fmt"
	"strings"

	"parsume/internal/common"
	"parsume/internal/formatters"
	"parsume/internal/pipeline"
	"parsume/internal/types"
	"parsume/internal/utils"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Extract structured fields from a resume document",
	Long: `Parse a resume document into structured fields: name, contact data,
skills, experience, education, projects, and certifications.

Supported inputs are plain text files and document formats (PDF, DOCX, DOC,
RTF, ODT). The --mode flag selects the extraction path:
- local: rule-based extraction only (default, no API key needed)
- llm: AI extraction only
- hybrid: both paths, merged`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		if err := common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats); err != nil {
			return err
		}
		if parseTemplate != "" {
			if _, ok := formatters.GetTemplateInfo(parseTemplate); !ok {
				return fmt.Errorf("unknown resume template '%s' (available: %s)",
					parseTemplate, strings.Join(formatters.AvailableTemplates(), ", "))
			}
			formatters.GlobalRegistry.RegisterFormatter("latex", "ResumeRecord",
				&formatters.ResumeLatexFormatter{Template: parseTemplate})
		}
		return nil
	},
	RunE: runParse,
}

var (
	parseConfig   common.CommandConfig
	parseMode     string
	parseTemplate string
)

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, markdown, or latex")
	parseCmd.Flags().StringVarP(&parseMode, "mode", "m", "", "Parse mode: local, llm, or hybrid (default from config)")
	parseCmd.Flags().StringVar(&parseTemplate, "template", "", "Resume template for latex output: professional, academic, or minimal")

	registerFormatCompletion(parseCmd)
	_ = parseCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"local", "llm", "hybrid"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = parseCmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatters.AvailableTemplates(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	mode, err := resolveMode(parseMode, cfg.App.DefaultMode)
	if err != nil {
		return err
	}

	if err := utils.ValidateFileSize(args[0], int64(cfg.App.MaxFileSize)); err != nil {
		return err
	}

	pipe, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build parse pipeline: %w", err)
	}
	defer func() {
		if err := pipe.Close(); err != nil {
			logger.Warn("Failed to close pipeline", "error", err)
		}
	}()

	logger.Info("Starting resume parsing",
		"file", args[0],
		"mode", mode,
		"output_format", parseConfig.OutputFormat)

	err = common.RunCommand(
		cmd.Context(),
		logger,
		parseConfig,
		func(ctx context.Context) (types.ResumeRecord, error) {
			return pipe.ParseFile(ctx, args[0], mode)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	logger.Info("Resume parsing completed successfully")
	return nil
}

// resolveMode picks the explicit flag value over the configured default.
func resolveMode(flagValue, configDefault string) (pipeline.Mode, error) {
	if flagValue != "" {
		return pipeline.ParseMode(flagValue)
	}
	return pipeline.ParseMode(configDefault)
}
