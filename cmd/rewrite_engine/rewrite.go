package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/rewrite-engine/internal/engine"
	"github.com/jonathan/rewrite-engine/internal/llm"
	"github.com/jonathan/rewrite-engine/internal/types"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a bullet, summary, or section from a request file",
	Long: "Reads a RewriteRequest JSON file, runs the evidence-anchored rewrite " +
		"pipeline, and writes the result (including the validation verdict) as JSON.",
	RunE: runRewrite,
}

var (
	rewriteInputFile  string
	rewriteOutputFile string
	rewriteAPIKey     string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteInputFile, "in", "i", "", "Path to RewriteRequest JSON file (required)")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "", "Path to output result JSON file (required)")
	rewriteCmd.Flags().StringVar(&rewriteAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	if err := rewriteCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := rewriteCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(_ *cobra.Command, _ []string) error {
	requestContent, err := os.ReadFile(rewriteInputFile)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	var request types.RewriteRequest
	if err := json.Unmarshal(requestContent, &request); err != nil {
		return fmt.Errorf("failed to unmarshal request JSON: %w", err)
	}

	apiKey := rewriteAPIKey
	if apiKey == "" {
		apiKey = viper.GetString("llm.api-key")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY or use --api-key)")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	lex, err := loadLexicon()
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	eng := engine.New(client, lex, engineConfig(), logger)

	outcome, err := eng.Rewrite(ctx, request)
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}

	if outputDir := filepath.Dir(rewriteOutputFile); outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result JSON: %w", err)
	}
	if err := os.WriteFile(rewriteOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("rewrite complete",
		zap.String("type", string(outcome.Type)),
		zap.String("output", rewriteOutputFile))
	return nil
}
