package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rewrite-engine/internal/coherence"
)

var polishCmd = &cobra.Command{
	Use:   "polish",
	Short: "Run the coherence pass over a set of validated bullets",
	Long: "Reads a JSON array of bullet strings, unifies tense to the dominant " +
		"form, normalizes formatting, and applies ATS-safe character substitution.",
	RunE: runPolish,
}

var (
	polishInputFile  string
	polishOutputFile string
)

func init() {
	polishCmd.Flags().StringVarP(&polishInputFile, "in", "i", "", "Path to JSON array of bullets (required)")
	polishCmd.Flags().StringVarP(&polishOutputFile, "out", "o", "", "Path to output JSON file (required)")

	if err := polishCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := polishCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(polishCmd)
}

func runPolish(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(polishInputFile)
	if err != nil {
		return fmt.Errorf("failed to read bullets file: %w", err)
	}

	var bullets []string
	if err := json.Unmarshal(content, &bullets); err != nil {
		return fmt.Errorf("failed to unmarshal bullets JSON: %w", err)
	}

	lex, err := loadLexicon()
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}

	processor := coherence.New(lex)
	polished := coherence.ApplyFullFormattingToAll(processor.UnifyToDominant(bullets))

	jsonBytes, err := json.MarshalIndent(polished, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	if err := os.WriteFile(polishOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Polished %d bullets\n", len(polished))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", polishOutputFile)
	return nil
}
