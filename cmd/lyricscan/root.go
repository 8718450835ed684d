package main

import (
	"fmt"
	"os"

	"github.com/nao1215/lyricscan/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for lyricscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lyricscan",
		Short: "Prosody analysis for song lyrics",
		Long: `lyricscan is a prosody analysis tool for songwriters.
It counts syllables and stresses, classifies line endings as stable or
unstable, detects rhyme schemes per section and flags clichéd phrases.

Analyses are recorded in a local history database so revisions of a song
can be compared with 'lyricscan history'.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Variables already in the environment win over the .env file.
			return config.LoadEnvFile(config.DefaultEnvFile)
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewStressCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
