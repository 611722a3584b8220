package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/guess"
)

var guessCmd = &cobra.Command{
	Use:   "guess [lyrics_file...]",
	Short: "Detect the format of lyrics files",
	Long: `Detect the lyrics format of one or more files from their content.

Prints one line per file: the detected format (or "unknown") and the path.

Examples:
  lyrisync guess song.lrc
  lyrisync guess *.krc *.ttml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGuess,
}

func init() {
	rootCmd.AddCommand(guessCmd)
}

func runGuess(cmd *cobra.Command, args []string) error {
	g := guess.New()
	out := cmd.OutOrStdout()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		format, ok := g.Guess(strings.TrimPrefix(string(data), "\ufeff"))
		name := string(format)
		if !ok {
			name = "unknown"
		}
		logger.Debugw("Guessed format", "file", path, "format", name)
		fmt.Fprintf(out, "%s\t%s\n", name, path)
	}

	return nil
}
