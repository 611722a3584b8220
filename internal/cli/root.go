package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/config"
	"github.com/mgpai22/lyrisync/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lyrisync",
	Short: "Timed lyrics parser, converter and translator",
	Long: `Lyrisync reads synchronized lyrics in LRC, enhanced LRC, Lyricify
Syllable, KRC and TTML formats into one timed model.

It can detect formats, convert between them, query which lines are
highlighted at a playback position, and fill in translations or Japanese
readings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger = logging.NewLogger(verbose || cfg.Verbose)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
