package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/export"
)

var parseCmd = &cobra.Command{
	Use:   "parse [lyrics_file]",
	Short: "Parse lyrics and print the timed model as JSON",
	Long: `Parse a lyrics file and print every line with its timing, syllables,
translation and reading as JSON.

Lines without an end (the last LRC line) have a null end. Pass --audio to
close them at the end of the track instead.

Examples:
  lyrisync parse song.krc
  lyrisync parse song.lrc --audio song.mp3 -o song.json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	addInputFlags(parseCmd)
	parseCmd.Flags().
		String("audio", "", "Audio track used to close open-ended lines")
}

func runParse(cmd *cobra.Command, args []string) error {
	audioPath, _ := cmd.Flags().GetString("audio")
	outputPath, _ := cmd.Flags().GetString("output")

	res, err := loadLyrics(cmd, args[0])
	if err != nil {
		return err
	}

	doc, err := clampToAudio(res.Document, audioPath)
	if err != nil {
		return err
	}

	e, err := export.New(export.FormatJSON)
	if err != nil {
		return err
	}
	return writeDocument(cmd, doc, e, outputPath)
}
