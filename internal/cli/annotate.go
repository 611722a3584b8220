package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/export"
	"github.com/mgpai22/lyrisync/internal/phonetic"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [lyrics_file]",
	Short: "Add kana readings to Japanese lyrics",
	Long: `Add kana readings to Japanese syllables and lines that have none.

Readings come from morphological analysis with the IPA dictionary. Readings
already present in the file (for example from a KRC romaji block) are kept.

Examples:
  lyrisync annotate song.krc
  lyrisync annotate song.ttml --hiragana -o song.ruby.ttml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	addInputFlags(annotateCmd)
	annotateCmd.Flags().
		StringP("to", "t", "", "Output format (ttml, json), defaults to json")
	annotateCmd.Flags().
		Bool("hiragana", false, "Write readings in hiragana instead of katakana")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	hiragana, _ := cmd.Flags().GetBool("hiragana")
	outputPath, _ := cmd.Flags().GetString("output")

	res, err := loadLyrics(cmd, args[0])
	if err != nil {
		return err
	}

	format, err := resolveExportFormat(to, outputPath, export.FormatJSON)
	if err != nil {
		return err
	}
	if format != export.FormatTTML && format != export.FormatJSON {
		return fmt.Errorf("%s output cannot carry readings: use ttml or json", format)
	}

	var opts []phonetic.Option
	if hiragana {
		opts = append(opts, phonetic.WithHiragana())
	}
	annotator, err := phonetic.NewAnnotator(opts...)
	if err != nil {
		return err
	}

	logger.Infow("Annotating lyrics", "lines", res.Document.Len(), "hiragana", hiragana)
	doc := annotator.Annotate(res.Document)

	e, err := export.New(format)
	if err != nil {
		return err
	}
	return writeDocument(cmd, doc, e, outputPath)
}
