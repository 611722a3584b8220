package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/export"
)

var convertCmd = &cobra.Command{
	Use:   "convert [lyrics_file]",
	Short: "Convert lyrics to LRC, TTML, JSON or subtitles",
	Long: `Convert a lyrics file from any supported input format to LRC, TTML,
JSON, or SRT/VTT/ASS subtitles (ASS keeps syllable karaoke timing).

The output format comes from --to, else from the extension of --output.
Output goes to stdout when --output is not set.

Examples:
  lyrisync convert song.krc --to ttml
  lyrisync convert song.ttml -o song.lrc
  lyrisync convert song.lrc --to ttml --audio song.flac
  lyrisync convert song.krc -o song.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	addInputFlags(convertCmd)
	convertCmd.Flags().
		StringP("to", "t", "", "Output format ("+exportFormatList()+")")
	convertCmd.Flags().
		String("audio", "", "Audio track used to close open-ended lines")
	convertCmd.Flags().
		String("translation-language", "", "xml:lang of translation spans in TTML output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	audioPath, _ := cmd.Flags().GetString("audio")
	outputPath, _ := cmd.Flags().GetString("output")
	translationLang, _ := cmd.Flags().GetString("translation-language")

	if to == "" && outputPath == "" {
		return fmt.Errorf("output format is required: use --to or an --output file with a known extension")
	}

	res, err := loadLyrics(cmd, args[0])
	if err != nil {
		return err
	}

	format, err := resolveExportFormat(to, outputPath, "")
	if err != nil {
		return err
	}
	if format == "" {
		return fmt.Errorf("cannot infer output format from %q: use --to", outputPath)
	}

	doc, err := clampToAudio(res.Document, audioPath)
	if err != nil {
		return err
	}

	e, err := export.New(format)
	if err != nil {
		return err
	}
	if te, ok := e.(*export.TTMLExporter); ok {
		te.TranslationLanguage = translationLang
	}

	logger.Infow("Converting lyrics",
		"from", res.Format,
		"to", format,
		"lines", doc.Len(),
	)
	return writeDocument(cmd, doc, e, outputPath)
}
