package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/audio"
	"github.com/mgpai22/lyrisync/internal/export"
	"github.com/mgpai22/lyrisync/internal/loader"
	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// registers --format for commands that read lyrics
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringP("format", "f", "", "Input format ("+formatList()+"), guessed when empty")
}

func exportFormatList() string {
	var names []string
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func formatList() string {
	var names []string
	for _, f := range lyrics.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// reads and parses the lyrics file named by path
func loadLyrics(cmd *cobra.Command, path string) (*loader.Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("lyrics file not found: %s", path)
	}

	opts := []loader.Option{loader.WithLogger(logger.Desugar())}
	if cmd.Flags().Lookup("format") != nil {
		formatStr, _ := cmd.Flags().GetString("format")
		if formatStr != "" {
			opts = append(opts, loader.WithFormat(lyrics.Format(strings.ToLower(formatStr))))
		}
	}

	res, err := loader.LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}

	logger.Infow("Parsed lyrics",
		"file", path,
		"format", res.Format,
		"lines", res.Document.Len(),
	)
	if res.Document.IsEmpty() {
		logger.Warnw("No timed lines found", "file", path)
	}
	return res, nil
}

// replaces open line ends with the length of the audio track
func clampToAudio(doc *lyrics.Document, audioPath string) (*lyrics.Document, error) {
	if audioPath == "" {
		return doc, nil
	}
	if !audio.IsMediaFile(audioPath) {
		return nil, fmt.Errorf("unsupported audio file %q", audioPath)
	}

	ms, err := audio.DurationMillis(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio duration: %w", err)
	}

	logger.Infow("Clamping open line ends to track length",
		"audio", audioPath,
		"duration_ms", ms,
	)
	return doc.Clamp(ms), nil
}

// export format from --to, else the output extension, else fallback
func resolveExportFormat(to, outputPath string, fallback export.Format) (export.Format, error) {
	if to != "" {
		f := export.Format(strings.ToLower(to))
		if _, err := export.New(f); err != nil {
			return "", err
		}
		return f, nil
	}
	if outputPath != "" {
		if f, ok := export.FormatFromExtension(outputPath); ok {
			return f, nil
		}
	}
	return fallback, nil
}

// line-timed input stays LRC, everything else keeps its syllables in TTML
func defaultExportFormat(input lyrics.Format) export.Format {
	if input == lyrics.FormatLRC {
		return export.FormatLRC
	}
	return export.FormatTTML
}

// writes doc to outputPath, or to stdout when it is empty
func writeDocument(cmd *cobra.Command, doc *lyrics.Document, e export.Exporter, outputPath string) error {
	if outputPath == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), e.Export(doc))
		return err
	}

	logger.Infow("Writing output file", "output", outputPath)
	if err := export.WriteFile(e, doc, outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
