package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/timecode"
)

var queryCmd = &cobra.Command{
	Use:   "query [lyrics_file]",
	Short: "Show which lines are highlighted at a playback position",
	Long: `Show the lines a karaoke display highlights at a playback position.

Prints the index of the first highlighted line (or of the next line to come
when none is active) and every active line with its timing.

Examples:
  lyrisync query song.lrc --at 1:23.5
  lyrisync query song.ttml --at 00:02:10.000`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	addInputFlags(queryCmd)
	queryCmd.Flags().
		String("at", "", "Playback position, [[HH:]MM:]SS[.fff] (required)")

	_ = queryCmd.MarkFlagRequired("at")
}

func runQuery(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")
	if strings.TrimSpace(at) == "" {
		return fmt.Errorf("playback position is required")
	}
	ms := timecode.Parse(strings.TrimSpace(at))

	res, err := loadLyrics(cmd, args[0])
	if err != nil {
		return err
	}
	doc := res.Document

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "position: %s\n", timecode.Format(ms))
	fmt.Fprintf(out, "first: %d\n", doc.FirstHighlightIndex(ms))

	active := doc.AllHighlightIndices(ms)
	fmt.Fprintf(out, "active: %d\n", len(active))
	for _, i := range active {
		fmt.Fprintln(out, describeLine(i, doc.Line(i), ms))
	}
	return nil
}

func describeLine(i int, l lyrics.Line, ms int) string {
	span := l.Span()
	end := "open"
	if span.End != lyrics.Unbounded {
		end = timecode.Format(span.End)
	}

	line := fmt.Sprintf("  %d [%s - %s] %s", i, timecode.Format(span.Start), end, strings.TrimSpace(l.Text()))
	if kl, ok := l.(lyrics.KaraokeLine); ok {
		if kl.IsAccompaniment {
			line += " (background)"
		}
		line += fmt.Sprintf(" %.0f%%", kl.Progress(ms)*100)
	}
	return line
}
