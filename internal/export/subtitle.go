package export

import (
	"fmt"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// how long a cue without an end stays on screen
const openCueDuration = 5000

// SubRip cues, one per main line with the translation below it
type SRTExporter struct{}

// WebVTT cues, one per main line with the translation below it
type VTTExporter struct{}

func (e *SRTExporter) Export(doc *lyrics.Document) string {
	var sb strings.Builder
	for i, c := range subtitleCues(doc) {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTime(c.start), formatSRTTime(c.end)))
		sb.WriteString(c.text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (e *VTTExporter) Export(doc *lyrics.Document) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, c := range subtitleCues(doc) {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatVTTTime(c.start), formatVTTTime(c.end)))
		sb.WriteString(c.text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

type cue struct {
	start, end int
	text       string
}

// main lines with text; open ends last openCueDuration
func subtitleCues(doc *lyrics.Document) []cue {
	var cues []cue
	for _, l := range doc.Lines() {
		if kl, ok := l.(lyrics.KaraokeLine); ok && kl.IsAccompaniment {
			continue
		}
		text := strings.TrimSpace(l.Text())
		if text == "" {
			continue
		}
		if tr := strings.TrimSpace(lyrics.TranslationOf(l)); tr != "" {
			text += "\n" + tr
		}
		span := l.Span()
		cues = append(cues, cue{start: span.Start, end: cueEnd(span), text: text})
	}
	return cues
}

func cueEnd(span lyrics.Timing) int {
	if span.End == lyrics.Unbounded {
		return span.Start + openCueDuration
	}
	return span.End
}

func formatSRTTime(ms int) string {
	ms = max(ms, 0)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func formatVTTTime(ms int) string {
	ms = max(ms, 0)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
