package export

import (
	"fmt"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/timecode"
)

// line-timed LRC. background lines are left out since the format has no
// way to mark them; a bare time tag closes a line that ends before the next
// one begins.
type LRCExporter struct{}

func (e *LRCExporter) Export(doc *lyrics.Document) string {
	if doc.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	if strings.TrimSpace(doc.Title) != "" {
		sb.WriteString(fmt.Sprintf("[ti:%s]\n", doc.Title))
	}
	if names := artistNames(doc.Artists); len(names) > 0 {
		sb.WriteString(fmt.Sprintf("[ar:%s]\n", strings.Join(names, "/")))
	}

	lastEnd := -1
	for _, line := range doc.Lines() {
		if kl, ok := line.(lyrics.KaraokeLine); ok && kl.IsAccompaniment {
			continue
		}

		span := line.Span()
		if lastEnd >= 0 && lastEnd != lyrics.Unbounded && span.Start > lastEnd {
			sb.WriteString(lrcTag(lastEnd) + "\n")
		}

		tag := lrcTag(span.Start)
		sb.WriteString(tag + strings.TrimSpace(line.Text()) + "\n")
		if tr := strings.TrimSpace(lyrics.TranslationOf(line)); tr != "" {
			sb.WriteString(tag + tr + "\n")
		}

		lastEnd = max(lastEnd, span.End)
	}

	return sb.String()
}

func lrcTag(ms int) string {
	return "[" + timecode.FormatLRC(ms) + "]"
}

func artistNames(artists []lyrics.Artist) []string {
	var names []string
	for _, a := range artists {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
