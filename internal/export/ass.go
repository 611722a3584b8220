package export

import (
	"fmt"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// Advanced SubStation Alpha with \kf karaoke sweeps per syllable. duet
// sides get left and right aligned styles, background vocals their own.
type ASSExporter struct {
	Title    string
	FontName string
	FontSize int
}

var assTextReplacer = strings.NewReplacer("{", "(", "}", ")", "\r", "", "\n", `\N`)

func (e *ASSExporter) Export(doc *lyrics.Document) string {
	title := e.Title
	if title == "" {
		title = doc.Title
	}
	font, size := e.FontName, e.FontSize
	if font == "" {
		font = "Arial"
	}
	if size <= 0 {
		size = 48
	}

	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	if title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", title))
	}
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("WrapStyle: 0\n")
	sb.WriteString("ScaledBorderAndShadow: yes\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, s := range []struct {
		name      string
		size      int
		italic    int
		alignment int
	}{
		{"Default", size, 0, 2},
		{"Lead", size, 0, 1},
		{"Duet", size, 0, 3},
		{"Background", size * 3 / 4, 1, 8},
	} {
		sb.WriteString(fmt.Sprintf("Style: %s,%s,%d,&H00FFFFFF,&H0000A5FF,&H00000000,&H80000000,0,%d,0,0,100,100,0,0,1,2,1,%d,40,40,40,1\n",
			s.name, font, s.size, s.italic, s.alignment))
	}
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, l := range doc.Lines() {
		kl := asKaraoke(l)
		if strings.TrimSpace(kl.Text()) == "" {
			continue
		}

		layer := 0
		if kl.IsAccompaniment {
			layer = 1
		}
		sb.WriteString(fmt.Sprintf("Dialogue: %d,%s,%s,%s,,0,0,0,karaoke,%s\n",
			layer,
			formatASSTime(kl.Start),
			formatASSTime(cueEnd(kl.Span())),
			assStyle(kl),
			assKaraokeText(kl),
		))
	}

	return sb.String()
}

func assStyle(l lyrics.KaraokeLine) string {
	if l.IsAccompaniment {
		return "Background"
	}
	switch l.Alignment {
	case lyrics.AlignmentStart:
		return "Lead"
	case lyrics.AlignmentEnd:
		return "Duet"
	}
	return "Default"
}

// \k gaps and \kf sweeps in centiseconds, measured on absolute times so
// rounding does not drift across a long line
func assKaraokeText(l lyrics.KaraokeLine) string {
	var sb strings.Builder
	cursor := l.Start / 10
	for _, s := range l.Syllables {
		start := s.Start / 10
		end := max(finiteEnd(s.Start, s.End)/10, start)
		if start > cursor {
			sb.WriteString(fmt.Sprintf(`{\k%d}`, start-cursor))
		}
		sb.WriteString(fmt.Sprintf(`{\kf%d}`, end-start))
		sb.WriteString(assTextReplacer.Replace(s.Content))
		cursor = max(cursor, end)
	}

	if tr := strings.TrimSpace(l.Translation); tr != "" {
		sb.WriteString(`\N`)
		sb.WriteString(assTextReplacer.Replace(tr))
	}
	return sb.String()
}

func formatASSTime(ms int) string {
	ms = max(ms, 0)
	return fmt.Sprintf("%d:%02d:%02d.%02d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000/10)
}
