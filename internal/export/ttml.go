package export

import (
	"fmt"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/timecode"
)

// Apple-style word timed TTML
type TTMLExporter struct {
	// xml:lang of translation spans, omitted when empty
	TranslationLanguage string
}

func (e *TTMLExporter) Export(doc *lyrics.Document) string {
	if doc.IsEmpty() {
		return ""
	}

	hasStart, hasEnd := false, false
	total := 0
	keys := map[int]string{}
	for i, l := range doc.Lines() {
		if kl, ok := l.(lyrics.KaraokeLine); ok {
			if strings.TrimSpace(kl.Phonetic) != "" && !kl.IsAccompaniment {
				keys[i] = fmt.Sprintf("L%d", len(keys)+1)
			}
			switch kl.Alignment {
			case lyrics.AlignmentStart:
				hasStart = true
			case lyrics.AlignmentEnd:
				hasEnd = true
			}
		}
		s := l.Span()
		total = max(total, finiteEnd(s.Start, s.End))
	}
	duet := hasStart && hasEnd

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<tt xmlns="http://www.w3.org/ns/ttml" xmlns:itunes="http://music.apple.com/lyric-ttml-internal" xmlns:ttm="http://www.w3.org/ns/ttml#metadata" itunes:timing="Word">` + "\n")

	sb.WriteString("  <head>\n")
	if duet || doc.Title != "" || len(keys) > 0 {
		sb.WriteString("    <metadata>\n")
		if doc.Title != "" {
			sb.WriteString(fmt.Sprintf("      <ttm:title>%s</ttm:title>\n", escapeXMLText(doc.Title)))
		}
		if duet {
			sb.WriteString(`      <ttm:agent type="person" xml:id="v1"/>` + "\n")
			sb.WriteString(`      <ttm:agent type="person" xml:id="v2"/>` + "\n")
		}
		if len(keys) > 0 {
			writeTransliterations(&sb, doc, keys)
		}
		sb.WriteString("    </metadata>\n")
	}
	sb.WriteString("  </head>\n")

	sb.WriteString(fmt.Sprintf("  <body dur=\"%s\">\n", timecode.Format(total)))
	sb.WriteString(fmt.Sprintf("    <div begin=\"%s\" end=\"%s\">\n",
		timecode.Format(doc.Line(0).Span().Start),
		timecode.Format(total)))

	for i, l := range doc.Lines() {
		e.writeParagraph(&sb, asKaraoke(l), keys[i])
	}

	sb.WriteString("    </div>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</tt>\n")

	return sb.String()
}

// line readings keyed by paragraph, the way Apple Music ships them
func writeTransliterations(sb *strings.Builder, doc *lyrics.Document, keys map[int]string) {
	sb.WriteString(`      <iTunesMetadata xmlns="http://music.apple.com/lyric-ttml-internal">` + "\n")
	sb.WriteString("        <transliterations>\n")
	sb.WriteString("          <transliteration>\n")
	for i, l := range doc.Lines() {
		key, ok := keys[i]
		if !ok {
			continue
		}
		phonetic := strings.TrimSpace(l.(lyrics.KaraokeLine).Phonetic)
		sb.WriteString(fmt.Sprintf("            <text for=\"%s\">%s</text>\n", key, escapeXMLText(phonetic)))
	}
	sb.WriteString("          </transliteration>\n")
	sb.WriteString("        </transliterations>\n")
	sb.WriteString("      </iTunesMetadata>\n")
}

func (e *TTMLExporter) writeParagraph(sb *strings.Builder, line lyrics.KaraokeLine, key string) {
	var attrs string
	switch line.Alignment {
	case lyrics.AlignmentStart:
		attrs = ` ttm:agent="v1"`
	case lyrics.AlignmentEnd:
		attrs = ` ttm:agent="v2"`
	}
	if key != "" {
		attrs += fmt.Sprintf(` itunes:key="%s"`, key)
	}

	begin := timecode.Format(line.Start)
	end := timecode.Format(finiteEnd(line.Start, line.End))
	sb.WriteString(fmt.Sprintf(`      <p begin="%s" end="%s"%s>`, begin, end, attrs))

	if line.IsAccompaniment {
		sb.WriteString(fmt.Sprintf(`<span ttm:role="x-bg" begin="%s" end="%s">`, begin, end))
		e.writeContent(sb, line)
		sb.WriteString("</span>")
	} else {
		e.writeContent(sb, line)
	}
	sb.WriteString("</p>\n")
}

// syllable spans, a loose space after syllables that end with one, then the
// translation span
func (e *TTMLExporter) writeContent(sb *strings.Builder, line lyrics.KaraokeLine) {
	for _, s := range line.Syllables {
		sb.WriteString(fmt.Sprintf(`<span begin="%s" end="%s">%s</span>`,
			timecode.Format(s.Start),
			timecode.Format(finiteEnd(s.Start, s.End)),
			escapeXMLText(strings.TrimSpace(s.Content)),
		))
		if strings.HasSuffix(s.Content, " ") {
			sb.WriteString(" ")
		}
	}

	if tr := strings.TrimSpace(line.Translation); tr != "" {
		lang := ""
		if e.TranslationLanguage != "" {
			lang = fmt.Sprintf(` xml:lang="%s"`, escapeXMLAttr(e.TranslationLanguage))
		}
		sb.WriteString(fmt.Sprintf(`<span ttm:role="x-translation"%s>%s</span>`, lang, escapeXMLText(tr)))
	}
}
