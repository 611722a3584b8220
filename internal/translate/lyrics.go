package translate

import (
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// lines of doc that still need a translation, indexed by line position.
// blank lines are skipped.
func Items(doc *lyrics.Document) []TranslationItem {
	var items []TranslationItem
	for i, l := range doc.Lines() {
		if strings.TrimSpace(lyrics.TranslationOf(l)) != "" {
			continue
		}
		text := strings.TrimSpace(l.Text())
		if text == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: text})
	}
	return items
}

// copy of doc with results attached by line index. existing translations are
// kept and out-of-range indices ignored; skipped reports how many results
// were not applied.
func Apply(doc *lyrics.Document, results []TranslationResult) (out *lyrics.Document, skipped int) {
	byIndex := make(map[int]string, len(results))
	for _, r := range results {
		text := strings.TrimSpace(r.Text)
		if r.Index < 0 || r.Index >= doc.Len() || text == "" {
			skipped++
			continue
		}
		byIndex[r.Index] = text
	}

	out = doc.MapLines(func(i int, l lyrics.Line) lyrics.Line {
		text, ok := byIndex[i]
		if !ok {
			return l
		}
		if strings.TrimSpace(lyrics.TranslationOf(l)) != "" {
			skipped++
			return l
		}
		return lyrics.WithTranslation(l, text)
	})
	return out, skipped
}
