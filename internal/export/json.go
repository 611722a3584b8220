package export

import (
	"encoding/json"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// indented JSON view of a document, open ends are null
type JSONExporter struct {
	Indent string
}

type jsonDocument struct {
	ID      string          `json:"id,omitempty"`
	Title   string          `json:"title,omitempty"`
	Artists []lyrics.Artist `json:"artists,omitempty"`
	Lines   []jsonLine      `json:"lines"`
}

type jsonLine struct {
	Kind          string         `json:"kind"`
	Start         int            `json:"start"`
	End           *int           `json:"end"`
	Content       string         `json:"content,omitempty"`
	Syllables     []jsonSyllable `json:"syllables,omitempty"`
	Translation   string         `json:"translation,omitempty"`
	Phonetic      string         `json:"phonetic,omitempty"`
	Accompaniment bool           `json:"accompaniment,omitempty"`
	Alignment     string         `json:"alignment,omitempty"`
}

type jsonSyllable struct {
	Content  string `json:"content"`
	Start    int    `json:"start"`
	End      *int   `json:"end"`
	Phonetic string `json:"phonetic,omitempty"`
}

func (e *JSONExporter) Export(doc *lyrics.Document) string {
	out := jsonDocument{
		ID:      doc.ID,
		Title:   doc.Title,
		Artists: doc.Artists,
		Lines:   make([]jsonLine, 0, doc.Len()),
	}

	for _, l := range doc.Lines() {
		switch l := l.(type) {
		case lyrics.PlainLine:
			out.Lines = append(out.Lines, jsonLine{
				Kind:        "plain",
				Start:       l.Start,
				End:         endPtr(l.End),
				Content:     l.Content,
				Translation: l.Translation,
			})
		case lyrics.KaraokeLine:
			jl := jsonLine{
				Kind:          "karaoke",
				Start:         l.Start,
				End:           endPtr(l.End),
				Content:       l.Text(),
				Translation:   l.Translation,
				Phonetic:      l.Phonetic,
				Accompaniment: l.IsAccompaniment,
				Alignment:     l.Alignment.String(),
			}
			for _, s := range l.Syllables {
				jl.Syllables = append(jl.Syllables, jsonSyllable{
					Content:  s.Content,
					Start:    s.Start,
					End:      endPtr(s.End),
					Phonetic: s.Phonetic,
				})
			}
			out.Lines = append(out.Lines, jl)
		}
	}

	data, _ := json.MarshalIndent(out, "", e.Indent)
	return string(data) + "\n"
}

func endPtr(end int) *int {
	if end == lyrics.Unbounded {
		return nil
	}
	return &end
}
