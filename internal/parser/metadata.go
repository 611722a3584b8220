package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// [key:value] header with an alphabetic key, e.g. [ti:Title] or [offset:+200]
var headerRegex = regexp.MustCompile(`^\[([A-Za-z][A-Za-z0-9_-]*):(.*)]$`)

// header values shared by the bracket grammars
type metadata struct {
	title   string
	artists []lyrics.Artist
	// milliseconds to subtract from every timestamp
	offset int
}

// reports whether line is a header and records the fields we use
func (m *metadata) consume(line string) bool {
	match := headerRegex.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return false
	}

	value := strings.TrimSpace(match[2])
	switch strings.ToLower(match[1]) {
	case "ti":
		m.title = value
	case "ar":
		for _, name := range strings.Split(value, "/") {
			if name = strings.TrimSpace(name); name != "" {
				m.artists = append(m.artists, lyrics.Artist{Type: "artist", Name: name})
			}
		}
	case "offset":
		if n, err := strconv.Atoi(strings.TrimPrefix(value, "+")); err == nil {
			m.offset = n
		}
	}
	return true
}

// removes header lines and returns the remaining ones
func stripMetadata(lines []string) ([]string, metadata) {
	var m metadata
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if m.consume(line) {
			continue
		}
		out = append(out, line)
	}
	return out, m
}

func (m metadata) shift(ms int) int {
	return max(ms-m.offset, 0)
}

// shifts syllables that carry absolute times
func (m metadata) shiftSyllables(syllables []lyrics.Syllable) []lyrics.Syllable {
	if m.offset == 0 {
		return syllables
	}
	for i := range syllables {
		syllables[i].Start = m.shift(syllables[i].Start)
		syllables[i].End = m.shift(syllables[i].End)
	}
	return syllables
}

func (m metadata) apply(doc *lyrics.Document) *lyrics.Document {
	doc.Title = m.title
	doc.Artists = m.artists
	return doc
}
