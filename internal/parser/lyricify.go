package parser

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

var (
	lyricifyPropertyRegex = regexp.MustCompile(`^\[(\d+)]`)
	lyricifyTokenRegex    = regexp.MustCompile(`(.*?)\((\d+),(\d+)\)`)
)

// parses Lyricify Syllable lyrics: [property]word(start,duration)...
//
// property p selects the side (p%3: 0 unspecified, 1 start, 2 end) and
// values 6 to 8 mark background vocals.
type LyricifyParser struct {
	log *zap.Logger
}

func NewLyricifyParser(opts ...Option) *LyricifyParser {
	o := newOptions(opts)
	return &LyricifyParser{log: o.log}
}

func (p *LyricifyParser) Parse(text string) *lyrics.Document {
	return p.ParseLines(splitLines(text))
}

func (p *LyricifyParser) ParseLines(lines []string) *lyrics.Document {
	var (
		meta metadata
		out  []lyrics.Line
	)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || meta.consume(line) {
			continue
		}

		property := 0
		if m := lyricifyPropertyRegex.FindStringSubmatch(line); m != nil {
			property, _ = strconv.Atoi(m[1])
			line = line[len(m[0]):]
		}

		var syllables []lyrics.Syllable
		for _, m := range lyricifyTokenRegex.FindAllStringSubmatch(line, -1) {
			start, err1 := strconv.Atoi(m[2])
			dur, err2 := strconv.Atoi(m[3])
			if err1 != nil || err2 != nil || m[1] == "" {
				continue
			}
			start = meta.shift(start)
			syllables = append(syllables, lyrics.Syllable{
				Content: m[1],
				Start:   start,
				End:     start + dur,
			})
		}
		if len(syllables) == 0 {
			p.log.Debug("skipping line without syllables", zap.String("line", raw))
			continue
		}
		last := &syllables[len(syllables)-1]
		last.Content = strings.TrimRight(last.Content, " \t")

		out = append(out, boundedBySyllables(lyrics.KaraokeLine{
			Syllables:       syllables,
			Alignment:       lyricifyAlignment(property),
			IsAccompaniment: property >= 6 && property <= 8,
		}))
	}

	return meta.apply(lyrics.NewDocument(out))
}

func lyricifyAlignment(property int) lyrics.Alignment {
	switch property % 3 {
	case 1:
		return lyrics.AlignmentStart
	case 2:
		return lyrics.AlignmentEnd
	default:
		return lyrics.AlignmentUnspecified
	}
}
