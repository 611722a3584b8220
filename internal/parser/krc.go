package parser

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

var (
	krcLineRegex     = regexp.MustCompile(`^\[(\d+),(\d+)](.*)$`)
	krcSyllableRegex = regexp.MustCompile(`<(\d+),(\d+),\d+>`)
	krcBgRegex       = regexp.MustCompile(`^\[bg:(.*)](.*)$`)
	krcLanguageRegex = regexp.MustCompile(`^\[language:(.*)]\s*$`)
)

const (
	// added to a line start that does not move past the previous one
	krcMonotonicStep = 3
	// full-width colon the encoder splits away from speaker labels
	krcSpeakerColon = "："
)

// parses KRC: [start,duration]<offset,duration,flag>text... lines with an
// optional [language:base64] block carrying translations and phonetics
type KRCParser struct {
	log *zap.Logger
}

func NewKRCParser(opts ...Option) *KRCParser {
	o := newOptions(opts)
	return &KRCParser{log: o.log}
}

// decoded [language:] payload
type krcSideChannel struct {
	translations []string
	// per line, the phonetic fragment of each syllable
	phonetics [][]string
}

func (p *KRCParser) ParseLines(lines []string) *lyrics.Document {
	return p.Parse(strings.Join(lines, "\n"))
}

func (p *KRCParser) Parse(text string) *lyrics.Document {
	lines := splitLines(text)

	// headers and the language block apply to every line, wherever they sit
	var (
		side    krcSideChannel
		decoded bool
		meta    metadata
	)
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if m := krcLanguageRegex.FindStringSubmatch(line); m != nil {
			if !decoded {
				side, decoded = p.decodeSideChannel(m[1]), true
			}
			continue
		}
		if krcBgRegex.MatchString(line) || krcLineRegex.MatchString(line) {
			continue
		}
		meta.consume(line)
	}

	var (
		out       []lyrics.Line
		lineIndex = 0
		lastStart = -1
		// running duet side, scoped to this call
		toggle = lyrics.AlignmentStart
	)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || krcLanguageRegex.MatchString(line) {
			continue
		}

		if m := krcBgRegex.FindStringSubmatch(line); m != nil {
			syllables := parseKRCSyllables(m[1], 0)
			if len(syllables) == 0 {
				continue
			}
			out = append(out, boundedBySyllables(lyrics.KaraokeLine{
				Syllables:       meta.shiftSyllables(syllables),
				IsAccompaniment: true,
				Alignment:       lyrics.AlignmentUnspecified,
			}))
			continue
		}

		m := krcLineRegex.FindStringSubmatch(line)
		if m == nil {
			if !headerRegex.MatchString(line) {
				p.log.Debug("skipping unrecognized krc line", zap.String("line", line))
			}
			continue
		}

		start, err := strconv.Atoi(m[1])
		if err != nil {
			start = 0
		}
		start = meta.shift(start)
		if lastStart != -1 && start <= lastStart {
			start = lastStart + krcMonotonicStep
		}
		lastStart = start

		index := lineIndex
		lineIndex++

		syllables := parseKRCSyllables(m[3], start)
		if len(syllables) == 0 {
			continue
		}

		var phonetic string
		if index < len(side.phonetics) {
			row := side.phonetics[index]
			for i := range syllables {
				if i < len(row) {
					syllables[i].Phonetic = row[i]
				}
			}
			phonetic = strings.Join(row, "")
		}

		var translation string
		if index < len(side.translations) {
			translation = strings.TrimSpace(side.translations[index])
		}

		if isSpeakerMarked(syllables) {
			toggle = toggle.Toggle()
		}

		out = append(out, boundedBySyllables(lyrics.KaraokeLine{
			Syllables:   syllables,
			Translation: translation,
			Phonetic:    phonetic,
			Alignment:   toggle,
		}))
	}

	return meta.apply(lyrics.NewDocument(out))
}

// line text opening or closing with a colon names a new speaker
func isSpeakerMarked(syllables []lyrics.Syllable) bool {
	var sb strings.Builder
	for _, s := range syllables {
		sb.WriteString(s.Content)
	}
	text := sb.String()
	if utf8.RuneCountInString(text) <= 1 {
		return false
	}
	for _, colon := range []string{":", krcSpeakerColon} {
		if strings.HasPrefix(text, colon) || strings.HasSuffix(text, colon) {
			return true
		}
	}
	return false
}

type krcToken struct {
	offset   int
	duration int
	text     string
}

// syllables of content, offsets relative to lineStart
func parseKRCSyllables(content string, lineStart int) []lyrics.Syllable {
	idx := krcSyllableRegex.FindAllStringSubmatchIndex(content, -1)
	if len(idx) == 0 {
		return nil
	}

	tokens := make([]krcToken, len(idx))
	for k, loc := range idx {
		textEnd := len(content)
		if k+1 < len(idx) {
			textEnd = idx[k+1][0]
		}
		offset, _ := strconv.Atoi(content[loc[2]:loc[3]])
		duration, _ := strconv.Atoi(content[loc[4]:loc[5]])
		tokens[k] = krcToken{offset: offset, duration: duration, text: content[loc[1]:textEnd]}
	}

	// "A" followed by "：" is one speaker label timed by the colon
	merged := make([]krcToken, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if i+1 < len(tokens) && utf8.RuneCountInString(t.text) == 1 && tokens[i+1].text == krcSpeakerColon {
			next := tokens[i+1]
			merged = append(merged, krcToken{
				offset:   next.offset,
				duration: next.duration,
				text:     t.text + krcSpeakerColon,
			})
			i++
			continue
		}
		merged = append(merged, t)
	}

	out := make([]lyrics.Syllable, len(merged))
	for i, t := range merged {
		out[i] = lyrics.Syllable{
			Content: t.text,
			Start:   lineStart + t.offset,
			End:     lineStart + t.offset + t.duration,
		}
	}
	return out
}

// decodes the [language:] block. anything malformed yields an empty result.
func (p *KRCParser) decodeSideChannel(encoded string) krcSideChannel {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return krcSideChannel{}
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	}
	if err != nil {
		p.log.Debug("ignoring undecodable language block", zap.Error(err))
		return krcSideChannel{}
	}
	if !gjson.ValidBytes(raw) {
		p.log.Debug("ignoring language block with invalid json")
		return krcSideChannel{}
	}

	var side krcSideChannel
	gjson.GetBytes(raw, "content").ForEach(func(_, entry gjson.Result) bool {
		typ, lang := entry.Get("type"), entry.Get("language")
		if typ.Type != gjson.Number || lang.Type != gjson.Number || lang.Int() != 0 {
			return true
		}
		rows := entry.Get("lyricContent")
		if !rows.IsArray() {
			return true
		}
		switch typ.Int() {
		case 1:
			rows.ForEach(func(_, row gjson.Result) bool {
				side.translations = append(side.translations, strings.Join(fragments(row), ""))
				return true
			})
		case 0:
			rows.ForEach(func(_, row gjson.Result) bool {
				side.phonetics = append(side.phonetics, fragments(row))
				return true
			})
		}
		return true
	})
	return side
}

func fragments(row gjson.Result) []string {
	var out []string
	for _, f := range row.Array() {
		out = append(out, f.String())
	}
	return out
}
