package parser

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/timecode"
)

var (
	enhancedLineRegex   = regexp.MustCompile(`^\[(\d{1,2}:\d{1,2}\.\d{2,3})](.*)$`)
	enhancedBgRegex     = regexp.MustCompile(`^\[bg:(.*)]$`)
	enhancedVoiceRegex  = regexp.MustCompile(`^v([12]):`)
	enhancedInlineRegex = regexp.MustCompile(`<(\d{1,2}:\d{1,2}\.\d{2,3})>`)
)

// parses enhanced LRC: [time]v1:<time>word<time>word lines with optional
// [bg:...] background lines
type EnhancedLRCParser struct {
	log *zap.Logger
}

func NewEnhancedLRCParser(opts ...Option) *EnhancedLRCParser {
	o := newOptions(opts)
	return &EnhancedLRCParser{log: o.log}
}

type enhancedEntry struct {
	start     int
	alignment lyrics.Alignment
	body      string
	inline    bool
	// index of the main entry a background line follows, -1 if none
	owner int
}

func (p *EnhancedLRCParser) Parse(text string) *lyrics.Document {
	return p.ParseLines(splitLines(text))
}

func (p *EnhancedLRCParser) ParseLines(lines []string) *lyrics.Document {
	var (
		meta    metadata
		mains   []enhancedEntry
		bgs     []enhancedEntry
		skipped int
	)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := enhancedBgRegex.FindStringSubmatch(line); m != nil {
			bgs = append(bgs, enhancedEntry{body: m[1], owner: len(mains) - 1})
			continue
		}
		if meta.consume(line) {
			continue
		}
		m := enhancedLineRegex.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}

		e := enhancedEntry{start: timecode.Parse(m[1]), body: m[2], owner: -1}
		if v := enhancedVoiceRegex.FindStringSubmatch(e.body); v != nil {
			e.alignment = lyrics.AlignmentStart
			if v[1] == "2" {
				e.alignment = lyrics.AlignmentEnd
			}
			e.body = strings.TrimSpace(e.body[len(v[0]):])
		}
		e.inline = enhancedInlineRegex.MatchString(e.body)
		mains = append(mains, e)
	}

	for i := range mains {
		mains[i].start = meta.shift(mains[i].start)
	}

	// tagless line repeating the previous start carries its translation
	translations := map[int]string{}
	var kept []enhancedEntry
	remap := make([]int, len(mains))
	for i, e := range mains {
		if !e.inline && len(kept) > 0 && kept[len(kept)-1].start == e.start {
			if _, done := translations[len(kept)-1]; !done {
				translations[len(kept)-1] = strings.TrimSpace(e.body)
				remap[i] = len(kept) - 1
				continue
			}
		}
		remap[i] = len(kept)
		kept = append(kept, e)
	}

	order := make([]int, len(kept))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return kept[order[a]].start < kept[order[b]].start
	})
	nextStart := make([]int, len(kept))
	for k, idx := range order {
		nextStart[idx] = lyrics.Unbounded
		if k+1 < len(order) {
			nextStart[idx] = kept[order[k+1]].start
		}
	}

	var out []lyrics.Line
	for i, e := range kept {
		syllables := p.syllables(e.body, e.start, nextStart[i], meta)
		if len(syllables) == 0 {
			continue
		}
		line := boundedBySyllables(lyrics.KaraokeLine{
			Syllables:   syllables,
			Translation: translations[i],
			Alignment:   e.alignment,
		})
		line.Start = min(line.Start, e.start)
		out = append(out, line)
	}

	for _, bg := range bgs {
		limit := lyrics.Unbounded
		alignment := lyrics.AlignmentUnspecified
		if bg.owner >= 0 {
			owner := remap[bg.owner]
			limit = nextStart[owner]
			alignment = kept[owner].alignment
		}
		syllables := p.syllables(bg.body, -1, limit, meta)
		if len(syllables) == 0 {
			continue
		}
		out = append(out, boundedBySyllables(lyrics.KaraokeLine{
			Syllables:       syllables,
			IsAccompaniment: true,
			Alignment:       alignment,
		}))
	}

	p.log.Debug("parsed enhanced lrc",
		zap.Int("lines", len(out)),
		zap.Int("skipped", skipped),
	)

	return meta.apply(lyrics.NewDocument(out))
}

// splits body on inline tags. each tag opens a syllable that runs to the
// next tag, or to limit when it is the last one. text before the first tag
// starts at lineStart; lineStart < 0 drops it.
func (p *EnhancedLRCParser) syllables(body string, lineStart, limit int, meta metadata) []lyrics.Syllable {
	idx := enhancedInlineRegex.FindAllStringSubmatchIndex(body, -1)
	if len(idx) == 0 {
		if lineStart < 0 || strings.TrimSpace(body) == "" {
			return nil
		}
		return []lyrics.Syllable{{
			Content: strings.TrimSpace(body),
			Start:   lineStart,
			End:     max(limit, lineStart),
		}}
	}

	times := make([]int, len(idx))
	for k, loc := range idx {
		times[k] = meta.shift(timecode.Parse(body[loc[2]:loc[3]]))
	}

	var out []lyrics.Syllable
	if lead := body[:idx[0][0]]; lineStart >= 0 && strings.TrimSpace(lead) != "" {
		out = append(out, lyrics.Syllable{Content: lead, Start: lineStart, End: times[0]})
	}
	for k, loc := range idx {
		segEnd := len(body)
		end := max(limit, times[k])
		if k+1 < len(idx) {
			segEnd = idx[k+1][0]
			end = times[k+1]
		}
		content := body[loc[1]:segEnd]
		if content == "" {
			continue
		}
		out = append(out, lyrics.Syllable{Content: content, Start: times[k], End: end})
	}

	if n := len(out); n > 0 {
		out[n-1].Content = strings.TrimRight(out[n-1].Content, " \t")
		if out[n-1].Content == "" {
			out = out[:n-1]
		}
	}
	return out
}
