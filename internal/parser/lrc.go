package parser

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/timecode"
)

var lrcTimeTagRegex = regexp.MustCompile(`\[(\d{1,2}:\d{1,2}\.\d{2,3})]`)

// parses line-timed [mm:ss.xx]text lyrics
type LRCParser struct {
	log *zap.Logger
}

func NewLRCParser(opts ...Option) *LRCParser {
	o := newOptions(opts)
	return &LRCParser{log: o.log}
}

// single [time]text occurrence before pairing
type timedText struct {
	start   int
	content string
}

func (p *LRCParser) Parse(text string) *lyrics.Document {
	return p.ParseLines(splitLines(text))
}

// ParseLines sorts tags by time (stable) before pairing, so a translation
// block listed after all the original lines still pairs with its line; the
// first of two same-time tags in input order is the line, the second its
// translation.
func (p *LRCParser) ParseLines(lines []string) *lyrics.Document {
	body, meta := stripMetadata(lines)

	var raw []timedText
	for _, line := range body {
		raw = append(raw, extractTimedText(line, meta)...)
	}
	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].start < raw[j].start
	})

	// a line sharing its predecessor's start is that line's translation
	type paired struct {
		timedText
		translation string
	}
	var merged []paired
	for i := 0; i < len(raw); i++ {
		if i+1 < len(raw) && raw[i].start == raw[i+1].start {
			merged = append(merged, paired{raw[i], raw[i+1].content})
			i++
			continue
		}
		merged = append(merged, paired{timedText: raw[i]})
	}

	out := make([]lyrics.Line, 0, len(merged))
	for i, m := range merged {
		end := lyrics.Unbounded
		if i+1 < len(merged) {
			end = merged[i+1].start
		}
		// blank lines only mark where the previous line ends
		if strings.TrimSpace(m.content) == "" {
			continue
		}
		out = append(out, lyrics.PlainLine{
			Timing:      lyrics.Timing{Start: m.start, End: end},
			Content:     m.content,
			Translation: m.translation,
		})
	}

	p.log.Debug("parsed lrc",
		zap.Int("tags", len(raw)),
		zap.Int("lines", len(out)),
	)

	return meta.apply(lyrics.NewDocument(out))
}

// every [time] tag on one physical line. a tag is followed by the text up
// to the next tag; tags directly followed by another tag share the text of
// the first tag that has some, so "[00:01.00][00:30.00]chorus" yields two
// lines.
func extractTimedText(line string, meta metadata) []timedText {
	idx := lrcTimeTagRegex.FindAllStringSubmatchIndex(line, -1)
	if len(idx) == 0 {
		return nil
	}

	out := make([]timedText, len(idx))
	shared := ""
	for k := len(idx) - 1; k >= 0; k-- {
		segEnd := len(line)
		if k+1 < len(idx) {
			segEnd = idx[k+1][0]
		}
		content := strings.TrimSpace(line[idx[k][1]:segEnd])
		if content == "" && k+1 < len(idx) {
			content = shared
		}
		shared = content
		out[k] = timedText{
			start:   meta.shift(timecode.Parse(line[idx[k][2]:idx[k][3]])),
			content: content,
		}
	}
	return out
}
