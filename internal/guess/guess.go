// Package guess sniffs raw lyrics text and names the grammar it is written in.
//
// Detectors are tried most recently registered first and the first hit wins.
// They are not mutually exclusive (an enhanced LRC file is also a valid LRC
// file), so registration order is the precedence.
package guess

import (
	"regexp"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// reports whether text looks like one format
type Detector func(text string) bool

type entry struct {
	format lyrics.Format
	detect Detector
}

// ordered detector list, front entries win
type Guesser struct {
	entries []entry
}

var (
	ttmlRootRegex    = regexp.MustCompile(`<tt\b[^>]*xmlns[^>]*=\s*["']?http://www\.w3\.org/ns/ttml[^>]*>`)
	lrcLineRegex     = regexp.MustCompile(`\[\d{2}:\d{2}\.\d{2,3}].+`)
	voiceTagRegex    = regexp.MustCompile(`]v[12]:`)
	lrcTagRegex      = regexp.MustCompile(`\[\d{2}:\d{2}\.\d{2,3}]`)
	inlineTagRegex   = regexp.MustCompile(`<\d{2}:\d{2}\.\d{2,3}>`)
	lyricifyRegex    = regexp.MustCompile(`[a-zA-Z]+\s*\(\d+,\d+\)`)
	krcLineTimeRegex = regexp.MustCompile(`^\[\d+,\d+]`)
	krcWordTimeRegex = regexp.MustCompile(`<\d+,\d+,\d+>.`)
)

// guesser with the built-in detectors. enhanced LRC is registered after
// LRC so it is checked first; keep that order.
func New() *Guesser {
	g := &Guesser{}
	g.Register(lyrics.FormatTTML, IsTTML)
	g.Register(lyrics.FormatLRC, IsLRC)
	g.Register(lyrics.FormatEnhancedLRC, IsEnhancedLRC)
	g.Register(lyrics.FormatLyricifySyllable, IsLyricifySyllable)
	g.Register(lyrics.FormatKRC, IsKRC)
	return g
}

// adds a detector in front of every existing one
func (g *Guesser) Register(format lyrics.Format, detect Detector) {
	g.entries = append([]entry{{format: format, detect: detect}}, g.entries...)
}

// first matching format, false when nothing matches
func (g *Guesser) Guess(text string) (lyrics.Format, bool) {
	for _, e := range g.entries {
		if e.detect(text) {
			return e.format, true
		}
	}
	return "", false
}

// joins lines with "\n" and guesses
func (g *Guesser) GuessLines(lines []string) (lyrics.Format, bool) {
	return g.Guess(strings.Join(lines, "\n"))
}

// registered formats, highest priority first
func (g *Guesser) Formats() []lyrics.Format {
	out := make([]lyrics.Format, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.format
	}
	return out
}

// root tt element declaring the TTML namespace
func IsTTML(text string) bool {
	return ttmlRootRegex.MatchString(text)
}

// at least one [mm:ss.xx] tag followed by content
func IsLRC(text string) bool {
	return lrcLineRegex.MatchString(text)
}

// a v1/v2 voice marker, or line tags mixed with inline <mm:ss.xx> tags
func IsEnhancedLRC(text string) bool {
	if voiceTagRegex.MatchString(text) {
		return true
	}
	return lrcTagRegex.MatchString(text) && inlineTagRegex.MatchString(text)
}

// a word(start,duration) token
func IsLyricifySyllable(text string) bool {
	return lyricifyRegex.MatchString(text)
}

// a trimmed line with a [start,duration] tag and a <offset,duration,flag>
// syllable tag followed by a character
func IsKRC(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if krcLineTimeRegex.MatchString(line) && krcWordTimeRegex.MatchString(line) {
			return true
		}
	}
	return false
}
