// Package phonetic fills missing readings of Japanese karaoke lines with
// kana produced by morphological analysis.
package phonetic

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

// IPA feature holding the katakana reading
const readingFeature = 7

type Annotator struct {
	t        *tokenizer.Tokenizer
	hiragana bool
}

type Option func(*Annotator)

// readings in hiragana instead of katakana
func WithHiragana() Option {
	return func(a *Annotator) {
		a.hiragana = true
	}
}

func NewAnnotator(opts ...Option) (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	a := &Annotator{t: t}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// kana reading of text. tokens without a dictionary reading (latin words,
// symbols) are kept as written.
func (a *Annotator) Reading(text string) string {
	var sb strings.Builder
	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		features := token.Features()
		if len(features) > readingFeature && features[readingFeature] != "*" {
			sb.WriteString(features[readingFeature])
			continue
		}
		sb.WriteString(token.Surface)
	}

	if a.hiragana {
		return toHiragana(sb.String())
	}
	return sb.String()
}

// copy of doc where karaoke lines with Japanese text get readings: every
// Japanese syllable without one, and the line itself when it has none.
// existing readings are kept; plain lines have nowhere to store one.
func (a *Annotator) Annotate(doc *lyrics.Document) *lyrics.Document {
	return doc.MapLines(func(_ int, l lyrics.Line) lyrics.Line {
		kl, ok := l.(lyrics.KaraokeLine)
		if !ok || !HasJapanese(kl.Text()) {
			return l
		}

		syllables := make([]lyrics.Syllable, len(kl.Syllables))
		copy(syllables, kl.Syllables)
		for i, s := range syllables {
			if s.Phonetic == "" && HasJapanese(s.Content) {
				syllables[i].Phonetic = a.Reading(strings.TrimSpace(s.Content))
			}
		}
		kl.Syllables = syllables

		if kl.Phonetic == "" {
			kl.Phonetic = a.Reading(strings.TrimSpace(kl.Text()))
		}
		return kl
	})
}

// reports whether s contains kana or kanji
func HasJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

func toHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'ァ' && r <= 'ヶ' {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
