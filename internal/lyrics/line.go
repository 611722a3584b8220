package lyrics

import (
	"math"
	"strings"
)

// open end of a line whose successor is unknown
const Unbounded = math.MaxInt32

// accompaniment lines stay focused this long around their bounds
const accompanimentFocusWindow = 800

// start and end in milliseconds, end >= start
type Timing struct {
	Start int
	End   int
}

func (t Timing) Span() Timing {
	return t
}

func (t Timing) Duration() int {
	return t.End - t.Start
}

// half-open: a line ending at t is no longer active at t
func (t Timing) Contains(ms int) bool {
	return t.Start <= ms && ms < t.End
}

// timed line, implemented only by PlainLine and KaraokeLine
type Line interface {
	Span() Timing
	Text() string
	isLine()
}

// which side of a two-speaker layout a line renders on
type Alignment int

const (
	AlignmentUnspecified Alignment = iota
	AlignmentStart
	AlignmentEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignmentStart:
		return "start"
	case AlignmentEnd:
		return "end"
	default:
		return "unspecified"
	}
}

// flips Start and End, Unspecified toggles to Start
func (a Alignment) Toggle() Alignment {
	if a == AlignmentStart {
		return AlignmentEnd
	}
	return AlignmentStart
}

// line-timed lyric line
type PlainLine struct {
	Timing
	Content     string
	Translation string
}

func (PlainLine) isLine() {}

func (l PlainLine) Text() string {
	return l.Content
}

// single-syllable karaoke line covering the whole plain line
func (l PlainLine) ToKaraoke() KaraokeLine {
	return KaraokeLine{
		Timing: l.Timing,
		Syllables: []Syllable{
			{Content: l.Content, Start: l.Start, End: l.End},
		},
		Translation: l.Translation,
		Alignment:   AlignmentUnspecified,
	}
}

// timed fragment of a karaoke line, trailing whitespace is significant
type Syllable struct {
	Content  string
	Start    int
	End      int
	Phonetic string
}

func (s Syllable) Duration() int {
	return s.End - s.Start
}

// syllable-timed lyric line
type KaraokeLine struct {
	Timing
	Syllables       []Syllable
	Translation     string
	Phonetic        string
	IsAccompaniment bool
	Alignment       Alignment
}

func (KaraokeLine) isLine() {}

func (l KaraokeLine) Text() string {
	var sb strings.Builder
	for _, s := range l.Syllables {
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// playback progress in [0, 1] at ms
func (l KaraokeLine) Progress(ms int) float64 {
	var p float64
	switch {
	case ms < l.Start:
		return 0
	case l.IsFocused(ms):
		if l.Duration() == 0 {
			return 1
		}
		p = float64(ms-l.Start) / float64(l.Duration())
	case ms > l.End:
		return 1
	}
	return math.Min(math.Max(p, 0), 1)
}

// accompaniment lines get a widened window so they fade in and out with
// the main line they decorate
func (l KaraokeLine) IsFocused(ms int) bool {
	if !l.IsAccompaniment {
		return l.Start <= ms && ms <= l.End
	}
	return l.Start-accompanimentFocusWindow <= ms &&
		ms <= l.End+accompanimentFocusWindow
}

// translation of either line kind
func TranslationOf(l Line) string {
	switch l := l.(type) {
	case PlainLine:
		return l.Translation
	case KaraokeLine:
		return l.Translation
	}
	return ""
}

// copy of l carrying translation
func WithTranslation(l Line, translation string) Line {
	switch l := l.(type) {
	case PlainLine:
		l.Translation = translation
		return l
	case KaraokeLine:
		l.Translation = translation
		return l
	}
	return l
}

// performer credit
type Artist struct {
	Type string `json:"type"`
	Name string `json:"name"`
}
