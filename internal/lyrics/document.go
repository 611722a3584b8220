package lyrics

import "sort"

// parsed lyrics: lines ordered by start (ties keep input order), possibly
// overlapping. a Document is never modified after NewDocument returns, so it
// can be queried from any number of goroutines.
type Document struct {
	Title   string
	ID      string
	Artists []Artist

	lines []Line
	// maxEnd[i] is the largest end among lines[0..i]
	maxEnd []int
}

// builds a document from lines. lines with end before start are dropped and
// the rest are stably sorted by start.
func NewDocument(lines []Line) *Document {
	kept := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l == nil {
			continue
		}
		if s := l.Span(); s.End < s.Start {
			continue
		}
		kept = append(kept, l)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Span().Start < kept[j].Span().Start
	})

	maxEnd := make([]int, len(kept))
	for i, l := range kept {
		maxEnd[i] = l.Span().End
		if i > 0 && maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &Document{lines: kept, maxEnd: maxEnd}
}

// lines in order. the slice is shared and must not be modified.
func (d *Document) Lines() []Line {
	return d.lines
}

func (d *Document) Len() int {
	return len(d.lines)
}

func (d *Document) Line(i int) Line {
	return d.lines[i]
}

func (d *Document) IsEmpty() bool {
	return len(d.lines) == 0
}

func (d *Document) withLines(lines []Line) *Document {
	out := NewDocument(lines)
	out.Title = d.Title
	out.ID = d.ID
	out.Artists = d.Artists
	return out
}

// copy with id replaced
func (d *Document) WithID(id string) *Document {
	out := *d
	out.ID = id
	return &out
}

// copy whose lines are fn applied to every line
func (d *Document) MapLines(fn func(i int, l Line) Line) *Document {
	lines := make([]Line, len(d.lines))
	for i, l := range d.lines {
		lines[i] = fn(i, l)
	}
	return d.withLines(lines)
}

// copy where Unbounded ends are replaced by ms, or by the line start when
// ms comes before it
func (d *Document) Clamp(ms int) *Document {
	return d.MapLines(func(_ int, l Line) Line {
		s := l.Span()
		if s.End != Unbounded {
			return l
		}
		end := max(ms, s.Start)
		switch l := l.(type) {
		case PlainLine:
			l.End = end
			return l
		case KaraokeLine:
			l.End = end
			if n := len(l.Syllables); n > 0 && l.Syllables[n-1].End == Unbounded {
				syl := make([]Syllable, n)
				copy(syl, l.Syllables)
				syl[n-1].End = max(end, syl[n-1].Start)
				l.Syllables = syl
			}
			return l
		}
		return l
	})
}

// index of the first line active at ms. when none is active it returns the
// index of the first line starting after ms, or Len() past the last line.
func (d *Document) FirstHighlightIndex(ms int) int {
	n := len(d.lines)
	i := sort.Search(n, func(i int) bool { return d.maxEnd[i] > ms })
	if i < n && d.lines[i].Span().Start <= ms {
		return i
	}
	return sort.Search(n, func(i int) bool { return d.lines[i].Span().Start > ms })
}

// ascending indices of every line active at ms, empty when none is
func (d *Document) AllHighlightIndices(ms int) []int {
	n := len(d.lines)
	// every active line sits in [lo, hi): earlier lines all ended by ms,
	// later lines all start after it
	lo := sort.Search(n, func(i int) bool { return d.maxEnd[i] > ms })
	hi := sort.Search(n, func(i int) bool { return d.lines[i].Span().Start > ms })

	out := []int{}
	for i := lo; i < hi; i++ {
		if d.lines[i].Span().Contains(ms) {
			out = append(out, i)
		}
	}
	return out
}
