package lyrics

import (
	"reflect"
	"sync"
	"testing"
)

func plain(start, end int, content string) PlainLine {
	return PlainLine{Timing: Timing{Start: start, End: end}, Content: content}
}

func TestNewDocumentSortsStably(t *testing.T) {
	doc := NewDocument([]Line{
		plain(2000, 3000, "c"),
		plain(0, 1000, "a"),
		plain(2000, 2500, "d"),
		plain(1000, 2000, "b"),
	})

	var got []string
	for _, l := range doc.Lines() {
		got = append(got, l.Text())
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewDocumentDropsInvertedLines(t *testing.T) {
	doc := NewDocument([]Line{plain(0, 1000, "ok"), plain(2000, 1000, "bad"), nil})
	if doc.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", doc.Len())
	}
	if doc.Line(0).Text() != "ok" {
		t.Errorf("expected ok, got %s", doc.Line(0).Text())
	}
}

func TestFirstHighlightIndex(t *testing.T) {
	doc := NewDocument([]Line{
		plain(0, 1000, "a"),
		plain(1000, 2000, "b"),
		plain(2000, 3000, "c"),
	})

	tests := []struct {
		ms   int
		want int
	}{
		{500, 0},
		{0, 0},
		{1000, 1},
		{1999, 1},
		{2000, 2},
		{3000, 3},
		{5000, 3},
		{-10, 0},
	}

	for _, tt := range tests {
		if got := doc.FirstHighlightIndex(tt.ms); got != tt.want {
			t.Errorf("FirstHighlightIndex(%d): expected %d, got %d", tt.ms, tt.want, got)
		}
	}
}

func TestFirstHighlightIndexGaps(t *testing.T) {
	doc := NewDocument([]Line{
		plain(0, 1000, "a"),
		plain(4000, 5000, "b"),
	})

	if got := doc.FirstHighlightIndex(2000); got != 1 {
		t.Errorf("expected insertion point 1 inside a gap, got %d", got)
	}
	if got := NewDocument(nil).FirstHighlightIndex(100); got != 0 {
		t.Errorf("expected 0 for empty document, got %d", got)
	}
}

func TestFirstHighlightIndexWithLongEarlierLine(t *testing.T) {
	// the first line outlasts the second, so a plain binary search on
	// start/end would miss it
	doc := NewDocument([]Line{
		plain(0, 10000, "long"),
		plain(1000, 2000, "short"),
		plain(3000, 4000, "later"),
	})

	if got := doc.FirstHighlightIndex(3500); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := doc.AllHighlightIndices(3500); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("expected [0 2], got %v", got)
	}
}

func TestAllHighlightIndicesOverlap(t *testing.T) {
	main := KaraokeLine{Timing: Timing{Start: 0, End: 2000}}
	bg := KaraokeLine{Timing: Timing{Start: 500, End: 1500}, IsAccompaniment: true}
	doc := NewDocument([]Line{main, bg})

	tests := []struct {
		ms   int
		want []int
	}{
		{1000, []int{0, 1}},
		{100, []int{0}},
		{1500, []int{0}},
		{2500, []int{}},
	}

	for _, tt := range tests {
		if got := doc.AllHighlightIndices(tt.ms); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("AllHighlightIndices(%d): expected %v, got %v", tt.ms, tt.want, got)
		}
	}
}

func TestHighlightQueriesAreStableUnderSeeking(t *testing.T) {
	doc := NewDocument([]Line{
		plain(0, 1000, "a"),
		plain(500, 1500, "b"),
		plain(1000, 2000, "c"),
	})

	seeks := []int{1800, 200, 1200, 700, 1200, 200, 1800}
	first := map[int]int{}
	for _, ms := range seeks {
		got := doc.FirstHighlightIndex(ms)
		if prev, ok := first[ms]; ok && prev != got {
			t.Errorf("query at %d changed from %d to %d", ms, prev, got)
		}
		first[ms] = got
	}
}

func TestConcurrentQueries(t *testing.T) {
	var lines []Line
	for i := 0; i < 100; i++ {
		lines = append(lines, plain(i*1000, i*1000+1500, "x"))
	}
	doc := NewDocument(lines)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ms := 0; ms < 100000; ms += 250 {
				all := doc.AllHighlightIndices(ms)
				if len(all) > 0 && doc.FirstHighlightIndex(ms) != all[0] {
					t.Errorf("first highlight at %d disagrees with %v", ms, all)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestClamp(t *testing.T) {
	doc := NewDocument([]Line{
		plain(0, 1000, "a"),
		plain(1000, Unbounded, "b"),
	})
	doc.Title = "song"

	clamped := doc.Clamp(4000)
	if got := clamped.Line(1).Span().End; got != 4000 {
		t.Errorf("expected clamped end 4000, got %d", got)
	}
	if clamped.Title != "song" {
		t.Errorf("expected title to be carried over, got %q", clamped.Title)
	}
	if doc.Line(1).Span().End != Unbounded {
		t.Error("expected original document to be untouched")
	}

	early := doc.Clamp(500)
	if got := early.Line(1).Span().End; got != 1000 {
		t.Errorf("expected end clamped to start 1000, got %d", got)
	}
}

func TestWithID(t *testing.T) {
	doc := NewDocument([]Line{plain(0, 1000, "a")})
	tagged := doc.WithID("abc")
	if tagged.ID != "abc" || doc.ID != "" {
		t.Errorf("expected only the copy to carry the id, got %q and %q", tagged.ID, doc.ID)
	}
	if tagged.Len() != 1 {
		t.Errorf("expected lines to be shared, got %d", tagged.Len())
	}
}
