package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/parser"
)

func sampleDocument() *lyrics.Document {
	doc := lyrics.NewDocument([]lyrics.Line{
		lyrics.KaraokeLine{
			Timing: lyrics.Timing{Start: 1000, End: 3000},
			Syllables: []lyrics.Syllable{
				{Content: "Rock ", Start: 1000, End: 1500},
				{Content: "& ", Start: 1500, End: 2000},
				{Content: "roll", Start: 2000, End: 3000},
			},
			Translation: "摇滚",
			Alignment:   lyrics.AlignmentStart,
		},
		lyrics.KaraokeLine{
			Timing:          lyrics.Timing{Start: 2000, End: 2800},
			Syllables:       []lyrics.Syllable{{Content: "ooh", Start: 2000, End: 2800}},
			IsAccompaniment: true,
			Alignment:       lyrics.AlignmentStart,
		},
		lyrics.KaraokeLine{
			Timing:    lyrics.Timing{Start: 5000, End: 6000},
			Syllables: []lyrics.Syllable{{Content: "<reply>", Start: 5000, End: 6000}},
			Alignment: lyrics.AlignmentEnd,
		},
	})
	doc.Title = "Test & Song"
	doc.Artists = []lyrics.Artist{{Type: "artist", Name: "Alice"}, {Type: "artist", Name: "Bob"}}
	return doc
}

func TestNew(t *testing.T) {
	for _, f := range Formats() {
		if _, err := New(f); err != nil {
			t.Errorf("New(%s) returned error: %v", f, err)
		}
	}
	if _, err := New(Format("docx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLRCExport(t *testing.T) {
	got := (&LRCExporter{}).Export(sampleDocument())
	want := "[ti:Test & Song]\n" +
		"[ar:Alice/Bob]\n" +
		"[00:01.000]Rock & roll\n" +
		"[00:01.000]摇滚\n" +
		"[00:03.000]\n" +
		"[00:05.000]<reply>\n"

	if got != want {
		t.Errorf("unexpected LRC output:\n%s\nexpected:\n%s", got, want)
	}
}

func TestLRCExportReparses(t *testing.T) {
	src := "[ti:Round]\n[00:01.00]A\n[00:01.00]A translated\n[00:04.00]\n[00:05.00]B"
	doc := parser.NewLRCParser().Parse(src)
	again := parser.NewLRCParser().Parse((&LRCExporter{}).Export(doc))

	if again.Len() != doc.Len() || again.Title != "Round" {
		t.Fatalf("expected %d lines titled Round, got %d %q", doc.Len(), again.Len(), again.Title)
	}
	for i := range doc.Lines() {
		a, b := doc.Line(i).(lyrics.PlainLine), again.Line(i).(lyrics.PlainLine)
		if a != b {
			t.Errorf("line %d: expected %+v, got %+v", i, a, b)
		}
	}
}

func TestLRCExportEmpty(t *testing.T) {
	if got := (&LRCExporter{}).Export(lyrics.NewDocument(nil)); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTTMLExportStructure(t *testing.T) {
	out := (&TTMLExporter{TranslationLanguage: "zh-CN"}).Export(sampleDocument())

	root, err := xmlquery.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("exported TTML is not well formed: %v", err)
	}

	paragraphs := xmlquery.Find(root, "//p")
	if len(paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paragraphs))
	}
	agent := xpath.MustCompile("string(//p[3]/@*[local-name()='agent'])").Evaluate(xmlquery.CreateXPathNavigator(root)).(string)
	if agent != "v2" {
		t.Errorf("expected third paragraph on v2, got %q", agent)
	}

	agents := xmlquery.Find(root, "//metadata/*[local-name()='agent']")
	if len(agents) != 2 {
		t.Errorf("expected two agents for a duet, got %d", len(agents))
	}

	expr := xpath.MustCompile("count(//span[@*[local-name()='role']='x-bg'])")
	if n := expr.Evaluate(xmlquery.CreateXPathNavigator(root)).(float64); n != 1 {
		t.Errorf("expected one background span, got %v", n)
	}

	tr := xmlquery.FindOne(root, "//span[@*[local-name()='role']='x-translation']")
	if tr == nil || tr.InnerText() != "摇滚" {
		t.Fatalf("expected translation span, got %v", tr)
	}
	lang := xpath.MustCompile("string(//span[@*[local-name()='role']='x-translation']/@*[local-name()='lang'])").
		Evaluate(xmlquery.CreateXPathNavigator(root)).(string)
	if lang != "zh-CN" {
		t.Errorf("expected translation language zh-CN, got %q", lang)
	}

	if reply := xmlquery.FindOne(root, "//p[3]/span"); reply == nil || reply.InnerText() != "<reply>" {
		t.Errorf("expected escaped syllable text to read back as <reply>")
	}
}

func TestTTMLExportReparses(t *testing.T) {
	src := sampleDocument()
	doc := parser.NewTTMLParser().Parse((&TTMLExporter{}).Export(src))

	if doc.Len() != src.Len() {
		t.Fatalf("expected %d lines, got %d", src.Len(), doc.Len())
	}
	if doc.Title != src.Title {
		t.Errorf("expected title %q, got %q", src.Title, doc.Title)
	}
	for i := range src.Lines() {
		want := src.Line(i).(lyrics.KaraokeLine)
		got := doc.Line(i).(lyrics.KaraokeLine)
		if got.Text() != want.Text() {
			t.Errorf("line %d: expected text %q, got %q", i, want.Text(), got.Text())
		}
		if got.Start != want.Start || got.End != want.End {
			t.Errorf("line %d: expected %d-%d, got %d-%d", i, want.Start, want.End, got.Start, got.End)
		}
		if got.Alignment != want.Alignment || got.IsAccompaniment != want.IsAccompaniment {
			t.Errorf("line %d: expected %s/%v, got %s/%v", i,
				want.Alignment, want.IsAccompaniment, got.Alignment, got.IsAccompaniment)
		}
		if got.Translation != want.Translation {
			t.Errorf("line %d: expected translation %q, got %q", i, want.Translation, got.Translation)
		}
	}
}

func TestTTMLExportPlainLines(t *testing.T) {
	doc := lyrics.NewDocument([]lyrics.Line{
		lyrics.PlainLine{Timing: lyrics.Timing{Start: 0, End: 1000}, Content: "first"},
		lyrics.PlainLine{Timing: lyrics.Timing{Start: 1000, End: lyrics.Unbounded}, Content: "last"},
	})
	out := (&TTMLExporter{}).Export(doc)

	if strings.Contains(out, "<metadata>") {
		t.Error("expected no metadata without title or duet")
	}
	root, err := xmlquery.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("exported TTML is not well formed: %v", err)
	}
	last := xmlquery.FindOne(root, "//p[2]")
	if last == nil {
		t.Fatal("expected second paragraph")
	}
	if last.SelectAttr("end") != "00:00:01.000" {
		t.Errorf("expected open end written as the start, got %q", last.SelectAttr("end"))
	}
}

func TestJSONExport(t *testing.T) {
	doc := lyrics.NewDocument([]lyrics.Line{
		lyrics.PlainLine{Timing: lyrics.Timing{Start: 0, End: lyrics.Unbounded}, Content: "open", Translation: "abierto"},
	}).WithID("abc")

	var decoded struct {
		ID    string `json:"id"`
		Lines []struct {
			Kind        string `json:"kind"`
			End         *int   `json:"end"`
			Content     string `json:"content"`
			Translation string `json:"translation"`
		} `json:"lines"`
	}
	if err := json.Unmarshal([]byte((&JSONExporter{}).Export(doc)), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.ID != "abc" || len(decoded.Lines) != 1 {
		t.Fatalf("unexpected document %+v", decoded)
	}
	l := decoded.Lines[0]
	if l.Kind != "plain" || l.End != nil || l.Content != "open" || l.Translation != "abierto" {
		t.Errorf("unexpected line %+v", l)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.lrc")
	if err := WriteFile(&LRCExporter{}, sampleDocument(), path); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "[ti:Test & Song]") {
		t.Errorf("unexpected file content %q", string(data))
	}
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.lrc", FormatLRC, true},
		{"a.TTML", FormatTTML, true},
		{"a.xml", FormatTTML, true},
		{"a.json", FormatJSON, true},
		{"a.ssa", FormatASS, true},
		{"a.vtt", FormatVTT, true},
		{"a.krc", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFromExtension(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatFromExtension(%s): expected %s/%v, got %s/%v", tt.path, tt.want, tt.ok, got, ok)
		}
	}
	if ExtensionForFormat(FormatJSON) != ".json" {
		t.Errorf("expected .json extension")
	}
}

func TestTTMLExportTransliterations(t *testing.T) {
	doc := lyrics.NewDocument([]lyrics.Line{
		lyrics.KaraokeLine{
			Timing:    lyrics.Timing{Start: 0, End: 1000},
			Syllables: []lyrics.Syllable{{Content: "東京", Start: 0, End: 1000}},
			Phonetic:  "トウキョウ",
		},
		lyrics.KaraokeLine{
			Timing:    lyrics.Timing{Start: 1000, End: 2000},
			Syllables: []lyrics.Syllable{{Content: "hello", Start: 1000, End: 2000}},
		},
	})
	out := (&TTMLExporter{}).Export(doc)

	root, err := xmlquery.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("exported TTML is not well formed: %v", err)
	}
	text := xmlquery.FindOne(root, "//*[local-name()='transliteration']/*[local-name()='text']")
	if text == nil || text.InnerText() != "トウキョウ" {
		t.Fatalf("expected transliteration entry, got %v", text)
	}

	again := parser.NewTTMLParser().Parse(out)
	if got := again.Line(0).(lyrics.KaraokeLine).Phonetic; got != "トウキョウ" {
		t.Errorf("expected reading to survive a round trip, got %q", got)
	}
	if got := again.Line(1).(lyrics.KaraokeLine).Phonetic; got != "" {
		t.Errorf("expected no reading on second line, got %q", got)
	}
}
