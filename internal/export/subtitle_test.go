package export

import (
	"strings"
	"testing"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

func TestSRTExport(t *testing.T) {
	got := (&SRTExporter{}).Export(sampleDocument())
	want := "1\n" +
		"00:00:01,000 --> 00:00:03,000\n" +
		"Rock & roll\n摇滚\n\n" +
		"2\n" +
		"00:00:05,000 --> 00:00:06,000\n" +
		"<reply>\n\n"

	if got != want {
		t.Errorf("unexpected SRT output:\n%q\nexpected:\n%q", got, want)
	}
}

func TestVTTExportOpenEnd(t *testing.T) {
	doc := lyrics.NewDocument([]lyrics.Line{
		lyrics.PlainLine{Timing: lyrics.Timing{Start: 3723456, End: lyrics.Unbounded}, Content: "last"},
		lyrics.PlainLine{Timing: lyrics.Timing{Start: 0, End: 1000}, Content: "  "},
	})
	got := (&VTTExporter{}).Export(doc)
	want := "WEBVTT\n\n" +
		"1\n" +
		"01:02:03.456 --> 01:02:08.456\n" +
		"last\n\n"

	if got != want {
		t.Errorf("unexpected VTT output:\n%q\nexpected:\n%q", got, want)
	}
}

func TestASSExport(t *testing.T) {
	out := (&ASSExporter{}).Export(sampleDocument())

	if !strings.Contains(out, "Title: Test & Song\n") {
		t.Error("expected document title in script info")
	}
	for _, style := range []string{"Style: Default,", "Style: Lead,", "Style: Duet,", "Style: Background,"} {
		if !strings.Contains(out, style) {
			t.Errorf("expected %q in styles", style)
		}
	}

	wantEvents := []string{
		`Dialogue: 0,0:00:01.00,0:00:03.00,Lead,,0,0,0,karaoke,{\kf50}Rock {\kf50}& {\kf100}roll\N摇滚`,
		`Dialogue: 1,0:00:02.00,0:00:02.80,Background,,0,0,0,karaoke,{\kf80}ooh`,
		`Dialogue: 0,0:00:05.00,0:00:06.00,Duet,,0,0,0,karaoke,{\kf100}<reply>`,
	}
	for _, want := range wantEvents {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("expected event %q in output:\n%s", want, out)
		}
	}
}

func TestASSKaraokeText(t *testing.T) {
	tests := []struct {
		name string
		line lyrics.KaraokeLine
		want string
	}{
		{
			name: "lead-in and inner gap",
			line: lyrics.KaraokeLine{
				Timing: lyrics.Timing{Start: 1000, End: 2500},
				Syllables: []lyrics.Syllable{
					{Content: "a", Start: 1200, End: 1500},
					{Content: "b", Start: 1800, End: 2500},
				},
			},
			want: `{\k20}{\kf30}a{\k30}{\kf70}b`,
		},
		{
			name: "braces and open end",
			line: lyrics.KaraokeLine{
				Timing:    lyrics.Timing{Start: 0, End: lyrics.Unbounded},
				Syllables: []lyrics.Syllable{{Content: "{x}", Start: 0, End: lyrics.Unbounded}},
			},
			want: `{\kf0}(x)`,
		},
		{
			name: "plain line",
			line: lyrics.PlainLine{Timing: lyrics.Timing{Start: 0, End: 1234}, Content: "hi"}.ToKaraoke(),
			want: `{\kf123}hi`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assKaraokeText(tt.line); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
