package guess

import (
	"reflect"
	"testing"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

func TestGuess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  lyrics.Format
		ok    bool
	}{
		{
			name:  "ttml",
			input: `<?xml version="1.0"?><tt xmlns="http://www.w3.org/ns/ttml" xml:lang="en"><body/></tt>`,
			want:  lyrics.FormatTTML,
			ok:    true,
		},
		{
			name: "ttml root split across lines",
			input: "<tt\n  xmlns=\"http://www.w3.org/ns/ttml\"\n  xmlns:ttm=\"http://www.w3.org/ns/ttml#metadata\">\n" +
				"<body><div><p begin=\"00:01.000\" end=\"00:02.000\">hi</p></div></body></tt>",
			want: lyrics.FormatTTML,
			ok:   true,
		},
		{
			name:  "lrc",
			input: "[ti:Song]\n[00:01.00]Hello\n[00:02.50]World",
			want:  lyrics.FormatLRC,
			ok:    true,
		},
		{
			name:  "enhanced lrc by voice tag",
			input: "[00:01.00]v1:Hello\n[00:02.00]v2:World",
			want:  lyrics.FormatEnhancedLRC,
			ok:    true,
		},
		{
			name:  "enhanced lrc by inline tags",
			input: "[00:01.00]<00:01.00>Hel<00:01.50>lo<00:02.00>",
			want:  lyrics.FormatEnhancedLRC,
			ok:    true,
		},
		{
			name:  "lyricify syllable",
			input: "[1]Hello(1000,500)world(1500,400)",
			want:  lyrics.FormatLyricifySyllable,
			ok:    true,
		},
		{
			name:  "krc",
			input: "[ti:x]\n  [1000,2000]<0,500,0>你<500,500,0>好  \n",
			want:  lyrics.FormatKRC,
			ok:    true,
		},
		{
			name:  "krc line without syllable text is not enough",
			input: "[1000,2000]<0,500,0>",
			ok:    false,
		},
		{
			name:  "plain text",
			input: "just some words\nno timing here",
			ok:    false,
		},
		{
			name:  "empty",
			input: "",
			ok:    false,
		},
	}

	g := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Guess(tt.input)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (%s)", tt.ok, ok, got)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRegisterPutsNewestFirst(t *testing.T) {
	g := New()
	custom := lyrics.Format("custom")
	g.Register(custom, func(string) bool { return true })

	got, ok := g.Guess("[00:01.00]Hello")
	if !ok || got != custom {
		t.Errorf("expected the last registered detector to win, got %s", got)
	}

	want := []lyrics.Format{
		custom,
		lyrics.FormatKRC,
		lyrics.FormatLyricifySyllable,
		lyrics.FormatEnhancedLRC,
		lyrics.FormatLRC,
		lyrics.FormatTTML,
	}
	if !reflect.DeepEqual(g.Formats(), want) {
		t.Errorf("expected order %v, got %v", want, g.Formats())
	}
}

func TestGuessLines(t *testing.T) {
	got, ok := New().GuessLines([]string{"[00:01.00]a", "[00:02.00]b"})
	if !ok || got != lyrics.FormatLRC {
		t.Errorf("expected lrc, got %s", got)
	}
}
