package translate

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Japanese"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryReturnsAnthropicTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Chinese"}
	translator, err := Factory(ctx, ProviderAnthropic, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	at, ok := translator.(*AnthropicTranslator)
	if !ok {
		t.Fatalf("expected *AnthropicTranslator, got %T", translator)
	}
	if at.model == "" {
		t.Error("expected a default model")
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	ctx := context.Background()
	opts := Options{} // no TargetLanguage
	_, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	for _, p := range Providers() {
		if _, err := Factory(ctx, p, "", Options{TargetLanguage: "French"}); err == nil {
			t.Errorf("%s: expected error for missing API key", p)
		}
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "French"}
	_, err := Factory(ctx, Provider("unknown"), "fake-key", opts)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestTranslatorsImplementConcurrentTranslator(t *testing.T) {
	ctx := context.Background()
	for _, p := range Providers() {
		translator, err := Factory(ctx, p, "fake-key", Options{TargetLanguage: "Korean"})
		if err != nil {
			t.Fatalf("%s: Factory error: %v", p, err)
		}
		if _, ok := translator.(ConcurrentTranslator); !ok {
			t.Errorf("%s translator should implement ConcurrentTranslator", p)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		InputLanguage:  "English",
		TargetLanguage: "Japanese",
		Prompt:         "keep it poetic",
	}
	items := []TranslationItem{
		{Index: 0, Text: "Hello world"},
		{Index: 4, Text: "Goodbye"},
	}

	prompt := BuildPrompt(opts, items)

	for _, want := range []string{
		"English song lyric lines",
		"to Japanese",
		"Hello world",
		`"index": 4`,
		"Additional instructions: keep it poetic",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	prompt := BuildPrompt(Options{TargetLanguage: "Spanish"}, []TranslationItem{{Index: 0, Text: "Hello"}})

	if strings.Contains(prompt, "English") || strings.Contains(prompt, "Additional instructions") {
		t.Error("prompt should not contain unset options")
	}
	if !strings.Contains(prompt, "song lyric lines to Spanish") {
		t.Error("prompt should contain target language")
	}
}

type fakeTranslator struct{}

func (f *fakeTranslator) Translate(ctx context.Context, items []TranslationItem) ([]TranslationResult, error) {
	return []TranslationResult{{Index: 0, Text: "sequential"}}, nil
}

type fakeConcurrentTranslator struct {
	fakeTranslator
}

func (f *fakeConcurrentTranslator) TranslateWithConcurrency(
	ctx context.Context,
	items []TranslationItem,
	concurrency int,
) ([]TranslationResult, error) {
	return []TranslationResult{{Index: 0, Text: "concurrent"}}, nil
}

func TestRunPrefersConcurrentTranslator(t *testing.T) {
	ctx := context.Background()
	items := []TranslationItem{{Index: 0, Text: "x"}}

	tests := []struct {
		name        string
		translator  Translator
		concurrency int
		want        string
	}{
		{"plain translator", &fakeTranslator{}, 4, "sequential"},
		{"concurrent translator", &fakeConcurrentTranslator{}, 4, "concurrent"},
		{"concurrency of one", &fakeConcurrentTranslator{}, 1, "sequential"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Run(ctx, tt.translator, items, tt.concurrency)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if results[0].Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, results[0].Text)
			}
		})
	}
}

// Integration test: only runs if OPENAI_API_KEY is set
func TestOpenAITranslatorIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := NewOpenAITranslator(ctx, apiKey, opts)
	if err != nil {
		t.Fatalf("NewOpenAITranslator error: %v", err)
	}

	items := []TranslationItem{
		{Index: 0, Text: "I will always love you"},
		{Index: 1, Text: "Goodbye, my friend"},
	}

	results, err := translator.Translate(ctx, items)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Text == "" {
			t.Errorf("result index %d has empty text", r.Index)
		}
	}
}
