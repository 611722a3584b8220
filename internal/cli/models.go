package cli

import (
	"strings"

	"github.com/mgpai22/lyrisync/internal/translate"
)

var supportedModels = map[translate.Provider][]string{
	translate.ProviderGemini: {
		"gemini-3-pro-preview",
		"gemini-3-flash-preview",
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
	},
	translate.ProviderOpenAI: {
		"o1", "o3-mini", "o1-pro", "o3",
		"gpt-5", "gpt-5-nano", "gpt-5-mini", "gpt-5-pro",
		"gpt-5.1", "gpt-5.2", "gpt-5.2-pro",
	},
	translate.ProviderAnthropic: {
		"claude-haiku-4-5",
		"claude-sonnet-4-5",
		"claude-opus-4-1",
		"claude-opus-4-5",
	},
}

// reports whether model is a known model of provider
func isValidModel(provider translate.Provider, model string) bool {
	model = strings.ToLower(strings.TrimSpace(model))
	for _, m := range supportedModels[provider] {
		if m == model {
			return true
		}
	}
	return false
}

func modelList(provider translate.Provider) string {
	return strings.Join(supportedModels[provider], ", ")
}
