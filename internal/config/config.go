package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// environment variable names
const (
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvVerbose         = "LYRISYNC_VERBOSE"
)

// settings read from the environment
type Config struct {
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Verbose         bool
}

// loads the given .env files (default ".env") into the environment, then
// reads Config. missing files are ignored; variables already set win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// reads Config from the current environment
func FromEnv() Config {
	verbose, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvVerbose)))
	return Config{
		GeminiAPIKey:    os.Getenv(EnvGeminiAPIKey),
		OpenAIAPIKey:    os.Getenv(EnvOpenAIAPIKey),
		AnthropicAPIKey: os.Getenv(EnvAnthropicAPIKey),
		Verbose:         verbose,
	}
}

// api key for a translation provider, "" when unknown or unset
func (c Config) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return ""
	}
}
