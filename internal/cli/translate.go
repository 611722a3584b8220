package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/lyrisync/internal/config"
	"github.com/mgpai22/lyrisync/internal/export"
	"github.com/mgpai22/lyrisync/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [lyrics_file]",
	Short: "Fill in missing lyric translations using AI",
	Long: `Translate the lines of a lyrics file that carry no translation yet.

Existing translations are kept. Translations are attached to their lines,
so TTML output gets translation spans and LRC output gets a second line
with the same time tag.

Examples:
  lyrisync translate song.ttml --target-language english
  lyrisync translate song.krc -t spanish --provider openai -o song.es.ttml
  lyrisync translate song.lrc -l japanese -t english --to json`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	addInputFlags(translateCmd)
	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("language", "l", "", "Language of the lyrics (optional)")
	translateCmd.Flags().
		String("to", "", "Output format ("+exportFormatList()+"), defaults by input format")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the model")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of lyric lines per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

// api key env var for provider
func apiKeyEnv(provider translate.Provider) string {
	switch provider {
	case translate.ProviderGemini:
		return config.EnvGeminiAPIKey
	case translate.ProviderOpenAI:
		return config.EnvOpenAIAPIKey
	case translate.ProviderAnthropic:
		return config.EnvAnthropicAPIKey
	default:
		return "API_KEY"
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	lyricsPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	to, _ := cmd.Flags().GetString("to")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	providerStr, _ := cmd.Flags().GetString("provider")
	prompt, _ := cmd.Flags().GetString("prompt")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")

	if strings.TrimSpace(targetLang) == "" {
		return fmt.Errorf("target language is required")
	}

	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider := translate.Provider(strings.ToLower(providerStr))

	if apiKey == "" {
		apiKey = cfg.APIKey(string(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnv(provider),
		)
	}

	if model != "" && !modelOverride && !isValidModel(provider, model) {
		return fmt.Errorf(
			"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
			provider,
			model,
			modelList(provider),
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	res, err := loadLyrics(cmd, lyricsPath)
	if err != nil {
		return err
	}
	if res.Document.IsEmpty() {
		return fmt.Errorf("lyrics file contains no lines")
	}

	format, err := resolveExportFormat(to, outputPath, defaultExportFormat(res.Format))
	if err != nil {
		return err
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(lyricsPath, filepath.Ext(lyricsPath))
		outputPath = fmt.Sprintf(
			"%s.%s%s",
			baseName,
			strings.ToLower(strings.ReplaceAll(strings.TrimSpace(targetLang), " ", "-")),
			export.ExtensionForFormat(format),
		)
	}

	logger.Infow("Starting lyrics translation",
		"input", lyricsPath,
		"output", outputPath,
		"target_language", targetLang,
		"input_language", inputLang,
		"provider", provider,
		"model", model,
	)

	items := translate.Items(res.Document)
	doc := res.Document
	if len(items) == 0 {
		logger.Infow("Every line already has a translation")
	} else {
		translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
			InputLanguage:  inputLang,
			TargetLanguage: targetLang,
			Model:          model,
			Prompt:         prompt,
			BatchSize:      batchSize,
		})
		if err != nil {
			return fmt.Errorf("failed to create translator: %w", err)
		}

		logger.Infow("Translating lyrics",
			"items", len(items),
			"concurrency", concurrency,
		)

		results, err := translate.Run(ctx, translator, items, concurrency)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		logger.Infow("Translation complete",
			"results", len(results),
		)

		var skipped int
		doc, skipped = translate.Apply(doc, results)
		if skipped > 0 {
			logger.Warnw("Skipped translation results",
				"skipped", skipped,
				"lines", doc.Len(),
			)
		}
	}

	e, err := export.New(format)
	if err != nil {
		return err
	}
	if te, ok := e.(*export.TTMLExporter); ok {
		te.TranslationLanguage = targetLang
	}
	if err := writeDocument(cmd, doc, e, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Lyrics translated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Lines: %d\n", doc.Len())
	fmt.Fprintf(out, "  Translated: %d\n", len(items))
	fmt.Fprintf(out, "  Target language: %s\n", targetLang)

	return nil
}
