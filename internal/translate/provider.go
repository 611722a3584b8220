package translate

import (
	"context"
	"fmt"
	"strings"
)

// sends one prompt to a model and returns its text reply
type completeFunc func(ctx context.Context, prompt string) (string, error)

// batching and response parsing shared by every provider
type batcher struct {
	provider Provider
	options  Options
	complete completeFunc
}

// translates batches one after another
func (b *batcher) Translate(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	return translateInBatches(ctx, items, b.options.batchSize(), 1, b.translateBatch)
}

func (b *batcher) TranslateWithConcurrency(
	ctx context.Context,
	items []TranslationItem,
	concurrency int,
) ([]TranslationResult, error) {
	return translateInBatches(ctx, items, b.options.batchSize(), concurrency, b.translateBatch)
}

func (b *batcher) translateBatch(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	text, err := b.complete(ctx, BuildPrompt(b.options, items))
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	return parseResults(b.provider, strings.TrimSpace(text), len(items))
}

func (b *batcher) Close() error {
	return nil
}
