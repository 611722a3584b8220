// Package parser turns raw lyrics text into lyrics.Document values.
//
// Parsers never fail: fragments that do not parse are skipped or zeroed and
// the worst outcome of bad input is a shorter document. Callers that need to
// know whether text is in the expected format should ask the guess package
// first.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

var ErrUnsupportedFormat = errors.New("unsupported lyrics format")

// interface for parsing one lyrics grammar
type Parser interface {
	Parse(text string) *lyrics.Document
	ParseLines(lines []string) *lyrics.Document
}

type options struct {
	log *zap.Logger
}

type Option func(*options)

// logs dropped fragments at debug level
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// creates Parser based on format
func New(format lyrics.Format, opts ...Option) (Parser, error) {
	switch format {
	case lyrics.FormatLRC:
		return NewLRCParser(opts...), nil
	case lyrics.FormatEnhancedLRC:
		return NewEnhancedLRCParser(opts...), nil
	case lyrics.FormatLyricifySyllable:
		return NewLyricifyParser(opts...), nil
	case lyrics.FormatKRC:
		return NewKRCParser(opts...), nil
	case lyrics.FormatTTML:
		return NewTTMLParser(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// splits on "\n" and drops a trailing "\r" from each line
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// karaoke line bounded by its syllables, end never before start
func boundedBySyllables(line lyrics.KaraokeLine) lyrics.KaraokeLine {
	n := len(line.Syllables)
	if n == 0 {
		return line
	}
	line.Start = line.Syllables[0].Start
	line.End = max(line.Syllables[n-1].End, line.Start)
	return line
}
