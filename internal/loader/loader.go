// Package loader guesses the format of raw lyrics text and parses it.
package loader

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/guess"
	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/parser"
)

var ErrUnknownFormat = errors.New("unknown lyrics format")

const bom = "\ufeff"

// parsed document and the format it was read as
type Result struct {
	Format   lyrics.Format
	Document *lyrics.Document
}

type options struct {
	format  lyrics.Format
	guesser *guess.Guesser
	log     *zap.Logger
}

type Option func(*options)

// skips guessing and parses as format
func WithFormat(format lyrics.Format) Option {
	return func(o *options) {
		o.format = format
	}
}

// guesses with g instead of the built-in detectors
func WithGuesser(g *guess.Guesser) Option {
	return func(o *options) {
		if g != nil {
			o.guesser = g
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// parses text in its guessed (or forced) format. the document id defaults to
// the BLAKE3-256 hex digest of the input.
func Load(text string, opts ...Option) (*Result, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	text = strings.TrimPrefix(text, bom)

	format := o.format
	if format == "" {
		if o.guesser == nil {
			o.guesser = guess.New()
		}
		f, ok := o.guesser.Guess(text)
		if !ok {
			return nil, ErrUnknownFormat
		}
		format = f
	}

	p, err := parser.New(format, parser.WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	doc := p.Parse(text)
	if doc.ID == "" {
		doc = doc.WithID(Fingerprint(text))
	}

	o.log.Debug("loaded lyrics",
		zap.String("format", string(format)),
		zap.Int("lines", doc.Len()),
	)

	return &Result{Format: format, Document: doc}, nil
}

// reads path and loads its content
func LoadFile(path string, opts ...Option) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}
	res, err := Load(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return res, nil
}

// hex BLAKE3-256 of text
func Fingerprint(text string) string {
	h := blake3.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
