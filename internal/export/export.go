// Package export renders a lyrics.Document back to text formats.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyrisync/internal/lyrics"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// output text formats
type Format string

const (
	FormatLRC  Format = "lrc"
	FormatTTML Format = "ttml"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
)

// supported export formats
func Formats() []Format {
	return []Format{FormatLRC, FormatTTML, FormatJSON, FormatSRT, FormatVTT, FormatASS}
}

// interface for rendering a document
type Exporter interface {
	Export(doc *lyrics.Document) string
}

// creates Exporter based on format
func New(format Format) (Exporter, error) {
	switch format {
	case FormatLRC:
		return &LRCExporter{}, nil
	case FormatTTML:
		return &TTMLExporter{}, nil
	case FormatJSON:
		return &JSONExporter{Indent: "  "}, nil
	case FormatSRT:
		return &SRTExporter{}, nil
	case FormatVTT:
		return &VTTExporter{}, nil
	case FormatASS:
		return &ASSExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// renders doc and writes it to path, creating parent directories
func WriteFile(e Exporter, doc *lyrics.Document, path string) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(e.Export(doc)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// export format based on file extension, false when unknown
func FormatFromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lrc":
		return FormatLRC, true
	case ".ttml", ".xml":
		return FormatTTML, true
	case ".json":
		return FormatJSON, true
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	case ".ass", ".ssa":
		return FormatASS, true
	default:
		return "", false
	}
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatTTML:
		return ".ttml"
	case FormatJSON:
		return ".json"
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".lrc"
	}
}

// karaoke view of any line
func asKaraoke(l lyrics.Line) lyrics.KaraokeLine {
	switch l := l.(type) {
	case lyrics.KaraokeLine:
		return l
	case lyrics.PlainLine:
		return l.ToKaraoke()
	}
	return lyrics.KaraokeLine{}
}

// open ends collapse onto the start, exported files have no infinity
func finiteEnd(start, end int) int {
	if end == lyrics.Unbounded {
		return start
	}
	return end
}
