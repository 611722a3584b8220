package lyrics

// source grammars understood by the parsers
type Format string

const (
	FormatTTML             Format = "ttml"
	FormatLRC              Format = "lrc"
	FormatEnhancedLRC      Format = "enhanced_lrc"
	FormatLyricifySyllable Format = "lyricify_syllable"
	FormatKRC              Format = "krc"
)

// all formats in guesser registration order
func Formats() []Format {
	return []Format{
		FormatTTML,
		FormatLRC,
		FormatEnhancedLRC,
		FormatLyricifySyllable,
		FormatKRC,
	}
}
