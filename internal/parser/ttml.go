package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/lyrisync/internal/lyrics"
	"github.com/mgpai22/lyrisync/internal/timecode"
	"github.com/mgpai22/lyrisync/internal/xmltree"
)

const (
	roleTranslation = "x-translation"
	roleBackground  = "x-bg"
)

var (
	// "outside（inside）" with full-width parentheses
	bracketTranslationRegex = regexp.MustCompile(`^(.*?)（(.*?)）$`)
	whitespaceRunRegex      = regexp.MustCompile(`\s+`)
)

// parses Apple-style syllable TTML
type TTMLParser struct {
	log *zap.Logger
}

func NewTTMLParser(opts ...Option) *TTMLParser {
	o := newOptions(opts)
	return &TTMLParser{log: o.log}
}

func (p *TTMLParser) ParseLines(lines []string) *lyrics.Document {
	return p.Parse(strings.Join(lines, "\n"))
}

// pretty-printers indent with pairs of spaces and some exporters glue the
// inter-word space to the end of a span; undo both before reading
func normalizeTTML(s string) string {
	s = strings.ReplaceAll(s, "  ", "")
	s = strings.ReplaceAll(s, " </span><span", "</span> <span")
	s = strings.ReplaceAll(s, ",</span><span", ",</span> <span")
	return s
}

// per-document state for one Parse call
type ttmlDocument struct {
	tree            *xmltree.Tree
	agents          map[string]lyrics.Alignment
	artists         []lyrics.Artist
	title           string
	translations    map[string]string
	transliteration map[string]string
}

func (p *TTMLParser) Parse(text string) *lyrics.Document {
	d := &ttmlDocument{tree: xmltree.Parse(normalizeTTML(text))}
	d.readMetadata()
	d.translations = d.keyedTexts("translation")
	d.transliteration = d.keyedTexts("transliteration")

	var (
		out     []lyrics.Line
		dropped int
	)
	for _, para := range d.tree.Find(xmltree.Root, func(n *xmltree.Node) bool { return n.Name == "p" }) {
		lines, ok := d.paragraph(para)
		if !ok {
			dropped++
			continue
		}
		out = append(out, lines...)
	}

	if dropped > 0 {
		p.log.Debug("dropped ttml paragraphs without timing", zap.Int("count", dropped))
	}

	doc := lyrics.NewDocument(out)
	doc.Title = d.title
	doc.Artists = d.artists
	return doc
}

// agents become alignment sides by declaration order: the first is Start,
// every later one End
func (d *ttmlDocument) readMetadata() {
	d.agents = map[string]lyrics.Alignment{}

	meta, ok := d.tree.FindFirst(xmltree.Root, "metadata")
	if !ok {
		return
	}

	n := 0
	for _, c := range d.tree.Children(meta) {
		name := d.tree.Name(c)
		if xmltree.HasLocalName(name, "title") && d.title == "" {
			d.title = strings.TrimSpace(d.tree.Text(c))
			continue
		}
		if !xmltree.HasLocalName(name, "agent") {
			continue
		}

		id, _ := d.tree.AttrAny(c, "xml:id", "id")
		if _, seen := d.agents[id]; !seen {
			d.agents[id] = lyrics.AlignmentEnd
			if n == 0 {
				d.agents[id] = lyrics.AlignmentStart
			}
		}
		n++

		for _, nameNode := range d.tree.Children(c) {
			if !xmltree.HasLocalName(d.tree.Name(nameNode), "name") {
				continue
			}
			if artist := strings.TrimSpace(d.tree.Text(nameNode)); artist != "" {
				typ, _ := d.tree.Attr(c, "type")
				d.artists = append(d.artists, lyrics.Artist{Type: typ, Name: artist})
			}
		}
	}
}

// <translation>/<transliteration> tables: <text for="key">value</text>
func (d *ttmlDocument) keyedTexts(local string) map[string]string {
	out := map[string]string{}
	tables := d.tree.Find(xmltree.Root, func(n *xmltree.Node) bool {
		return xmltree.HasLocalName(n.Name, local)
	})
	for _, table := range tables {
		for _, c := range d.tree.Children(table) {
			if d.tree.Name(c) != "text" {
				continue
			}
			key, ok := d.tree.Attr(c, "for")
			value := strings.TrimSpace(d.tree.Text(c))
			if ok && value != "" {
				out[key] = value
			}
		}
	}
	return out
}

func (d *ttmlDocument) alignment(para xmltree.NodeID) lyrics.Alignment {
	agent, _ := d.tree.Attr(para, "ttm:agent")
	if a, ok := d.agents[agent]; ok {
		return a
	}
	return lyrics.AlignmentStart
}

func (d *ttmlDocument) hasRole(id xmltree.NodeID, role string) bool {
	for _, a := range d.tree.Node(id).Attrs {
		if (a.Name == "role" || strings.HasSuffix(a.Name, ":role")) && a.Value == role {
			return true
		}
	}
	return false
}

// inline translation span among children, trimmed; "" when absent or blank
func (d *ttmlDocument) inlineTranslation(parent xmltree.NodeID, excludeBackground bool) string {
	for _, c := range d.tree.Children(parent) {
		if !d.hasRole(c, roleTranslation) {
			continue
		}
		if excludeBackground && d.hasRole(c, roleBackground) {
			continue
		}
		return strings.TrimSpace(d.tree.Text(c))
	}
	return ""
}

// splits "outside（inside）"; inside is "" when there is no bracket
func splitBracketTranslation(text string) (outside, inside string) {
	m := bracketTranslationRegex.FindStringSubmatch(text)
	if m == nil {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func (d *ttmlDocument) lineKey(id xmltree.NodeID) (string, bool) {
	return d.tree.AttrAny(id, "itunes:key", "key")
}

// main line and background lines of one <p>. ok is false when the
// paragraph has no begin/end and was skipped.
func (d *ttmlDocument) paragraph(para xmltree.NodeID) ([]lyrics.Line, bool) {
	beginAttr, hasBegin := d.tree.Attr(para, "begin")
	endAttr, hasEnd := d.tree.Attr(para, "end")
	if !hasBegin || !hasEnd {
		return nil, false
	}
	begin, end := timecode.Parse(beginAttr), timecode.Parse(endAttr)
	alignment := d.alignment(para)

	key, hasKey := d.lineKey(para)
	// the bracketed part belongs to the background vocals
	var outside string
	if hasKey {
		outside, _ = splitBracketTranslation(d.translations[key])
	}

	var out []lyrics.Line

	syllables := d.syllables(para)
	if len(syllables) == 0 {
		// line-timed paragraph with plain text content
		if text := d.looseText(para); text != "" {
			syllables = []lyrics.Syllable{{Content: text, Start: begin, End: end}}
		}
	}
	if len(syllables) > 0 {
		translation := d.inlineTranslation(para, true)
		if translation == "" {
			translation = outside
		}
		line := lyrics.KaraokeLine{
			Timing:      lyrics.Timing{Start: begin, End: max(end, begin)},
			Syllables:   syllables,
			Translation: translation,
			Alignment:   alignment,
		}
		if hasKey {
			line.Phonetic = d.transliteration[key]
		}
		out = append(out, line)
	}

	for _, c := range d.tree.Children(para) {
		if d.tree.Name(c) != "span" || !d.hasRole(c, roleBackground) {
			continue
		}
		if bg, ok := d.background(c, key, hasKey, alignment); ok {
			out = append(out, bg)
		}
	}

	return out, true
}

func (d *ttmlDocument) background(
	span xmltree.NodeID,
	parentKey string,
	hasParentKey bool,
	alignment lyrics.Alignment,
) (lyrics.KaraokeLine, bool) {
	syllables := d.syllables(span)
	if len(syllables) == 0 {
		return lyrics.KaraokeLine{}, false
	}

	translation := d.inlineTranslation(span, false)
	if translation == "" {
		key, ok := d.lineKey(span)
		if !ok {
			key, ok = parentKey, hasParentKey
		}
		if ok {
			outside, inside := splitBracketTranslation(d.translations[key])
			translation = inside
			if translation == "" {
				translation = outside
			}
		}
	}

	line := lyrics.KaraokeLine{
		Timing: lyrics.Timing{
			Start: syllables[0].Start,
			End:   syllables[len(syllables)-1].End,
		},
		Syllables:       syllables,
		Translation:     translation,
		IsAccompaniment: true,
		Alignment:       alignment,
	}
	if v, ok := d.tree.Attr(span, "begin"); ok {
		line.Start = timecode.Parse(v)
	}
	if v, ok := d.tree.Attr(span, "end"); ok {
		line.End = timecode.Parse(v)
	}
	line.End = max(line.End, line.Start)
	return line, true
}

// timed child spans of parent. each syllable absorbs a directly following
// text node, which is how inter-word spaces are written; the last syllable
// loses its trailing whitespace.
func (d *ttmlDocument) syllables(parent xmltree.NodeID) []lyrics.Syllable {
	kids := d.tree.Children(parent)

	var out []lyrics.Syllable
	for i, c := range kids {
		if d.tree.Name(c) != "span" || d.hasRole(c, roleTranslation) || d.hasRole(c, roleBackground) {
			continue
		}
		begin, hasBegin := d.tree.Attr(c, "begin")
		end, hasEnd := d.tree.Attr(c, "end")
		content := d.tree.Text(c)
		if !hasBegin || !hasEnd || content == "" {
			continue
		}
		if i+1 < len(kids) && d.tree.IsText(kids[i+1]) {
			content += whitespaceRunRegex.ReplaceAllString(d.tree.Text(kids[i+1]), " ")
		}
		out = append(out, lyrics.Syllable{
			Content: content,
			Start:   timecode.Parse(begin),
			End:     timecode.Parse(end),
		})
	}

	if n := len(out); n > 0 {
		out[n-1].Content = strings.TrimRightFunc(out[n-1].Content, isSpace)
	}
	return out
}

// text of a paragraph outside translation and background spans
func (d *ttmlDocument) looseText(para xmltree.NodeID) string {
	var sb strings.Builder
	for _, c := range d.tree.Children(para) {
		if d.hasRole(c, roleTranslation) || d.hasRole(c, roleBackground) {
			continue
		}
		sb.WriteString(d.tree.Text(c))
	}
	return strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(sb.String(), " "))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
