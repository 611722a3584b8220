package export

import "strings"

// escapes the basic XML entities for text content
func escapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// escapes text for use in a double-quoted attribute
func escapeXMLAttr(s string) string {
	return strings.ReplaceAll(escapeXMLText(s), "\"", "&quot;")
}
