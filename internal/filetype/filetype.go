// Package filetype maps MIME types and file extensions to the coarse
// document-type labels used by search results and dashboard filters. The
// lookup tables are package-level immutable values consulted through pure
// functions; nothing here mutates state after init.
package filetype

import "strings"

// typeRule matches any of its MIME substrings to one label.
type typeRule struct {
	label      string
	substrings []string
}

// Ordered: first match wins, so "spreadsheet" resolves before the generic
// "document" substring can claim it.
var typeRules = []typeRule{
	{label: "pdf", substrings: []string{"pdf"}},
	{label: "excel", substrings: []string{"excel", "spreadsheet"}},
	{label: "word", substrings: []string{"word", "document"}},
	{label: "image", substrings: []string{"image"}},
	{label: "video", substrings: []string{"video"}},
	{label: "audio", substrings: []string{"audio"}},
	{label: "archive", substrings: []string{"zip", "archive", "compressed", "tar"}},
	{label: "code", substrings: []string{"javascript", "json", "xml", "html", "css"}},
}

// Label resolves a MIME type to its coarse type label, falling back to
// "file" when nothing matches.
func Label(mimeType string) string {
	mt := strings.ToLower(mimeType)
	for _, rule := range typeRules {
		for _, sub := range rule.substrings {
			if strings.Contains(mt, sub) {
				return rule.label
			}
		}
	}
	return "file"
}

// MimeSubstrings returns the MIME substrings a doc-type filter value matches
// against, or nil for an unknown value. Callers OR the substrings in their
// queries.
func MimeSubstrings(docType string) []string {
	for _, rule := range typeRules {
		if rule.label == strings.ToLower(docType) {
			return rule.substrings
		}
	}
	return nil
}

// Extension returns the lowercase extension of a filename without the dot,
// or "" when there is none.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// DisplayLabel renders the badge text for a file: the matched type label in
// upper case, or the raw extension when the MIME type is unrecognized.
func DisplayLabel(mimeType, filename string) string {
	if l := Label(mimeType); l != "file" {
		return strings.ToUpper(l)
	}
	if ext := Extension(filename); ext != "" {
		return strings.ToUpper(ext)
	}
	return "FILE"
}
