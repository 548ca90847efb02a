package sitemd

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// mojibakeReplacer repairs the most common UTF-8-as-Windows-1252 artifacts
// in strings that cannot be round-tripped wholesale (mixed content).
// The space-bearing "Â " entry must precede the bare "Â" one.
var mojibakeReplacer = strings.NewReplacer(
	"â€”", "—", // em dash
	"â€“", "–", // en dash
	"â€™", "'", // right single quote
	"â€˜", "'", // left single quote
	"â€œ", "\"", // left double quote
	"â€", "\"", // right double quote
	"Â ", " ", // Â + non-breaking space
	"Â", "",
	" ", " ",
)

// RepairEncoding fixes mojibake in extracted text: UTF-8 content that was
// decoded as Latin-1 somewhere upstream. If the whole string round-trips
// through Latin-1 back to valid UTF-8 the re-decoded form is returned;
// otherwise the common double-decoded punctuation sequences are replaced
// individually. Clean text passes through unchanged.
func RepairEncoding(text string) string {
	if text == "" {
		return text
	}

	if raw, err := charmap.ISO8859_1.NewEncoder().String(text); err == nil {
		if utf8.ValidString(raw) {
			return raw
		}
	}

	return mojibakeReplacer.Replace(text)
}
