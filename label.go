package stitch

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// decodeLabel converts the space-padded 16-byte PEC label field to Go text,
// stripping the wire padding before decoding.
func decodeLabel(raw []byte) string {
	return decodeText([]byte(strings.TrimRight(string(raw), " \x00\r")))
}

// decodeText converts raw string bytes to Go text without trimming, so
// length-prefixed PES strings keep their exact content. Brother software
// predates UTF-8 and writes Shift-JIS names in the wild, so bytes that are
// not valid UTF-8 get a Shift-JIS decoding pass before falling back to a
// lossy conversion.
func decodeText(raw []byte) string {
	s := string(raw)
	if utf8.ValidString(s) {
		return s
	}
	decoded, _, err := transform.String(japanese.ShiftJIS.NewDecoder(), s)
	if err == nil && utf8.ValidString(decoded) {
		return decoded
	}
	return strings.ToValidUTF8(s, "�")
}
