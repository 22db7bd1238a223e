package importer

import (
	"bytes"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// detectSize caps how much of a non-UTF-8 upload chardet inspects.
const detectSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacyCharsets are the single-byte encodings spreadsheet exports are seen in, keyed by the
// names chardet reports.
var legacyCharsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// decodeText converts a whole upload to UTF-8. A byte-order mark wins; otherwise a file that
// is valid UTF-8 throughout is kept as is, and anything else is decoded with the legacy
// charset chardet reports, Windows-1252 when it reports none we know.
func decodeText(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return raw[len(bomUTF8):], nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(raw)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(raw)
	case utf8.Valid(raw):
		return raw, nil
	}

	return legacyCharset(raw).NewDecoder().Bytes(raw)
}

func legacyCharset(raw []byte) encoding.Encoding {
	best, err := chardet.NewTextDetector().DetectBest(raw[:min(len(raw), detectSize)])
	if err != nil {
		return charmap.Windows1252
	}

	if enc, ok := legacyCharsets[best.Charset]; ok {
		return enc
	}

	return charmap.Windows1252
}
