// Package translit reduces personal names to plain ASCII letters.
package translit

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pinyinArgs = pinyin.NewArgs()

// Letters returns the uppercase ASCII letters of name. Han characters are
// romanised to pinyin and accents are stripped; every other rune is dropped.
func Letters(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.Is(unicode.Han, r):
			for _, syllable := range pinyin.LazyPinyin(string(r), pinyinArgs) {
				writeASCII(&b, syllable)
			}
		default:
			writeASCII(&b, stripMarks(string(r)))
		}
	}
	return b.String()
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func writeASCII(b *strings.Builder, s string) {
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
}
