package render

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs = pinyin.NewArgs()

// Slugify derives a URL-safe ASCII identifier from a human-readable title.
// Han runes are transliterated into their pinyin reading first, since titles
// accept arbitrary Unicode; everything else lowercases, and every run of
// non-alphanumeric characters collapses into a single hyphen.
//
// Two titles with identical transliterations produce the same slug; there is
// no disambiguation suffix.
func Slugify(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.Is(unicode.Han, r) {
			readings := pinyin.SinglePinyin(r, pinyinArgs)
			if len(readings) > 0 {
				if sb.Len() > 0 {
					sb.WriteRune(' ')
				}
				sb.WriteString(readings[0])
				sb.WriteRune(' ')
				continue
			}
		}
		sb.WriteRune(r)
	}

	var out strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(sb.String()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && out.Len() > 0 {
				out.WriteRune('-')
			}
			pendingHyphen = false
			out.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	return out.String()
}
