package utils

import (
	"strings"
	"unicode"
)

// Slugify 由商品名生成 URL slug
// "HD Lace 13x6 Body Wave" -> "hd-lace-13x6-bodywave" 这种形式
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	prevDash := true // 抑制开头的 '-'
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
