package service

import (
	"math"
	"strings"
	"unicode"

	"github.com/newsdesk/internal/constants"
)

const slugQuoteRunes = "'\"“”‘’«»"

// Slugify 由标题生成 URL 安全的 slug，保留组合附加符号（天城文等依赖它们）
func Slugify(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	pendingSep := false
	for _, r := range strings.ToLower(header) {
		switch {
		case strings.ContainsRune(slugQuoteRunes, r):
			continue
		case unicode.IsSpace(r) || r == '-':
			pendingSep = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.M, r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReadingTime 按每分钟 200 词估算阅读时间，最少 1 分钟
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / float64(constants.WordsPerMinute)))
	if minutes < 1 {
		return 1
	}
	return minutes
}
