package services

import (
	"strings"
	"unicode"
)

const maxSlugLen = 80

// slugKeep reports whether a rune survives slugification. ASCII
// alphanumerics and CJK-range characters are kept; everything else
// becomes a hyphen.
func slugKeep(r rune) bool {
	if r < 128 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// Slugify derives the filesystem/URL-safe form of a title. Case is
// preserved; runs of disallowed characters collapse into a single "-".
// The same derivation feeds save, update, delete and duplicate detection
// so the on-disk key can never disagree between call sites.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range title {
		if slugKeep(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if runes := []rune(slug); len(runes) > maxSlugLen {
		slug = strings.Trim(string(runes[:maxSlugLen]), "-")
	}
	if slug == "" {
		slug = "post"
	}
	return slug
}

// SlugEqual compares two derived slugs case-insensitively.
func SlugEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
