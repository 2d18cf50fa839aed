package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeTitle lower-cases, trims, and collapses internal whitespace so
// titles that differ only in case or spacing compare equal.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// titlesCollide applies the single duplicate rule used everywhere: two
// titles collide when their normalized forms match or when they derive the
// same slug. The slug comparison catches titles that differ only in
// punctuation.
func titlesCollide(a, b string) bool {
	if NormalizeTitle(a) == NormalizeTitle(b) {
		return true
	}
	return SlugEqual(Slugify(a), Slugify(b))
}

// CheckTitleDuplicate reports whether a post in directory already uses a
// title equivalent to the candidate, and the conflicting file's path when
// one exists. excludeTitle removes the post being edited from the
// comparison set so a post never collides with itself.
func CheckTitleDuplicate(title, directory, excludeTitle string) (bool, string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("%w: reading %s: %v", ErrIO, directory, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		path := filepath.Join(directory, entry.Name())
		storedTitle, storedSlug := storedIdentity(path, entry.Name())

		if excludeTitle != "" &&
			(titlesCollide(storedTitle, excludeTitle) || SlugEqual(storedSlug, Slugify(excludeTitle))) {
			continue
		}

		if titlesCollide(storedTitle, title) || SlugEqual(storedSlug, Slugify(title)) {
			return true, path, nil
		}
	}
	return false, "", nil
}

// storedIdentity extracts the comparison keys of a stored file: the front
// matter title (falling back to the filename) and the slug embedded in the
// filename.
func storedIdentity(path, name string) (title, slug string) {
	slug = slugFromFilename(name)
	summary := DecodeSummary(readHead(path), slug)
	return summary.Title, slug
}

// slugFromFilename strips the .md extension and the YYYY-MM-DD- date
// prefix from a stored filename.
func slugFromFilename(name string) string {
	base := strings.TrimSuffix(name, ".md")
	if _, rest, ok := splitDatePrefix(base); ok {
		return rest
	}
	return base
}
