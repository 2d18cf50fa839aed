package services

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hugo-writer/pkg/config"
	"hugo-writer/pkg/models"
)

// SavePost persists a post as <YYYY-MM-DD>-<slug>.md in directory and
// returns the stored path. The duplicate check is re-run here even when
// the caller already asked, to close the race between check and save.
func SavePost(post models.Post, directory string) (string, error) {
	if err := validatePost(post, directory); err != nil {
		return "", err
	}

	if dup, conflict, err := CheckTitleDuplicate(post.Title, directory, ""); err != nil {
		return "", err
	} else if dup {
		return "", fmt.Errorf("%w: %q conflicts with %s", ErrDuplicateTitle, post.Title, conflict)
	}

	date := post.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	filename := fmt.Sprintf("%s-%s.md", date, Slugify(post.Title))
	fullPath := filepath.Join(directory, filename)

	if err := writeDocument(fullPath, post); err != nil {
		return "", err
	}
	return fullPath, nil
}

// LoadPost resolves a title to its stored file and decodes it. Resolution
// tries the derived filename slug first and falls back to matching the
// front matter title, so posts survive titles full of punctuation.
func LoadPost(title, directory string) (models.Post, error) {
	path, err := findPostFile(title, directory)
	if err != nil {
		return models.Post{}, err
	}
	return readPost(path)
}

// UpdatePost replaces the stored content of originalTitle with post. When
// the title changes, the new file is written before the old one is
// removed: a failed write leaves the original untouched, and at no point
// are both files absent.
func UpdatePost(originalTitle string, post models.Post, directory string) (string, error) {
	if err := validatePost(post, directory); err != nil {
		return "", err
	}

	oldPath, err := findPostFile(originalTitle, directory)
	if err != nil {
		return "", err
	}

	sameKey := SlugEqual(Slugify(originalTitle), Slugify(post.Title))
	if !sameKey {
		if dup, conflict, err := CheckTitleDuplicate(post.Title, directory, originalTitle); err != nil {
			return "", err
		} else if dup {
			return "", fmt.Errorf("%w: %q conflicts with %s", ErrDuplicateTitle, post.Title, conflict)
		}
	}

	// The creation-date prefix is part of the on-disk key and survives
	// edits; only a brand-new file gets today's date.
	date := post.Date
	if date == "" {
		if d, _, ok := splitDatePrefix(strings.TrimSuffix(filepath.Base(oldPath), ".md")); ok {
			date = d
		} else {
			date = time.Now().Format("2006-01-02")
		}
	}

	if sameKey {
		if err := writeDocument(oldPath, post); err != nil {
			return "", err
		}
		return oldPath, nil
	}

	newPath := filepath.Join(directory, fmt.Sprintf("%s-%s.md", date, Slugify(post.Title)))
	if err := writeDocument(newPath, post); err != nil {
		return "", err
	}
	if err := os.Remove(oldPath); err != nil {
		slog.Warn("stale post file left behind after rename", "path", oldPath, "error", err)
	}
	return newPath, nil
}

// DeletePost removes the stored file for title. The cover image and any
// body-embedded images that resolve under imageDirectory are removed
// best-effort: an image that is already gone never fails the delete.
func DeletePost(title, directory, imageDirectory, siteRoot string) error {
	path, err := findPostFile(title, directory)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}

	if fm, body, err := DecodeDocument(content); err == nil {
		removeImage(fm.CoverImage, imageDirectory, siteRoot)
		for _, ref := range extractImageRefs(body) {
			removeImage(ref, imageDirectory, siteRoot)
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: removing %s: %v", ErrIO, path, err)
	}
	return nil
}

// ListPosts enumerates the markdown documents in directory (non-recursive),
// filters by a case-insensitive substring match on the title, orders by
// filename descending (reverse chronological, since filenames carry the
// date prefix), and returns the requested page. TotalCount always covers
// the whole filtered set. Thumbnails are attached only for the returned
// page; an unresolvable cover image yields no thumbnail without failing
// the listing.
func ListPosts(directory, siteRoot, imageDirectory string, page, pageSize int, search string) (models.ListPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	result := models.ListPage{Items: []models.PostSummary{}, Page: page, PageSize: pageSize}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return result, nil
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		return result, fmt.Errorf("%w: reading %s: %v", ErrIO, directory, err)
	}

	type listed struct {
		name    string
		summary models.PostSummary
	}
	term := strings.ToLower(strings.TrimSpace(search))

	var matched []listed
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		if entry.Name() == "_index.md" {
			continue
		}

		path := filepath.Join(directory, entry.Name())
		summary := DecodeSummary(readHead(path), slugFromFilename(entry.Name()))

		if term != "" && !strings.Contains(strings.ToLower(summary.Title), term) {
			continue
		}
		matched = append(matched, listed{name: entry.Name(), summary: summary})
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].name > matched[j].name
	})

	result.TotalCount = len(matched)

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return result, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	for _, item := range matched[start:end] {
		summary := item.summary
		if abs, ok := ResolveImageFile(summary.CoverImage, imageDirectory, siteRoot); ok {
			if data, err := os.ReadFile(abs); err == nil {
				summary.Thumbnail = data
			}
		}
		result.Items = append(result.Items, summary)
	}
	return result, nil
}

func validatePost(post models.Post, directory string) error {
	switch {
	case strings.TrimSpace(post.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	case strings.TrimSpace(post.Body) == "":
		return fmt.Errorf("%w: content is required", ErrInvalidArgument)
	case directory == "":
		return fmt.Errorf("%w: directory is required", ErrInvalidArgument)
	}
	return nil
}

// writeDocument encodes and writes a post via a temp file plus rename, so
// a failed write never leaves a partial document behind.
func writeDocument(path string, post models.Post) error {
	fm := post.FrontMatter
	fm.Title = post.Title
	if fm.Author == "" {
		fm.Author = config.DefaultAuthor
	}
	if fm.Weight <= 0 {
		fm.Weight = 1
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".post-*.md")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if _, err := tmp.Write(EncodeDocument(fm, post.Body)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}

// findPostFile locates the stored file for a title using the same
// normalization as duplicate detection: filename slug first, front matter
// title second.
func findPostFile(title, directory string) (string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q in %s", ErrNotFound, title, directory)
		}
		return "", fmt.Errorf("%w: reading %s: %v", ErrIO, directory, err)
	}

	want := Slugify(title)
	var fallback string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(directory, entry.Name())

		if SlugEqual(slugFromFilename(entry.Name()), want) {
			return path, nil
		}
		if fallback == "" {
			summary := DecodeSummary(readHead(path), "")
			if summary.Title != "" && NormalizeTitle(summary.Title) == NormalizeTitle(title) {
				fallback = path
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: %q in %s", ErrNotFound, title, directory)
}

func readPost(path string) (models.Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}
	fm, body, err := DecodeDocument(content)
	if err != nil {
		return models.Post{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), ".md")
	date, _, _ := splitDatePrefix(base)

	title := fm.Title
	if title == "" {
		title = slugFromFilename(filepath.Base(path))
	}

	return models.Post{
		Title:       title,
		Slug:        slugFromFilename(filepath.Base(path)),
		Date:        date,
		Path:        path,
		FrontMatter: fm,
		Body:        body,
	}, nil
}

// readHead returns at most config.FileReadHeadLimit bytes of the file, the
// budget the lazy summary decoder works within.
func readHead(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, config.FileReadHeadLimit))
	if err != nil {
		return nil
	}
	return head
}

// splitDatePrefix splits "2024-01-01-some-slug" into its date and slug
// halves; ok is false when the name carries no valid date prefix.
func splitDatePrefix(base string) (date, rest string, ok bool) {
	if len(base) < 11 || base[10] != '-' {
		return "", base, false
	}
	if _, err := time.Parse("2006-01-02", base[:10]); err != nil {
		return "", base, false
	}
	return base[:10], base[11:], true
}

// removeImage deletes the file a cover or body image reference resolves
// to. Best-effort: failures are logged, never surfaced.
func removeImage(ref, imageDirectory, siteRoot string) {
	abs, ok := ResolveImageFile(ref, imageDirectory, siteRoot)
	if !ok {
		return
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to delete image", "path", abs, "error", err)
	}
}

// extractImageRefs pulls ![alt](path) targets out of a markdown body.
func extractImageRefs(body string) []string {
	var refs []string
	for _, line := range strings.Split(body, "\n") {
		rest := line
		for {
			bang := strings.Index(rest, "![")
			if bang < 0 {
				break
			}
			rest = rest[bang:]
			open := strings.Index(rest, "(")
			if open < 0 {
				break
			}
			closeIdx := strings.Index(rest[open:], ")")
			if closeIdx < 0 {
				break
			}
			ref := strings.TrimSpace(rest[open+1 : open+closeIdx])
			ref = strings.Trim(ref, "\"'")
			if ref != "" {
				refs = append(refs, ref)
			}
			rest = rest[open+closeIdx+1:]
		}
	}
	return refs
}
