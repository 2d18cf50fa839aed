package services

import (
	"path/filepath"
	"strings"

	"hugo-writer/pkg/config"
)

// normalizeSlashes rewrites every path separator to "/" so prefix
// comparisons never trip over mixed Windows/Unix separators.
func normalizeSlashes(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// ToSiteURL converts an absolute image save path into the URL usable
// inside front matter. Outside the site root (or with no root configured)
// the normalized path comes back as a best-effort fallback. Inside the
// root, the prefix is stripped, a leading "/" is guaranteed, and one
// leading static-folder segment is removed because Hugo serves static/
// from the site's URL root.
func ToSiteURL(imagePath, siteRoot string) string {
	cleanPath := normalizeSlashes(imagePath)
	cleanRoot := strings.TrimSuffix(normalizeSlashes(siteRoot), "/")

	if cleanRoot == "" || !strings.HasPrefix(cleanPath, cleanRoot) {
		return cleanPath
	}

	rel := strings.TrimPrefix(cleanPath, cleanRoot)
	if rel != "" && !strings.HasPrefix(rel, "/") {
		// Prefix match fell mid-segment ("/site" vs "/site2"); not inside
		// the root after all.
		return cleanPath
	}
	if rel == "" {
		rel = "/"
	}

	static := "/" + config.StaticFolder + "/"
	if strings.HasPrefix(rel, static) {
		rel = "/" + strings.TrimPrefix(rel, static)
	}
	return rel
}

// ResolveImageFile maps a cover image value back to an absolute filesystem
// path, the inverse direction used by delete and thumbnail loading. The
// second return is false when the value cannot be resolved or the result
// does not reside under imageDirectory.
func ResolveImageFile(cover, imageDirectory, siteRoot string) (string, bool) {
	if cover == "" || imageDirectory == "" {
		return "", false
	}

	norm := normalizeSlashes(cover)

	// Site-relative first: "/images/x.png" means <siteRoot>/static/images/x.png
	// even on platforms where a leading slash also reads as an absolute path.
	if strings.HasPrefix(norm, "/") && siteRoot != "" {
		rel := strings.TrimPrefix(norm, "/")
		abs := filepath.Join(siteRoot, config.StaticFolder, filepath.FromSlash(rel))
		if pathWithin(abs, imageDirectory) {
			return abs, true
		}
	}

	if filepath.IsAbs(cover) {
		abs := filepath.Clean(cover)
		if pathWithin(abs, imageDirectory) {
			return abs, true
		}
		return "", false
	}

	if !strings.HasPrefix(norm, "/") {
		abs := filepath.Join(imageDirectory, filepath.FromSlash(norm))
		if pathWithin(abs, imageDirectory) {
			return abs, true
		}
	}
	return "", false
}

// pathWithin reports whether path sits under dir, compared on
// normalized-separator absolute strings.
func pathWithin(path, dir string) bool {
	p := normalizeSlashes(filepath.Clean(path))
	d := strings.TrimSuffix(normalizeSlashes(filepath.Clean(dir)), "/")
	return p == d || strings.HasPrefix(p, d+"/")
}

// SafeJoin joins target onto root/sub, refusing traversal outside the
// tree.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}
