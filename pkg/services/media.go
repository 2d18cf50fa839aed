package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hugo-writer/pkg/config"

	"github.com/disintegration/imaging"
)

// MediaFile describes a stored cover image.
type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"` // site-relative URL for use in front matter
	Size int64  `json:"size"`
}

// maxCoverEdge bounds the longest side of a stored cover image.
const maxCoverEdge = 1920

// SaveCoverImage stores an uploaded image under the configured image
// directory, re-encoded as JPEG and resized to fit maxCoverEdge on the
// longest side. The returned Path is the site URL the front matter should
// reference.
func SaveCoverImage(src io.Reader, originalName string) (*MediaFile, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrInvalidArgument, originalName, err)
	}
	img = imaging.Fit(img, maxCoverEdge, maxCoverEdge, imaging.Lanczos)

	base := filepath.Base(originalName)
	base = strings.ReplaceAll(base, " ", "_")
	name := strings.TrimSuffix(base, filepath.Ext(base))
	filename := fmt.Sprintf("%s_%d.jpg", name, time.Now().Unix())

	if err := os.MkdirAll(config.ImageDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrIO, config.ImageDir, err)
	}
	fullPath := filepath.Join(config.ImageDir, filename)

	if err := imaging.Save(img, fullPath, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrIO, fullPath, err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	return &MediaFile{
		Name: filename,
		Path: ToSiteURL(fullPath, config.SiteRoot),
		Size: info.Size(),
	}, nil
}

// DeleteCoverImage removes a stored cover image by its site URL or
// absolute path. Missing files are not an error.
func DeleteCoverImage(cover string) error {
	abs, ok := ResolveImageFile(cover, config.ImageDir, config.SiteRoot)
	if !ok {
		return fmt.Errorf("%w: image path %q", ErrInvalidArgument, cover)
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing %s: %v", ErrIO, abs, err)
	}
	return nil
}

// ReadCoverImage returns the raw bytes of a cover image referenced from
// front matter, for editor preview.
func ReadCoverImage(cover string) ([]byte, error) {
	abs, ok := ResolveImageFile(cover, config.ImageDir, config.SiteRoot)
	if !ok {
		return nil, fmt.Errorf("%w: image %q", ErrNotFound, cover)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image %q", ErrNotFound, cover)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, abs, err)
	}
	return data, nil
}
