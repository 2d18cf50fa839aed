package models

// FrontMatter holds the typed header fields of a post document.
type FrontMatter struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Weight      int      `json:"weight"`
	CoverImage  string   `json:"coverImage,omitempty"`
}

// Post is the full in-memory projection of a stored markdown document.
// It is created on load, passed into repository operations, and discarded
// after save; the directory on disk stays the single source of truth.
type Post struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Date        string      `json:"date,omitempty"` // YYYY-MM-DD filename prefix
	Path        string      `json:"path,omitempty"`
	FrontMatter FrontMatter `json:"frontmatter"`
	Body        string      `json:"body"`
}

// PostSummary is the lightweight listing projection. Thumbnail carries the
// raw cover image bytes when the file could be resolved; encoding/json
// renders it as base64 for the UI.
type PostSummary struct {
	Title      string `json:"title"`
	CoverImage string `json:"coverImage,omitempty"`
	Thumbnail  []byte `json:"coverImageThumbnail,omitempty"`
}

// ListPage is one page of a filtered, sorted listing. TotalCount covers the
// whole filtered set, independent of the requested page.
type ListPage struct {
	Items      []PostSummary `json:"items"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
}
