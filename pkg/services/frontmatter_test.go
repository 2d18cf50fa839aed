package services

import (
	"strings"
	"testing"

	"hugo-writer/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		fm   models.FrontMatter
		body string
	}{
		{
			name: "all fields",
			fm: models.FrontMatter{
				Title:       "Hello World",
				Description: "A greeting",
				Author:      "Aries",
				Tags:        []string{"go", "hugo"},
				Weight:      2,
				CoverImage:  "/images/uploads/cover.jpg",
			},
			body: "# Hello\n\nSome *markdown* body.",
		},
		{
			name: "minimal",
			fm:   models.FrontMatter{Title: "Bare", Author: "Aries", Weight: 1},
			body: "Test.",
		},
		{
			name: "quotes and backslashes in strings",
			fm: models.FrontMatter{
				Title:       `He said "hi" \o/`,
				Description: `path C:\tmp`,
				Author:      "Aries",
				Weight:      1,
			},
			body: "body",
		},
		{
			name: "marker-looking title",
			fm:   models.FrontMatter{Title: "--- not a header ---", Author: "Aries", Weight: 1},
			body: "body",
		},
		{
			name: "empty body",
			fm:   models.FrontMatter{Title: "No Body", Author: "Aries", Weight: 1},
			body: "",
		},
		{
			name: "body containing marker lines",
			fm:   models.FrontMatter{Title: "Divider", Author: "Aries", Weight: 1},
			body: "before\n\n---\n\nafter",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeDocument(tc.fm, tc.body)
			fm, body, err := DecodeDocument(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.fm, fm)
			assert.Equal(t, tc.body, body)
		})
	}
}

func TestEncodeFieldOrderAndOmission(t *testing.T) {
	encoded := string(EncodeDocument(models.FrontMatter{Title: "T", Weight: 1}, "b"))

	require.True(t, strings.HasPrefix(encoded, "---\n"))
	assert.Contains(t, encoded, "title: \"T\"\n")
	assert.Contains(t, encoded, "weight: 1\n")
	assert.NotContains(t, encoded, "description:")
	assert.NotContains(t, encoded, "author:")
	assert.NotContains(t, encoded, "tags:")
	assert.NotContains(t, encoded, "coverImage:")

	full := string(EncodeDocument(models.FrontMatter{
		Title:       "T",
		Description: "d",
		Author:      "a",
		Tags:        []string{"x"},
		Weight:      3,
		CoverImage:  "/i.png",
	}, "b"))
	want := []string{"title:", "description:", "author:", "tags:", "weight:", "coverImage:"}
	last := -1
	for _, key := range want {
		idx := strings.Index(full, key)
		require.Greater(t, idx, last, "field %s out of order", key)
		last = idx
	}
}

func TestDecodeDefaults(t *testing.T) {
	doc := "---\ntitle: \"Minimal\"\n---\n\nbody"
	fm, body, err := DecodeDocument([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "Minimal", fm.Title)
	assert.Equal(t, "Aries", fm.Author)
	assert.Equal(t, 1, fm.Weight)
	assert.Empty(t, fm.Description)
	assert.Empty(t, fm.Tags)
	assert.Empty(t, fm.CoverImage)
	assert.Equal(t, "body", body)
}

func TestDecodeTagForms(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"bracketed quoted", `tags: ["go", "hugo"]`, []string{"go", "hugo"}},
		{"bracketed bare", `tags: [go, hugo]`, []string{"go", "hugo"}},
		{"bare comma separated", `tags: go, hugo`, []string{"go", "hugo"}},
		{"whitespace and empties", `tags: go , , hugo`, []string{"go", "hugo"}},
		{"block sequence", "tags:\n  - go\n  - hugo", []string{"go", "hugo"}},
		{"empty list", `tags: []`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := "---\ntitle: \"T\"\n" + tc.line + "\n---\n\nbody"
			fm, _, err := DecodeDocument([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, tc.want, fm.Tags)
		})
	}
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	doc := "---\ntitle: \"T\"\ndate: 2024-01-01\nslug: \"custom\"\ndraft: true\n---\n\nbody"
	fm, body, err := DecodeDocument([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "T", fm.Title)
	assert.Equal(t, "body", body)
}

func TestDecodePlainDocumentIsBody(t *testing.T) {
	fm, body, err := DecodeDocument([]byte("Just some markdown.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Just some markdown.", body)
	assert.Equal(t, "Aries", fm.Author)
	assert.Equal(t, 1, fm.Weight)
	assert.Empty(t, fm.Title)
}

func TestDecodeUnclosedHeaderIsMalformed(t *testing.T) {
	_, _, err := DecodeDocument([]byte("---\ntitle: \"T\"\nno closing marker"))
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestDecodeUnparsableHeaderIsMalformed(t *testing.T) {
	_, _, err := DecodeDocument([]byte("---\n\t: [unbalanced\n---\n\nbody"))
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestDecodeTOMLHeader(t *testing.T) {
	doc := "+++\ntitle = \"Toml Post\"\nweight = 4\ntags = [\"a\", \"b\"]\n+++\n\nbody"
	fm, body, err := DecodeDocument([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Toml Post", fm.Title)
	assert.Equal(t, 4, fm.Weight)
	assert.Equal(t, []string{"a", "b"}, fm.Tags)
	assert.Equal(t, "Aries", fm.Author)
	assert.Equal(t, "body", body)
}

func TestDecodeSummary(t *testing.T) {
	doc := "---\ntitle: \"Summary Post\"\ndescription: \"long text\"\ncoverImage: \"/images/uploads/c.jpg\"\nweight: 1\n---\n\nbody"
	summary := DecodeSummary([]byte(doc), "fallback")
	assert.Equal(t, "Summary Post", summary.Title)
	assert.Equal(t, "/images/uploads/c.jpg", summary.CoverImage)
	assert.Nil(t, summary.Thumbnail)
}

func TestDecodeSummaryFallsBackOnBrokenHeader(t *testing.T) {
	summary := DecodeSummary([]byte("no header here"), "2024-01-01-fallback")
	assert.Equal(t, "2024-01-01-fallback", summary.Title)
	assert.Empty(t, summary.CoverImage)
}

func TestDecodeSummaryTOML(t *testing.T) {
	doc := "+++\ntitle = \"Toml Summary\"\ncoverImage = \"/images/x.png\"\n+++\n\nbody"
	summary := DecodeSummary([]byte(doc), "fallback")
	assert.Equal(t, "Toml Summary", summary.Title)
	assert.Equal(t, "/images/x.png", summary.CoverImage)
}
