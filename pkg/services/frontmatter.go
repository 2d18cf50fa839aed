package services

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"hugo-writer/pkg/config"
	"hugo-writer/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	yamlMarker = "---"
	tomlMarker = "+++"
)

// EncodeDocument serializes front matter and body into the on-disk form:
// a "---" delimited header with fields in a fixed order, a blank line, the
// body, and a trailing newline. Empty fields are omitted except title and
// weight, which are always written.
func EncodeDocument(fm models.FrontMatter, body string) []byte {
	var buf bytes.Buffer
	buf.WriteString(yamlMarker + "\n")
	fmt.Fprintf(&buf, "title: \"%s\"\n", escapeString(fm.Title))
	if fm.Description != "" {
		fmt.Fprintf(&buf, "description: \"%s\"\n", escapeString(fm.Description))
	}
	if fm.Author != "" {
		fmt.Fprintf(&buf, "author: \"%s\"\n", escapeString(fm.Author))
	}
	if len(fm.Tags) > 0 {
		buf.WriteString("tags: [")
		for i, tag := range fm.Tags {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "\"%s\"", escapeString(tag))
		}
		buf.WriteString("]\n")
	}
	fmt.Fprintf(&buf, "weight: %d\n", fm.Weight)
	if fm.CoverImage != "" {
		fmt.Fprintf(&buf, "coverImage: \"%s\"\n", escapeString(fm.CoverImage))
	}
	buf.WriteString(yamlMarker + "\n")

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// DecodeDocument parses a stored document back into typed front matter and
// body. A document without a header marker is legal: the whole text is the
// body and the front matter takes its defaults. A header that is opened but
// never closed, or that cannot be parsed, is ErrMalformedDocument. Unknown
// header keys are ignored for forward compatibility.
func DecodeDocument(content []byte) (models.FrontMatter, string, error) {
	fm := models.FrontMatter{Author: config.DefaultAuthor, Weight: 1}
	doc := string(content)

	marker := headerMarker(doc)
	if marker == "" {
		return fm, strings.TrimSuffix(doc, "\n"), nil
	}

	header, body, ok := splitHeader(doc, marker)
	if !ok {
		return fm, "", fmt.Errorf("%w: header opened with %q but never closed", ErrMalformedDocument, marker)
	}

	fields := make(map[string]interface{})
	var err error
	if marker == tomlMarker {
		err = toml.Unmarshal([]byte(header), &fields)
	} else {
		err = yaml.Unmarshal([]byte(header), &fields)
	}
	if err != nil {
		return fm, "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if v, ok := fields["title"]; ok {
		fm.Title = stringField(v)
	}
	if v, ok := fields["description"]; ok {
		fm.Description = stringField(v)
	}
	if v, ok := fields["author"]; ok {
		if s := stringField(v); s != "" {
			fm.Author = s
		}
	}
	if v, ok := fields["tags"]; ok {
		fm.Tags = tagsField(v)
	}
	if v, ok := fields["weight"]; ok {
		if w, ok := intField(v); ok {
			fm.Weight = w
		}
	}
	if v, ok := fields["coverImage"]; ok {
		fm.CoverImage = stringField(v)
	}

	return fm, body, nil
}

// headerMarker returns the marker opening the document, or "" when the
// document is a plain body.
func headerMarker(doc string) string {
	for _, marker := range []string{yamlMarker, tomlMarker} {
		rest, ok := strings.CutPrefix(doc, marker)
		if !ok {
			continue
		}
		rest = strings.TrimPrefix(rest, "\r")
		if rest == "" || strings.HasPrefix(rest, "\n") {
			return marker
		}
	}
	return ""
}

// splitHeader cuts the document into the header block and the body. The
// closing marker must sit on its own line; a marker embedded mid-line (say,
// inside a quoted title) does not terminate the header.
func splitHeader(doc, marker string) (header, body string, found bool) {
	rest := strings.TrimPrefix(doc[len(marker):], "\r")
	if rest == "" {
		return "", "", false
	}
	rest = rest[1:] // the opening marker's newline

	offset := 0
	for {
		i := strings.Index(rest[offset:], "\n"+marker)
		if i < 0 {
			return "", "", false
		}
		lineStart := offset + i + 1
		after := rest[lineStart+len(marker):]
		after = strings.TrimPrefix(after, "\r")
		if after == "" || strings.HasPrefix(after, "\n") {
			header = rest[:offset+i]
			body = strings.TrimPrefix(after, "\n")
			// One blank line separates header from body; anything beyond
			// that belongs to the body itself.
			body = strings.TrimPrefix(body, "\n")
			body = strings.TrimSuffix(body, "\n")
			return header, body, true
		}
		offset = lineStart
	}
}

func stringField(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

// tagsField accepts the bracketed list form, a native sequence, and a bare
// comma-separated scalar. Tags are trimmed and empties dropped.
func tagsField(v interface{}) []string {
	var raw []string
	switch list := v.(type) {
	case nil:
		return nil
	case []interface{}:
		for _, item := range list {
			raw = append(raw, stringField(item))
		}
	case []string:
		raw = list
	case string:
		raw = strings.Split(list, ",")
	default:
		raw = []string{fmt.Sprint(v)}
	}

	var tags []string
	for _, tag := range raw {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func intField(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// escapeString escapes backslashes and double quotes for a quoted field.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// DecodeSummary is the lazy parse path for listing: it scans only the
// header lines of a document head for title and coverImage and never
// fails. A document without a usable header keeps the filename-derived
// fallback title.
func DecodeSummary(head []byte, fallbackTitle string) models.PostSummary {
	summary := models.PostSummary{Title: fallbackTitle}

	marker := headerMarker(string(head))
	if marker == "" {
		return summary
	}

	scanner := bufio.NewScanner(bytes.NewReader(head))
	scanner.Scan() // opening marker
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == marker {
			break
		}

		var key, value string
		if marker == tomlMarker {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key, value = strings.TrimSpace(parts[0]), parts[1]
		} else {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}
			key, value = strings.TrimSpace(parts[0]), parts[1]
		}

		value = strings.Trim(strings.TrimSpace(value), "\"")
		switch key {
		case "title":
			if value != "" {
				summary.Title = value
			}
		case "coverImage":
			summary.CoverImage = value
		}
	}
	return summary
}
