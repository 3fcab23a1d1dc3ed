package ingest

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"

	domainerr "ylwblog/internal/domain/errors"
)

// FrontMatter is the typed header of a post. Date is left untyped because
// YAML hands over plain strings while TOML hands over time.Time.
type FrontMatter struct {
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Date        any    `yaml:"date" toml:"date"`
	Time        any    `yaml:"time" toml:"time"` // older posts
	Draft       bool   `yaml:"draft" toml:"draft"`
}

// RawDate prefers `date` and falls back to the legacy `time` key.
func (fm FrontMatter) RawDate() any {
	if !isBlank(fm.Date) {
		return fm.Date
	}
	return fm.Time
}

// ParseFrontMatter reads the header (YAML `---` or TOML `+++`) and returns the
// remaining body untouched. A file without a header yields a zero FrontMatter.
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return FrontMatter{}, raw, fmt.Errorf("%w: %v", domainerr.ErrFrontMatter, err)
	}
	return fm, body, nil
}

// ParseDate turns a front matter date value into an instant. Strings without
// a zone are read as UTC calendar dates.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, domainerr.ErrMissingDate
	case time.Time:
		if d.IsZero() {
			return time.Time{}, domainerr.ErrMissingDate
		}
		return d, nil
	case string:
		return parseDateString(d)
	case int:
		return parseDateString(strconv.Itoa(d))
	case int64:
		return parseDateString(strconv.FormatInt(d, 10))
	case uint64:
		return parseDateString(strconv.FormatUint(d, 10))
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported value %v", domainerr.ErrInvalidDate, v)
	}
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domainerr.ErrMissingDate
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domainerr.ErrInvalidDate, s)
	}
	return t, nil
}

func isBlank(v any) bool {
	switch d := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(d) == ""
	case time.Time:
		return d.IsZero()
	default:
		return false
	}
}

// LinkFromRel builds the clean URL of a post from its root-relative path:
// "posts/hello-world.md" becomes "/posts/hello-world".
func LinkFromRel(rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return "/" + rel
}

// LinkFor is LinkFromRel for a path that still carries the content root.
func LinkFor(root, p string) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(filepath.ToSlash(rel), "../") {
		return "", fmt.Errorf("%s is outside content root %s", p, root)
	}
	return LinkFromRel(rel), nil
}
