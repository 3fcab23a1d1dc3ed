package build

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	domainbuild "ylwblog/internal/domain/build"
	"ylwblog/internal/domain/config"
	"ylwblog/internal/domain/content"
	"ylwblog/internal/domain/site"
)

// SiteData is what the renderer reads from the site file.
type SiteData struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Lang        string         `json:"lang,omitempty"`
	Theme       site.Theme     `json:"themeConfig"`
	Aside       site.AsideRule `json:"aside"`
}

func SiteDataFrom(c config.SiteConfig) SiteData {
	return SiteData{
		Title:       c.Title,
		Description: c.Description,
		Lang:        c.Language,
		Theme:       c.Theme,
		Aside:       site.DefaultAsideRule(),
	}
}

// MarshalPosts encodes posts the way they land in the data file. The output
// only depends on the posts, never on the time of the build.
func MarshalPosts(posts []content.Post) ([]byte, error) {
	if posts == nil {
		posts = []content.Post{}
	}
	return marshalIndent(posts)
}

func MarshalSite(s SiteData) ([]byte, error) {
	return marshalIndent(s)
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadPosts decodes a data file written by MarshalPosts.
func ReadPosts(path string) ([]content.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var posts []content.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// fileMatches reports whether the file at path still holds the bytes that
// hashed to want. Missing or hand-edited files do not match.
func fileMatches(path, want string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return domainbuild.HashBytes(raw) == want
}
