package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"
)

type SourceFile struct {
	Path string // as seen on disk
	Rel  string // slash-separated, relative to the content root
}

// Matcher decides whether a root-relative path is a post source.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewMatcher(include, exclude []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range include {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", p, err)
		}
		m.include = append(m.include, g)
	}
	for _, p := range exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	hit := false
	for _, g := range m.include {
		if g.Match(rel) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, g := range m.exclude {
		if g.Match(rel) {
			return false
		}
	}
	return true
}

// DiscoverSource walks root in lexical order. That order is the discovery
// order used to break ties between posts sharing a date.
func DiscoverSource(root string, m *Matcher) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if m.Match(rel) {
			out = append(out, SourceFile{Path: path, Rel: rel})
		}
		return nil
	})
	return out, err
}
